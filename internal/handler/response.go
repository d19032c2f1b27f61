package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"teklio/internal/domain"
	"teklio/internal/parser"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateErr *parser.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusTooManyRequests, "MODEL_RATE_LIMITED", "ai model is rate limited; try again shortly"
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found"
	case errors.Is(err, domain.ErrContactNotFound):
		return http.StatusNotFound, "CONTACT_NOT_FOUND", "contact not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx, xls, pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrWorkbookRead):
		return http.StatusUnprocessableEntity, "WORKBOOK_READ_FAILED", "spreadsheet could not be read"
	case errors.Is(err, domain.ErrPDFRead):
		return http.StatusUnprocessableEntity, "PDF_READ_FAILED", "pdf could not be read"
	case errors.Is(err, domain.ErrImageConversion):
		return http.StatusUnprocessableEntity, "IMAGE_CONVERSION_FAILED", "scanned pdf could not be converted to an image; the scan encoding may be unsupported"
	case errors.Is(err, domain.ErrParserNotConfigured):
		return http.StatusServiceUnavailable, "PARSER_NOT_CONFIGURED", "ai parsing is not configured; set the parser api key"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "EMPTY_DOCUMENT", "document contains no usable data"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
