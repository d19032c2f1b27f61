package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"teklio/internal/domain"
	"teklio/internal/handler"
	"teklio/internal/parser"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrWorkbookRead, http.StatusUnprocessableEntity, "WORKBOOK_READ_FAILED"},
		{domain.ErrPDFRead, http.StatusUnprocessableEntity, "PDF_READ_FAILED"},
		{domain.ErrImageConversion, http.StatusUnprocessableEntity, "IMAGE_CONVERSION_FAILED"},
		{domain.ErrParserNotConfigured, http.StatusServiceUnavailable, "PARSER_NOT_CONFIGURED"},
		{domain.ErrEmptyDocument, http.StatusBadRequest, "EMPTY_DOCUMENT"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, msg := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, code)
		assert.NotEmpty(t, msg)
	}
}

func TestMapDomainError_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: zip header missing", domain.ErrWorkbookRead)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "WORKBOOK_READ_FAILED", code)
}

func TestMapDomainError_RateLimit(t *testing.T) {
	err := fmt.Errorf("model call: %w", parser.NewRateLimitError(errors.New("429"), 30))
	status, code, _ := handler.MapDomainError(err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "MODEL_RATE_LIMITED", code)
}
