package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"teklio/internal/domain"
	"teklio/internal/service"
)

// ImportHandler handles document import and parse endpoints.
type ImportHandler struct {
	imports     *service.ImportService
	maxFileSize int64
}

// NewImportHandler creates a new ImportHandler. maxFileSizeMB bounds uploads.
func NewImportHandler(imports *service.ImportService, maxFileSizeMB int64) *ImportHandler {
	return &ImportHandler{
		imports:     imports,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}
}

// ParseSpreadsheet handles POST /api/v1/imports/spreadsheet
func (h *ImportHandler) ParseSpreadsheet(c *gin.Context) {
	filename, data, ok := h.readUpload(c, domain.FileTypeXLSX, domain.FileTypeXLS)
	if !ok {
		return
	}

	doc, err := h.imports.ParseSpreadsheet(c.Request.Context(), filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// ParsePDF handles POST /api/v1/imports/pdf
func (h *ImportHandler) ParsePDF(c *gin.Context) {
	filename, data, ok := h.readUpload(c, domain.FileTypePDF)
	if !ok {
		return
	}

	doc, err := h.imports.ParsePDFProposal(c.Request.Context(), filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// ParseInvoice handles POST /api/v1/imports/invoice
func (h *ImportHandler) ParseInvoice(c *gin.Context) {
	filename, data, ok := h.readUpload(c, domain.FileTypePDF)
	if !ok {
		return
	}

	doc, err := h.imports.ParseInvoice(c.Request.Context(), filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// parseItemsRequest is the body of POST /api/v1/imports/items.
type parseItemsRequest struct {
	Text    string `json:"text" binding:"required"`
	ForceAI bool   `json:"force_ai"`
}

// ParseItems handles POST /api/v1/imports/items
func (h *ImportHandler) ParseItems(c *gin.Context) {
	var req parseItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text field is required")
		return
	}

	items, err := h.imports.ParseFreeformItems(c.Request.Context(), req.Text, req.ForceAI)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

// readUpload pulls the "file" form field, enforces extension and size limits,
// and returns the raw bytes. On failure the error response is already
// written.
func (h *ImportHandler) readUpload(c *gin.Context, allowed ...domain.FileType) (string, []byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	if !extensionAllowed(header.Filename, allowed) {
		HandleError(c, domain.ErrUnsupportedFileType)
		return "", nil, false
	}
	if header.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return "", nil, false
	}

	data, ok := readAll(c, file, h.maxFileSize)
	if !ok {
		return "", nil, false
	}
	return header.Filename, data, true
}

func extensionAllowed(filename string, allowed []domain.FileType) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	ft, ok := domain.AllowedExtensions[ext]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if ft == a {
			return true
		}
	}
	return false
}

func readAll(c *gin.Context, file multipart.File, max int64) ([]byte, bool) {
	// The header size is client-reported; re-check while reading.
	data, err := io.ReadAll(io.LimitReader(file, max+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return nil, false
	}
	if int64(len(data)) > max {
		HandleError(c, domain.ErrFileTooLarge)
		return nil, false
	}
	return data, true
}
