package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"teklio/internal/domain"
)

// minTextLength is the scanned-document threshold: a PDF whose extracted
// text trims to fewer characters than this is treated as image-only.
const minTextLength = 20

// PDFContent is the result of converting a PDF: either embedded text or, for
// scanned documents, a base64 PNG of page 1 (no data-URI prefix).
type PDFContent struct {
	Text        string `json:"text,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// ExtractPDF pulls embedded text from every page; when the document turns
// out to be a scan it falls back to rasterizing page 1 at dpi.
func ExtractPDF(ctx context.Context, data []byte, dpi int) (*PDFContent, error) {
	text, err := extractText(data)
	if err != nil {
		return nil, err
	}

	if !IsScanned(text) {
		return &PDFContent{Text: text}, nil
	}

	log.Printf("extract.ExtractPDF: embedded text too short (%d chars), rasterizing page 1", len(strings.TrimSpace(text)))
	img, err := RenderFirstPage(ctx, data, dpi)
	if err != nil {
		return nil, err
	}
	return &PDFContent{ImageBase64: base64.StdEncoding.EncodeToString(img)}, nil
}

// IsScanned reports whether extracted text is too short to be trusted,
// meaning the PDF is likely a scan that needs the image path.
func IsScanned(text string) bool {
	return len(strings.TrimSpace(text)) < minTextLength
}

func extractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPDFRead, err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		// Extraction failure on an otherwise readable PDF usually means
		// the pages hold no text layer; let the raster fallback decide.
		log.Printf("extract.extractText: no text layer: %v", err)
		return "", nil
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPDFRead, err)
	}
	return buf.String(), nil
}
