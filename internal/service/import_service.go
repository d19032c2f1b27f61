package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"teklio/internal/domain"
	"teklio/internal/extract"
	"teklio/internal/parser"
	"teklio/internal/port"
)

// ImportService drives the extract-then-parse half of the pipeline: it turns
// uploaded workbooks, PDFs and pasted text into ParsedDocuments. Originals
// are archived to object storage when a store is configured; archival is
// best-effort and never fails an import.
type ImportService struct {
	parser    *parser.Service
	storage   port.ObjectStorage
	bucket    string
	rasterDPI int
}

// NewImportService creates the import pipeline front end. storage may be nil
// to disable archival.
func NewImportService(p *parser.Service, storage port.ObjectStorage, bucket string, rasterDPI int) *ImportService {
	if rasterDPI <= 0 {
		rasterDPI = extract.DefaultRasterDPI
	}
	return &ImportService{parser: p, storage: storage, bucket: bucket, rasterDPI: rasterDPI}
}

// ParseSpreadsheet flattens a workbook and parses it as a proposal. The model
// is required here: tabular layouts vary too much for the positional
// fallback.
func (s *ImportService) ParseSpreadsheet(ctx context.Context, filename string, data []byte) (*domain.ParsedDocument, error) {
	text, err := extract.ExtractWorkbook(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, domain.ErrEmptyDocument
	}

	doc, err := s.parser.ParseProposal(ctx, parser.Content{Text: text}, true)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, filename, data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return doc, nil
}

// ParsePDFProposal extracts a proposal PDF (text layer or page-1 raster) and
// parses it. Model required, same as spreadsheets.
func (s *ImportService) ParsePDFProposal(ctx context.Context, filename string, data []byte) (*domain.ParsedDocument, error) {
	content, err := extract.ExtractPDF(ctx, data, s.rasterDPI)
	if err != nil {
		return nil, err
	}

	doc, err := s.parser.ParseProposal(ctx, parser.Content{Text: content.Text, ImageBase64: content.ImageBase64}, true)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, filename, data, "application/pdf")
	return doc, nil
}

// ParseInvoice extracts and parses an invoice PDF. Invoices always need the
// model; the converter decides between the text and image path internally.
func (s *ImportService) ParseInvoice(ctx context.Context, filename string, data []byte) (*domain.ParsedDocument, error) {
	content, err := extract.ExtractPDF(ctx, data, s.rasterDPI)
	if err != nil {
		return nil, err
	}

	doc, err := s.parser.ParseInvoice(ctx, parser.Content{Text: content.Text, ImageBase64: content.ImageBase64})
	if err != nil {
		return nil, err
	}
	s.archive(ctx, filename, data, "application/pdf")
	return doc, nil
}

// ParseFreeformItems parses pasted tabular text into line items. Optional-AI:
// without a credential (and without forceAI) the deterministic fallback
// applies.
func (s *ImportService) ParseFreeformItems(ctx context.Context, text string, forceAI bool) ([]domain.LineItem, error) {
	if text == "" {
		return nil, domain.ErrEmptyDocument
	}
	return s.parser.ParseItems(ctx, text, forceAI)
}

// archive stores the original upload for later reference. Failures are
// logged and swallowed: the parse result matters more than the copy.
func (s *ImportService) archive(ctx context.Context, filename string, data []byte, contentType string) {
	if s.storage == nil || s.bucket == "" {
		return
	}
	key := fmt.Sprintf("uploads/%s/%s_%s", time.Now().UTC().Format("2006/01/02"), uuid.NewString(), filename)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("service.ImportService: archiving %s failed: %v", filename, err)
	}
}
