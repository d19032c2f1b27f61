package parser

import (
	"context"
	"fmt"
	"log"

	"teklio/internal/domain"
	"teklio/internal/port"
)

// Content is the extracted input handed to the structured parser: text from
// the tabular extractor or PDF text pass, or a base64 page image for scans.
type Content struct {
	Text        string
	ImageBase64 string
}

// Service turns extracted document content into validated ParsedDocuments.
// The forceAI flag separates required-AI call sites (spreadsheet and PDF
// proposal import) from optional-AI ones (pasted text): without a credential
// the former fail fast while the latter degrade to the deterministic
// fallback. The degrade-on-model-failure decision lives here, at the call
// site of the model, not in a hidden catch.
type Service struct {
	chat port.ChatCompleter
}

// New creates a parser Service on top of a chat completer.
func New(chat port.ChatCompleter) *Service {
	return &Service{chat: chat}
}

// ParseProposal parses proposal-shaped content (company + person + items).
func (s *Service) ParseProposal(ctx context.Context, content Content, forceAI bool) (*domain.ParsedDocument, error) {
	if !s.chat.Configured() {
		if forceAI {
			return nil, domain.ErrParserNotConfigured
		}
		return FallbackDocument(content.Text), nil
	}

	doc, err := s.parse(ctx, BuildProposalPrompt(), content, Normalize)
	if err != nil {
		if forceAI {
			return nil, err
		}
		log.Printf("parser.Service: model parse failed, using fallback: %v", err)
		return FallbackDocument(content.Text), nil
	}
	return doc, nil
}

// ParseInvoice parses invoice-shaped content. Invoice import always requires
// the model; there is no meaningful fallback for scanned invoices.
func (s *Service) ParseInvoice(ctx context.Context, content Content) (*domain.ParsedDocument, error) {
	if !s.chat.Configured() {
		return nil, domain.ErrParserNotConfigured
	}

	// Invoices keep their detected currency: no EUR default, an unreadable
	// currency stays empty.
	doc, err := s.parse(ctx, BuildInvoicePrompt(), content, NormalizeInvoice)
	if err != nil {
		return nil, err
	}
	if doc.Proposal.Currency == "" {
		log.Printf("parser.Service: invoice currency not detected")
	}
	return doc, nil
}

// ParseItems parses a freeform pasted item list. Optional-AI: without a
// credential or on model failure the positional fallback applies.
func (s *Service) ParseItems(ctx context.Context, text string, forceAI bool) ([]domain.LineItem, error) {
	if !s.chat.Configured() {
		if forceAI {
			return nil, domain.ErrParserNotConfigured
		}
		return FallbackDocument(text).Proposal.Items, nil
	}

	doc, err := s.parse(ctx, BuildItemsPrompt(), Content{Text: text}, Normalize)
	if err != nil {
		if forceAI {
			return nil, err
		}
		log.Printf("parser.Service: model item parse failed, using fallback: %v", err)
		return FallbackDocument(text).Proposal.Items, nil
	}
	return doc.Proposal.Items, nil
}

func (s *Service) parse(ctx context.Context, prompt string, content Content, normalize func(*domain.ParsedDocument)) (*domain.ParsedDocument, error) {
	raw, err := s.chat.Complete(ctx, port.ChatRequest{
		System:      prompt,
		Text:        content.Text,
		ImageBase64: content.ImageBase64,
	})
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	normalize(doc)
	return doc, nil
}
