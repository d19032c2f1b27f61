package parser

import (
	"strings"

	"teklio/internal/domain"
)

// Normalize applies the pipeline's consistency rules to a freshly decoded
// proposal document: per-item defaults and price derivation, the
// authoritative document total, currency and VAT defaults, and the
// company-name repair heuristic.
func Normalize(doc *domain.ParsedDocument) {
	normalize(doc, true)
}

// NormalizeInvoice is Normalize without the currency default. Invoice
// currency is detected from the document; when the model could not read it
// the field stays empty rather than claiming a currency the invoice never
// stated.
func NormalizeInvoice(doc *domain.ParsedDocument) {
	normalize(doc, false)
}

func normalize(doc *domain.ParsedDocument, defaultCurrency bool) {
	for i := range doc.Proposal.Items {
		normalizeItem(&doc.Proposal.Items[i])
	}

	// The document total is always the sum of item totals, regardless of
	// what the model reported, so header and items can never disagree.
	var total float64
	for i := range doc.Proposal.Items {
		item := &doc.Proposal.Items[i]
		if item.IsHeader || item.TotalPrice == nil {
			continue
		}
		total += *item.TotalPrice
	}
	doc.Proposal.TotalAmount = total

	if defaultCurrency && doc.Proposal.Currency == "" {
		doc.Proposal.Currency = domain.DefaultCurrency
	}
	if doc.Proposal.VATRate == nil {
		rate := domain.DefaultVATRate
		doc.Proposal.VATRate = &rate
	}
	if doc.Proposal.VATAmount == nil {
		vat := total * *doc.Proposal.VATRate / 100
		doc.Proposal.VATAmount = &vat
	}
	if doc.Proposal.GrandTotal == nil {
		grand := total + *doc.Proposal.VATAmount
		doc.Proposal.GrandTotal = &grand
	}

	RepairCompanyName(doc)
}

func normalizeItem(item *domain.LineItem) {
	item.Description = strings.TrimSpace(item.Description)

	if item.IsHeader {
		// Section labels carry only a description.
		*item = domain.LineItem{Description: item.Description, IsHeader: true}
		if item.Description == "" {
			item.Description = domain.DefaultDescription
		}
		return
	}

	if item.Description == "" {
		item.Description = domain.DefaultDescription
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Unit == "" {
		item.Unit = domain.DefaultUnit
	}

	// Exactly one of unit price / total price may be absent and is derived
	// from the other. When both are present the stated total wins.
	switch {
	case item.TotalPrice == nil && item.UnitPrice != nil:
		total := item.Quantity * *item.UnitPrice
		item.TotalPrice = &total
	case item.UnitPrice == nil && item.TotalPrice != nil && item.Quantity != 0:
		unit := *item.TotalPrice / item.Quantity
		item.UnitPrice = &unit
	}
}

// companyNameArtifacts flags model output that echoed a spreadsheet sheet
// name instead of extracting the real company. Kept deliberately narrow: it
// patches the one artifact pattern observed in production.
var companyNameArtifacts = []string{"sheet", "sayfa"}

// RepairCompanyName substitutes the contact-info company field when the
// detected name is empty or a sheet-name artifact.
func RepairCompanyName(doc *domain.ParsedDocument) {
	name := strings.TrimSpace(doc.Company.Name)
	if name != "" && !containsArtifact(name) {
		return
	}
	if alt := strings.TrimSpace(doc.Company.ContactInfo.Company); alt != "" {
		doc.Company.Name = alt
	}
}

func containsArtifact(name string) bool {
	lower := strings.ToLower(name)
	for _, a := range companyNameArtifacts {
		if strings.Contains(lower, a) {
			return true
		}
	}
	return false
}
