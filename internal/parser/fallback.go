package parser

import (
	"strings"

	"teklio/internal/domain"
)

// The deterministic fallback splits delimited text positionally into a fixed
// column order. It never calls a model, never fails, and yields identical
// output for identical input; missing positions stay empty and are filled by
// normalization defaults.

// FallbackDocument builds a minimal ParsedDocument from delimited text
// without any model assistance. The result is normalized before return.
func FallbackDocument(text string) *domain.ParsedDocument {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: FallbackItems(text),
		},
	}
	Normalize(doc)
	return doc
}

// FallbackItems splits each non-empty line of text on the detected delimiter
// (tab, semicolon, or comma) and maps fields positionally.
func FallbackItems(text string) []domain.LineItem {
	delim := detectDelimiter(text)
	var items []domain.LineItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, fallbackItem(strings.Split(line, delim)))
	}
	return items
}

// fallbackItem maps split fields in the fixed order: description, quantity,
// unit, unit price, total price, width, length.
func fallbackItem(fields []string) domain.LineItem {
	get := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	item := domain.LineItem{
		Description: get(0),
		Unit:        get(2),
	}
	if v, ok := ParseDecimal(get(1)); ok {
		item.Quantity = v
	}
	if v, ok := ParseDecimal(get(3)); ok {
		item.UnitPrice = &v
	}
	if v, ok := ParseDecimal(get(4)); ok {
		item.TotalPrice = &v
	}
	if v, ok := ParseDecimal(get(5)); ok && v >= 0 {
		item.Width = &v
	}
	if v, ok := ParseDecimal(get(6)); ok && v >= 0 {
		item.Length = &v
	}
	return item
}

func detectDelimiter(text string) string {
	switch {
	case strings.Contains(text, "\t"):
		return "\t"
	case strings.Contains(text, ";"):
		return ";"
	default:
		return ","
	}
}
