package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"teklio/internal/domain"
)

// Number is a required numeric field on the model's wire format. It accepts
// JSON numbers and formatted strings; anything unparseable coerces to 0.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	v, ok := coerceNumeric(b)
	if !ok {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// OptNumber is an optional numeric field: unparseable, null, or absent
// values leave Valid false rather than producing 0.
type OptNumber struct {
	Value float64
	Valid bool
}

func (o *OptNumber) UnmarshalJSON(b []byte) error {
	v, ok := coerceNumeric(b)
	o.Value, o.Valid = v, ok
	return nil
}

func (o OptNumber) ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// OptInt is an optional integer field; fractional inputs round to nearest.
type OptInt struct {
	Value int
	Valid bool
}

func (o *OptInt) UnmarshalJSON(b []byte) error {
	v, ok := coerceNumeric(b)
	if !ok {
		o.Valid = false
		return nil
	}
	o.Value, o.Valid = int(math.Round(v)), true
	return nil
}

func (o OptInt) ptr() *int {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func coerceNumeric(b []byte) (float64, bool) {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return 0, false
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return 0, false
		}
		return ParseDecimal(str)
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Wire types mirror the JSON shape the prompts demand from the model. Extra
// keys in contact_info and attributes are preserved, not rejected.

type wireDocument struct {
	Company  wireCompany  `json:"company"`
	Person   *wirePerson  `json:"person"`
	Proposal wireProposal `json:"proposal"`
}

type wireCompany struct {
	Name        string         `json:"name"`
	ContactInfo map[string]any `json:"contact_info"`
}

type wirePerson struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Title string `json:"title"`
}

type wireProposal struct {
	Currency    string     `json:"currency"`
	TotalAmount Number     `json:"total_amount"`
	VATRate     OptNumber  `json:"vat_rate"`
	VATAmount   OptNumber  `json:"vat_amount"`
	GrandTotal  OptNumber  `json:"grand_total"`
	Items       []wireItem `json:"items"`
}

type wireItem struct {
	Description string         `json:"description"`
	Quantity    OptNumber      `json:"quantity"`
	Unit        string         `json:"unit"`
	UnitPrice   OptNumber      `json:"unit_price"`
	TotalPrice  OptNumber      `json:"total_price"`
	Width       OptNumber      `json:"width"`
	Length      OptNumber      `json:"length"`
	PieceCount  OptInt         `json:"piece_count"`
	Kelvin      OptInt         `json:"kelvin"`
	Watt        OptNumber      `json:"watt"`
	Lumen       OptInt         `json:"lumen"`
	IsHeader    bool           `json:"is_header"`
	Attributes  map[string]any `json:"attributes"`
}

// decodeDocument validates the model's JSON output against the wire schema
// and converts it into a domain ParsedDocument (not yet normalized).
func decodeDocument(raw string) (*domain.ParsedDocument, error) {
	var w wireDocument
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("model output is not valid document JSON: %w", err)
	}

	doc := &domain.ParsedDocument{
		Company: domain.CompanyInfo{
			Name:        strings.TrimSpace(w.Company.Name),
			ContactInfo: domain.ContactInfoFromMap(w.Company.ContactInfo),
		},
		Proposal: domain.ProposalInfo{
			Currency:    strings.ToUpper(strings.TrimSpace(w.Proposal.Currency)),
			TotalAmount: float64(w.Proposal.TotalAmount),
			VATRate:     w.Proposal.VATRate.ptr(),
			VATAmount:   w.Proposal.VATAmount.ptr(),
			GrandTotal:  w.Proposal.GrandTotal.ptr(),
		},
	}

	if w.Person != nil && strings.TrimSpace(w.Person.Name) != "" {
		doc.Person = &domain.PersonInfo{
			Name:  strings.TrimSpace(w.Person.Name),
			Email: strings.TrimSpace(w.Person.Email),
			Phone: strings.TrimSpace(w.Person.Phone),
			Title: strings.TrimSpace(w.Person.Title),
		}
	}

	doc.Proposal.Items = make([]domain.LineItem, 0, len(w.Proposal.Items))
	for _, wi := range w.Proposal.Items {
		item := domain.LineItem{
			Description: strings.TrimSpace(wi.Description),
			Unit:        strings.TrimSpace(wi.Unit),
			IsHeader:    wi.IsHeader,
		}
		if wi.Quantity.Valid {
			item.Quantity = wi.Quantity.Value
		}
		item.UnitPrice = wi.UnitPrice.ptr()
		item.TotalPrice = wi.TotalPrice.ptr()
		item.Width = nonNegative(wi.Width.ptr())
		item.Length = nonNegative(wi.Length.ptr())
		item.PieceCount = nonNegativeInt(wi.PieceCount.ptr())
		item.Kelvin = nonNegativeInt(wi.Kelvin.ptr())
		item.Watt = nonNegative(wi.Watt.ptr())
		item.Lumen = nonNegativeInt(wi.Lumen.ptr())
		if len(wi.Attributes) > 0 {
			item.Attributes = map[string]string{}
			for k, v := range wi.Attributes {
				if v == nil {
					continue
				}
				item.Attributes[k] = fmt.Sprintf("%v", v)
			}
		}
		doc.Proposal.Items = append(doc.Proposal.Items, item)
	}

	return doc, nil
}

func nonNegative(v *float64) *float64 {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

func nonNegativeInt(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}
