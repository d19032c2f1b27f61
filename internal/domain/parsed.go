package domain

// ParsedDocument is the normalized, transient output of the structured
// parser. It is produced once per upload and consumed by the persistence
// step; it is never stored verbatim.
type ParsedDocument struct {
	Company  CompanyInfo  `json:"company"`
	Person   *PersonInfo  `json:"person,omitempty"`
	Proposal ProposalInfo `json:"proposal"`
}

// CompanyInfo carries the detected company name plus the open contact bag.
type CompanyInfo struct {
	Name        string      `json:"name"`
	ContactInfo ContactInfo `json:"contact_info"`
}

// PersonInfo carries the detected contact person fields.
type PersonInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Title string `json:"title,omitempty"`
}

// ProposalInfo carries the monetary header fields and the line items.
type ProposalInfo struct {
	Currency    string     `json:"currency"`
	TotalAmount float64    `json:"total_amount"`
	VATRate     *float64   `json:"vat_rate,omitempty"`
	VATAmount   *float64   `json:"vat_amount,omitempty"`
	GrandTotal  *float64   `json:"grand_total,omitempty"`
	Items       []LineItem `json:"items"`
}

// LineItem is one row of a proposal or invoice. A header row is a section
// label: it carries only Description and every numeric field is ignored.
type LineItem struct {
	Description string            `json:"description"`
	Quantity    float64           `json:"quantity"`
	Unit        string            `json:"unit"`
	UnitPrice   *float64          `json:"unit_price,omitempty"`
	TotalPrice  *float64          `json:"total_price,omitempty"`
	Width       *float64          `json:"width,omitempty"`
	Length      *float64          `json:"length,omitempty"`
	PieceCount  *int              `json:"piece_count,omitempty"`
	Kelvin      *int              `json:"kelvin,omitempty"`
	Watt        *float64          `json:"watt,omitempty"`
	Lumen       *int              `json:"lumen,omitempty"`
	IsHeader    bool              `json:"is_header,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}
