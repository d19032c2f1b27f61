package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company represents a customer company record.
type Company struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	TaxID       string      `db:"tax_id" json:"tax_id"`
	TaxOffice   string      `db:"tax_office" json:"tax_office"`
	Address     string      `db:"address" json:"address"`
	Phone       string      `db:"phone" json:"phone"`
	Email       string      `db:"email" json:"email"`
	Website     string      `db:"website" json:"website"`
	ContactInfo ContactInfo `db:"contact_info" json:"contact_info"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// Contact represents a person attached to (or floating free of) a company.
type Contact struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	CompanyID *uuid.UUID `db:"company_id" json:"company_id"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	Email     string     `db:"email" json:"email"`
	Phone     string     `db:"phone" json:"phone"`
	Title     string     `db:"title" json:"title"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Proposal represents a stored proposal header.
type Proposal struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	CompanyID   *uuid.UUID      `db:"company_id" json:"company_id"`
	ContactID   *uuid.UUID      `db:"contact_id" json:"contact_id"`
	Currency    string          `db:"currency" json:"currency"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	VATRate     decimal.Decimal `db:"vat_rate" json:"vat_rate"`
	VATAmount   decimal.Decimal `db:"vat_amount" json:"vat_amount"`
	GrandTotal  decimal.Decimal `db:"grand_total" json:"grand_total"`
	Status      ProposalStatus  `db:"status" json:"status"`
	CreatedBy   string          `db:"created_by" json:"created_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ProposalItem represents one stored line of a proposal. Header rows carry
// only a description; every numeric column stays NULL.
type ProposalItem struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	ProposalID  uuid.UUID        `db:"proposal_id" json:"proposal_id"`
	SortOrder   int              `db:"sort_order" json:"sort_order"`
	Description string           `db:"description" json:"description"`
	IsHeader    bool             `db:"is_header" json:"is_header"`
	Quantity    *decimal.Decimal `db:"quantity" json:"quantity"`
	Unit        string           `db:"unit" json:"unit"`
	UnitPrice   *decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice  *decimal.Decimal `db:"total_price" json:"total_price"`
	Width       *decimal.Decimal `db:"width" json:"width"`
	Length      *decimal.Decimal `db:"length" json:"length"`
	PieceCount  *int             `db:"piece_count" json:"piece_count"`
	Kelvin      *int             `db:"kelvin" json:"kelvin"`
	Watt        *decimal.Decimal `db:"watt" json:"watt"`
	Lumen       *int             `db:"lumen" json:"lumen"`
	Attributes  Attributes       `db:"attributes" json:"attributes"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// AuditEntry records a mutation performed through the import pipeline.
type AuditEntry struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Action    AuditAction     `db:"action" json:"action"`
	EntityID  uuid.UUID       `db:"entity_id" json:"entity_id"`
	CompanyID *uuid.UUID      `db:"company_id" json:"company_id"`
	Actor     string          `db:"actor" json:"actor"`
	Snapshot  json.RawMessage `db:"snapshot" json:"snapshot"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
