package port

import (
	"context"

	"github.com/google/uuid"

	"teklio/internal/domain"
)

// CompanyRepository defines the contract for company persistence and search.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	// GetByNameExact performs a case-insensitive exact-name lookup.
	GetByNameExact(ctx context.Context, name string) (*domain.Company, error)
	// SearchByPattern matches stored names against an ILIKE pattern,
	// returning at most limit rows in the store's native order.
	SearchByPattern(ctx context.Context, pattern string, limit int) ([]domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
}

// ContactRepository defines the contract for contact persistence and search.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByEmail(ctx context.Context, email string) (*domain.Contact, error)
	// GetByName performs a case-insensitive first+last name lookup,
	// scoped to a company when companyID is non-nil.
	GetByName(ctx context.Context, companyID *uuid.UUID, firstName, lastName string) (*domain.Contact, error)
	// FindLoose returns the first contact of the company whose first OR
	// last name loosely matches the given tokens.
	FindLoose(ctx context.Context, companyID uuid.UUID, firstName, lastName string) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
}
