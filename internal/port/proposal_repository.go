package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"teklio/internal/domain"
)

// ProposalRepository defines the contract for proposal persistence.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	InsertItems(ctx context.Context, proposalID uuid.UUID, items []domain.ProposalItem) error
	// FindRecentDuplicate returns the newest proposal created at or after
	// since with the same total amount and the same company and/or
	// contact, or domain.ErrNotFound. This is the double-submit guard, a
	// time-window heuristic rather than a transactional lock.
	FindRecentDuplicate(ctx context.Context, companyID, contactID *uuid.UUID, total decimal.Decimal, since time.Time) (*domain.Proposal, error)
}

// AuditRepository defines the contract for audit log persistence.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}
