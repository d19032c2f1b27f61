package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"teklio/internal/domain"
	"teklio/internal/port"
)

type proposalRepo struct {
	db *sqlx.DB
}

// NewProposalRepo creates a new PostgreSQL-backed ProposalRepository.
func NewProposalRepo(db *sqlx.DB) port.ProposalRepository {
	return &proposalRepo{db: db}
}

func (r *proposalRepo) Create(ctx context.Context, proposal *domain.Proposal) error {
	proposal.ID = uuid.New()
	now := time.Now().UTC()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	if proposal.Status == "" {
		proposal.Status = domain.ProposalStatusDraft
	}

	query := `INSERT INTO proposals (id, company_id, contact_id, currency, total_amount,
		vat_rate, vat_amount, grand_total, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.CompanyID, proposal.ContactID, proposal.Currency,
		proposal.TotalAmount, proposal.VATRate, proposal.VATAmount, proposal.GrandTotal,
		proposal.Status, proposal.CreatedBy, proposal.CreatedAt, proposal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("proposalRepo.Create: %w", err)
	}
	return nil
}

func (r *proposalRepo) InsertItems(ctx context.Context, proposalID uuid.UUID, items []domain.ProposalItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `INSERT INTO proposal_items (id, proposal_id, sort_order, description, is_header,
		quantity, unit, unit_price, total_price, width, length, piece_count, kelvin, watt, lumen,
		attributes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	now := time.Now().UTC()
	for i := range items {
		item := &items[i]
		item.ID = uuid.New()
		item.ProposalID = proposalID
		item.SortOrder = i
		item.CreatedAt = now

		_, err := r.db.ExecContext(ctx, query,
			item.ID, item.ProposalID, item.SortOrder, item.Description, item.IsHeader,
			item.Quantity, item.Unit, item.UnitPrice, item.TotalPrice,
			item.Width, item.Length, item.PieceCount, item.Kelvin, item.Watt, item.Lumen,
			item.Attributes, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("proposalRepo.InsertItems [%d]: %w", i, err)
		}
	}
	return nil
}

func (r *proposalRepo) FindRecentDuplicate(ctx context.Context, companyID, contactID *uuid.UUID, total decimal.Decimal, since time.Time) (*domain.Proposal, error) {
	// Match on company and/or contact, whichever the submission resolved.
	// With neither there is nothing safe to match on.
	conds := "FALSE"
	args := []interface{}{total, since}
	if companyID != nil {
		args = append(args, *companyID)
		conds = fmt.Sprintf("company_id = $%d", len(args))
	}
	if contactID != nil {
		args = append(args, *contactID)
		if companyID != nil {
			conds = fmt.Sprintf("(%s OR contact_id = $%d)", conds, len(args))
		} else {
			conds = fmt.Sprintf("contact_id = $%d", len(args))
		}
	}

	query := fmt.Sprintf(
		`SELECT * FROM proposals
		 WHERE total_amount = $1 AND created_at >= $2 AND %s
		 ORDER BY created_at DESC
		 LIMIT 1`, conds)

	var proposal domain.Proposal
	err := r.db.GetContext(ctx, &proposal, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("proposalRepo.FindRecentDuplicate: %w", err)
	}
	return &proposal, nil
}
