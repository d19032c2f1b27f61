package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"teklio/internal/domain"
	"teklio/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.ID = uuid.New()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `INSERT INTO companies (id, name, tax_id, tax_office, address, phone, email, website,
		contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		company.ID, company.Name, company.TaxID, company.TaxOffice, company.Address,
		company.Phone, company.Email, company.Website, company.ContactInfo,
		company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company,
		"SELECT * FROM companies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) GetByNameExact(ctx context.Context, name string) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company,
		"SELECT * FROM companies WHERE lower(name) = lower($1) LIMIT 1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByNameExact: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) SearchByPattern(ctx context.Context, pattern string, limit int) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.SelectContext(ctx, &companies,
		`SELECT * FROM companies
		 WHERE name ILIKE $1
		 ORDER BY name
		 LIMIT $2`,
		pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("companyRepo.SearchByPattern: %w", err)
	}
	return companies, nil
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	company.UpdatedAt = time.Now().UTC()

	query := `UPDATE companies SET name = $2, tax_id = $3, tax_office = $4, address = $5,
		phone = $6, email = $7, website = $8, contact_info = $9, updated_at = $10
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		company.ID, company.Name, company.TaxID, company.TaxOffice, company.Address,
		company.Phone, company.Email, company.Website, company.ContactInfo,
		company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("companyRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
