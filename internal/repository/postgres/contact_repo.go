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

type contactRepo struct {
	db *sqlx.DB
}

// NewContactRepo creates a new PostgreSQL-backed ContactRepository.
func NewContactRepo(db *sqlx.DB) port.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	contact.ID = uuid.New()
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	query := `INSERT INTO contacts (id, company_id, first_name, last_name, email, phone, title,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.CompanyID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Title,
		contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("contactRepo.Create: %w", err)
	}
	return nil
}

func (r *contactRepo) GetByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.GetContext(ctx, &contact,
		"SELECT * FROM contacts WHERE lower(email) = lower($1) LIMIT 1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("contactRepo.GetByEmail: %w", err)
	}
	return &contact, nil
}

func (r *contactRepo) GetByName(ctx context.Context, companyID *uuid.UUID, firstName, lastName string) (*domain.Contact, error) {
	var contact domain.Contact
	var err error
	if companyID != nil {
		err = r.db.GetContext(ctx, &contact,
			`SELECT * FROM contacts
			 WHERE company_id = $1 AND lower(first_name) = lower($2) AND lower(last_name) = lower($3)
			 LIMIT 1`,
			*companyID, firstName, lastName)
	} else {
		err = r.db.GetContext(ctx, &contact,
			`SELECT * FROM contacts
			 WHERE lower(first_name) = lower($1) AND lower(last_name) = lower($2)
			 LIMIT 1`,
			firstName, lastName)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("contactRepo.GetByName: %w", err)
	}
	return &contact, nil
}

func (r *contactRepo) FindLoose(ctx context.Context, companyID uuid.UUID, firstName, lastName string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.GetContext(ctx, &contact,
		`SELECT * FROM contacts
		 WHERE company_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $3)
		 ORDER BY created_at
		 LIMIT 1`,
		companyID, "%"+firstName+"%", "%"+lastName+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("contactRepo.FindLoose: %w", err)
	}
	return &contact, nil
}

func (r *contactRepo) Update(ctx context.Context, contact *domain.Contact) error {
	contact.UpdatedAt = time.Now().UTC()

	query := `UPDATE contacts SET company_id = $2, first_name = $3, last_name = $4,
		email = $5, phone = $6, title = $7, updated_at = $8
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.CompanyID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Title, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("contactRepo.Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contactRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
