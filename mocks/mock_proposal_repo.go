package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"teklio/internal/domain"
)

// MockProposalRepo is a mock implementation of port.ProposalRepository.
type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) Create(ctx context.Context, proposal *domain.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepo) InsertItems(ctx context.Context, proposalID uuid.UUID, items []domain.ProposalItem) error {
	args := m.Called(ctx, proposalID, items)
	return args.Error(0)
}

func (m *MockProposalRepo) FindRecentDuplicate(ctx context.Context, companyID, contactID *uuid.UUID, total decimal.Decimal, since time.Time) (*domain.Proposal, error) {
	args := m.Called(ctx, companyID, contactID, total, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

// MockAuditRepo is a mock implementation of port.AuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
