package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"budgetflow/internal/domain"
)

// MockBudgetItemRepo is a mock implementation of port.BudgetItemRepository.
type MockBudgetItemRepo struct {
	mock.Mock
}

func (m *MockBudgetItemRepo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.BudgetItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetItem), args.Error(1)
}

func (m *MockBudgetItemRepo) ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.BudgetItem, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetItem), args.Error(1)
}

func (m *MockBudgetItemRepo) ListFinalized(ctx context.Context, channel *domain.ChannelType, offset, limit int) ([]domain.BudgetItem, int, error) {
	args := m.Called(ctx, channel, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BudgetItem), args.Int(1), args.Error(2)
}

func (m *MockBudgetItemRepo) Update(ctx context.Context, item *domain.BudgetItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBudgetItemRepo) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
