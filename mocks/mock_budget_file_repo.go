package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"budgetflow/internal/domain"
)

// MockBudgetFileRepo is a mock implementation of port.BudgetFileRepository.
type MockBudgetFileRepo struct {
	mock.Mock
}

func (m *MockBudgetFileRepo) CreateWithItems(ctx context.Context, file *domain.BudgetFile, items []domain.BudgetItem) error {
	args := m.Called(ctx, file, items)
	return args.Error(0)
}

func (m *MockBudgetFileRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.BudgetFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetFile), args.Error(1)
}

func (m *MockBudgetFileRepo) GetByHash(ctx context.Context, hash string) (*domain.BudgetFile, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetFile), args.Error(1)
}

func (m *MockBudgetFileRepo) List(ctx context.Context, statuses []domain.FileStatus, offset, limit int) ([]domain.BudgetFile, int, error) {
	args := m.Called(ctx, statuses, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BudgetFile), args.Int(1), args.Error(2)
}

func (m *MockBudgetFileRepo) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.BudgetFile, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BudgetFile), args.Int(1), args.Error(2)
}

func (m *MockBudgetFileRepo) Update(ctx context.Context, file *domain.BudgetFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockBudgetFileRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
