package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"budgetflow/internal/domain"
)

// MockSpecialistRepo is a mock implementation of port.SpecialistRepository.
type MockSpecialistRepo struct {
	mock.Mock
}

func (m *MockSpecialistRepo) Create(ctx context.Context, specialist *domain.Specialist) error {
	args := m.Called(ctx, specialist)
	return args.Error(0)
}

func (m *MockSpecialistRepo) List(ctx context.Context, activeOnly bool) ([]domain.Specialist, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Specialist), args.Error(1)
}

func (m *MockSpecialistRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockSpecialistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
