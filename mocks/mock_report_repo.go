package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"budgetflow/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Summary(ctx context.Context) (*domain.BudgetSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSummary), args.Error(1)
}

func (m *MockReportRepo) ByCompanyPrefix(ctx context.Context) ([]domain.CompanyTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyTotal), args.Error(1)
}

func (m *MockReportRepo) ByMonth(ctx context.Context) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}

func (m *MockReportRepo) TopCampaigns(ctx context.Context, limit int) ([]domain.CampaignTotal, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CampaignTotal), args.Error(1)
}

func (m *MockReportRepo) FileEfficiency(ctx context.Context) ([]domain.FileEfficiency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileEfficiency), args.Error(1)
}

func (m *MockReportRepo) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}
