package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"budgetflow/internal/domain"
	"budgetflow/internal/service"
	"budgetflow/mocks"
)

func TestBandFor(t *testing.T) {
	cases := []struct {
		percent string
		want    domain.EfficiencyBand
	}{
		{"0", domain.BandNoData},
		{"0.1", domain.BandVeryEfficient},
		{"50", domain.BandVeryEfficient},
		{"50.1", domain.BandNormal},
		{"80", domain.BandNormal},
		{"80.1", domain.BandNearLimit},
		{"100", domain.BandNearLimit},
		{"100.1", domain.BandOverBudget},
		{"250", domain.BandOverBudget},
	}
	for _, tc := range cases {
		percent, err := decimal.NewFromString(tc.percent)
		require.NoError(t, err)
		assert.Equal(t, tc.want, service.BandFor(percent), "percent %s", tc.percent)
	}
}

func TestReportService_Efficiency(t *testing.T) {
	reportRepo := new(mocks.MockReportRepo)
	svc := service.NewReportService(reportRepo)

	reportRepo.On("FileEfficiency", mock.Anything).Return([]domain.FileEfficiency{
		{
			FileID:       uuid.New(),
			FileName:     "q1.xlsx",
			TotalPlanned: decimal.NewFromInt(1000000),
			TotalActual:  decimal.NewFromInt(400000),
		},
		{
			FileID:       uuid.New(),
			FileName:     "q2.xlsx",
			TotalPlanned: decimal.NewFromInt(1000000),
			TotalActual:  decimal.Zero,
		},
		{
			FileID:       uuid.New(),
			FileName:     "q3.xlsx",
			TotalPlanned: decimal.NewFromInt(500000),
			TotalActual:  decimal.NewFromInt(600000),
		},
	}, nil)

	entries, err := svc.Efficiency(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "40", entries[0].SpendPercent.String())
	assert.Equal(t, domain.BandVeryEfficient, entries[0].Band)

	// No actuals recorded yet reads as no data, not 0% efficiency.
	assert.True(t, entries[1].SpendPercent.IsZero())
	assert.Equal(t, domain.BandNoData, entries[1].Band)

	assert.Equal(t, "120", entries[2].SpendPercent.String())
	assert.Equal(t, domain.BandOverBudget, entries[2].Band)
}

func TestReportService_Dashboard_CompanyNames(t *testing.T) {
	reportRepo := new(mocks.MockReportRepo)
	svc := service.NewReportService(reportRepo)

	reportRepo.On("Summary", mock.Anything).Return(&domain.BudgetSummary{FileCount: 3}, nil)
	reportRepo.On("ByCompanyPrefix", mock.Anything).Return([]domain.CompanyTotal{
		{Company: "A", Total: decimal.NewFromInt(500), ItemCount: 2},
		{Company: "T", Total: decimal.NewFromInt(300), ItemCount: 1},
		{Company: "Z", Total: decimal.NewFromInt(100), ItemCount: 1},
	}, nil)
	reportRepo.On("ByMonth", mock.Anything).Return([]domain.MonthlyTotal{}, nil)
	reportRepo.On("TopCampaigns", mock.Anything, 10).Return([]domain.CampaignTotal{}, nil)
	reportRepo.On("FileEfficiency", mock.Anything).Return([]domain.FileEfficiency{}, nil)
	reportRepo.On("StatusCounts", mock.Anything).Return([]domain.StatusCount{
		{Status: domain.FileStatusFinalized, Count: 3},
	}, nil)

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.ByCompany, 3)
	assert.Equal(t, "Юнител", dashboard.ByCompany[0].Company)
	assert.Equal(t, "MPSC", dashboard.ByCompany[1].Company)
	assert.Equal(t, "Other (Z)", dashboard.ByCompany[2].Company)
	assert.Equal(t, 3, dashboard.Summary.FileCount)
	reportRepo.AssertExpectations(t)
}
