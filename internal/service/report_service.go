package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

// companyNames maps the leading budget-code letter to the company it bills.
var companyNames = map[string]string{
	"A": "Юнител",
	"B": "Юнивишн",
	"G": "Green Future",
	"J": "IVLBS",
	"T": "MPSC",
}

// EfficiencyEntry is one file's spend ratio with its band label.
type EfficiencyEntry struct {
	domain.FileEfficiency
	SpendPercent decimal.Decimal       `json:"spend_percent"`
	Band         domain.EfficiencyBand `json:"band"`
}

// Dashboard is the full analytics payload backing the reporting UI. Every
// number in it is derived from approved or finalized files only.
type Dashboard struct {
	Summary      *domain.BudgetSummary  `json:"summary"`
	ByCompany    []domain.CompanyTotal  `json:"by_company"`
	ByMonth      []domain.MonthlyTotal  `json:"by_month"`
	TopCampaigns []domain.CampaignTotal `json:"top_campaigns"`
	Efficiency   []EfficiencyEntry      `json:"efficiency"`
	StatusCounts []domain.StatusCount   `json:"status_counts"`
}

// ReportService produces the analytics projections.
type ReportService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Efficiency(ctx context.Context) ([]EfficiencyEntry, error)
}

type reportService struct {
	reportRepo port.ReportRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(reportRepo port.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

const topCampaignLimit = 10

func (s *reportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	summary, err := s.reportRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}
	byCompany, err := s.reportRepo.ByCompanyPrefix(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}
	for i := range byCompany {
		byCompany[i].Company = companyName(byCompany[i].Company)
	}
	byMonth, err := s.reportRepo.ByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}
	topCampaigns, err := s.reportRepo.TopCampaigns(ctx, topCampaignLimit)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}
	efficiency, err := s.Efficiency(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.reportRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}

	return &Dashboard{
		Summary:      summary,
		ByCompany:    byCompany,
		ByMonth:      byMonth,
		TopCampaigns: topCampaigns,
		Efficiency:   efficiency,
		StatusCounts: statusCounts,
	}, nil
}

func (s *reportService) Efficiency(ctx context.Context) ([]EfficiencyEntry, error) {
	files, err := s.reportRepo.FileEfficiency(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Efficiency: %w", err)
	}

	entries := make([]EfficiencyEntry, 0, len(files))
	for _, f := range files {
		percent := spendPercent(f.TotalPlanned, f.TotalActual)
		entries = append(entries, EfficiencyEntry{
			FileEfficiency: f,
			SpendPercent:   percent,
			Band:           BandFor(percent),
		})
	}
	return entries, nil
}

// spendPercent returns actual spend as a percentage of plan, zero when
// either side is missing.
func spendPercent(planned, actual decimal.Decimal) decimal.Decimal {
	if planned.IsZero() || actual.IsZero() {
		return decimal.Zero
	}
	return actual.Div(planned).Mul(decimal.NewFromInt(100)).Round(1)
}

var (
	bandVeryEfficient = decimal.NewFromInt(50)
	bandNormal        = decimal.NewFromInt(80)
	bandNearLimit     = decimal.NewFromInt(100)
)

// BandFor classifies a spend percentage into an efficiency band.
func BandFor(percent decimal.Decimal) domain.EfficiencyBand {
	switch {
	case percent.IsZero():
		return domain.BandNoData
	case percent.LessThanOrEqual(bandVeryEfficient):
		return domain.BandVeryEfficient
	case percent.LessThanOrEqual(bandNormal):
		return domain.BandNormal
	case percent.LessThanOrEqual(bandNearLimit):
		return domain.BandNearLimit
	default:
		return domain.BandOverBudget
	}
}

// companyName resolves a budget-code prefix to its company, keeping unknown
// prefixes visible instead of folding them into a silent bucket.
func companyName(prefix string) string {
	if name, ok := companyNames[prefix]; ok {
		return name
	}
	return fmt.Sprintf("Other (%s)", prefix)
}
