package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetSummary is the dashboard headline over approved-family files.
type BudgetSummary struct {
	TotalPlanned decimal.Decimal `db:"total_planned" json:"total_planned"`
	TotalActual  decimal.Decimal `db:"total_actual" json:"total_actual"`
	FileCount    int             `db:"file_count" json:"file_count"`
	AvgActual    decimal.Decimal `db:"avg_actual" json:"avg_actual"`
}

// CompanyTotal groups finalized spend by the organizational prefix of the
// budget code (its first letter).
type CompanyTotal struct {
	Company   string          `db:"company" json:"company"`
	Total     decimal.Decimal `db:"total" json:"total"`
	ItemCount int             `db:"item_count" json:"item_count"`
}

// MonthlyTotal is one month of the upload trend.
type MonthlyTotal struct {
	Month        string          `db:"month" json:"month"`
	TotalPlanned decimal.Decimal `db:"total_planned" json:"total_planned"`
	TotalActual  decimal.Decimal `db:"total_actual" json:"total_actual"`
	FileCount    int             `db:"file_count" json:"file_count"`
}

// CampaignTotal is one entry of the top-campaigns ranking.
type CampaignTotal struct {
	CampaignName string          `db:"campaign_name" json:"campaign_name"`
	BudgetCode   string          `db:"budget_code" json:"budget_code"`
	Total        decimal.Decimal `db:"total" json:"total"`
}

// FileEfficiency is the planned-vs-actual ratio input for one file.
// The percentage and its band are derived in the report service.
type FileEfficiency struct {
	FileID       uuid.UUID       `db:"file_id" json:"file_id"`
	FileName     string          `db:"file_name" json:"file_name"`
	TotalPlanned decimal.Decimal `db:"total_planned" json:"total_planned"`
	TotalActual  decimal.Decimal `db:"total_actual" json:"total_actual"`
}

// StatusCount is one slice of the workflow status distribution.
type StatusCount struct {
	Status FileStatus `db:"status" json:"status"`
	Count  int        `db:"count" json:"count"`
}

// EfficiencyBand labels a planned-vs-actual percentage.
type EfficiencyBand string

const (
	BandNoData        EfficiencyBand = "no_data"
	BandVeryEfficient EfficiencyBand = "very_efficient"
	BandNormal        EfficiencyBand = "normal"
	BandNearLimit     EfficiencyBand = "near_limit"
	BandOverBudget    EfficiencyBand = "over_budget"
)
