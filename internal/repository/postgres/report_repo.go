package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
//
// File-level summaries cover the approved family (approved_for_print,
// signing, finalized); item-level aggregations are finalized-only. Pending
// and rejected data never reaches any of these queries.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

const approvedFamilyFilter = "status IN ('approved_for_print', 'signing', 'finalized')"

func (r *reportRepo) Summary(ctx context.Context) (*domain.BudgetSummary, error) {
	var summary domain.BudgetSummary
	err := r.db.GetContext(ctx, &summary,
		`SELECT COALESCE(SUM(total_planned), 0) AS total_planned,
		        COALESCE(SUM(total_actual), 0)  AS total_actual,
		        COUNT(*)                        AS file_count,
		        COALESCE(AVG(total_actual), 0)  AS avg_actual
		 FROM budget_files WHERE `+approvedFamilyFilter)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.Summary: %w", err)
	}
	return &summary, nil
}

func (r *reportRepo) ByCompanyPrefix(ctx context.Context) ([]domain.CompanyTotal, error) {
	var totals []domain.CompanyTotal
	err := r.db.SelectContext(ctx, &totals,
		`SELECT UPPER(LEFT(i.budget_code, 1))         AS company,
		        COALESCE(SUM(i.amount_planned), 0)    AS total,
		        COUNT(*)                              AS item_count
		 FROM budget_items i
		 JOIN budget_files f ON f.id = i.file_id
		 WHERE f.status = $1 AND i.budget_code <> ''
		 GROUP BY UPPER(LEFT(i.budget_code, 1))
		 ORDER BY total DESC`,
		domain.FileStatusFinalized)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ByCompanyPrefix: %w", err)
	}
	return totals, nil
}

func (r *reportRepo) ByMonth(ctx context.Context) ([]domain.MonthlyTotal, error) {
	var totals []domain.MonthlyTotal
	err := r.db.SelectContext(ctx, &totals,
		`SELECT to_char(uploaded_at, 'YYYY-MM')       AS month,
		        COALESCE(SUM(total_planned), 0)       AS total_planned,
		        COALESCE(SUM(total_actual), 0)        AS total_actual,
		        COUNT(*)                              AS file_count
		 FROM budget_files WHERE `+approvedFamilyFilter+`
		 GROUP BY to_char(uploaded_at, 'YYYY-MM')
		 ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ByMonth: %w", err)
	}
	return totals, nil
}

func (r *reportRepo) TopCampaigns(ctx context.Context, limit int) ([]domain.CampaignTotal, error) {
	var totals []domain.CampaignTotal
	err := r.db.SelectContext(ctx, &totals,
		`SELECT i.campaign_name,
		        i.budget_code,
		        COALESCE(SUM(i.amount_planned), 0) AS total
		 FROM budget_items i
		 JOIN budget_files f ON f.id = i.file_id
		 WHERE f.status = $1 AND i.campaign_name <> ''
		 GROUP BY i.campaign_name, i.budget_code
		 ORDER BY total DESC
		 LIMIT $2`,
		domain.FileStatusFinalized, limit)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.TopCampaigns: %w", err)
	}
	return totals, nil
}

func (r *reportRepo) FileEfficiency(ctx context.Context) ([]domain.FileEfficiency, error) {
	var files []domain.FileEfficiency
	err := r.db.SelectContext(ctx, &files,
		`SELECT id AS file_id, file_name, total_planned, total_actual
		 FROM budget_files WHERE `+approvedFamilyFilter+`
		 ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.FileEfficiency: %w", err)
	}
	return files, nil
}

func (r *reportRepo) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	var counts []domain.StatusCount
	err := r.db.SelectContext(ctx, &counts,
		"SELECT status, COUNT(*) AS count FROM budget_files GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("reportRepo.StatusCounts: %w", err)
	}
	return counts, nil
}
