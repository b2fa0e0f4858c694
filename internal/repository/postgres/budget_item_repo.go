package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

type budgetItemRepo struct {
	db *sqlx.DB
}

// NewBudgetItemRepo creates a new PostgreSQL-backed BudgetItemRepository.
func NewBudgetItemRepo(db *sqlx.DB) port.BudgetItemRepository {
	return &budgetItemRepo{db: db}
}

// budgetItemInsert is shared with budgetFileRepo.CreateWithItems so both
// insert paths stay column-aligned.
const budgetItemInsert = `INSERT INTO budget_items
	(id, file_id, row_number, specialist, campaign_name, budget_code, vendor,
	 channel, sub_channel, amount_planned, start_date, end_date,
	 metric_1, metric_2, metric_3, description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

func budgetItemInsertArgs(item *domain.BudgetItem) []interface{} {
	return []interface{}{
		item.ID, item.FileID, item.RowNumber, item.Specialist, item.CampaignName,
		item.BudgetCode, item.Vendor, item.Channel, item.SubChannel,
		item.AmountPlanned, item.StartDate, item.EndDate,
		item.Metric1, item.Metric2, item.Metric3, item.Description,
		item.CreatedAt, item.UpdatedAt,
	}
}

func (r *budgetItemRepo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.BudgetItem, error) {
	var item domain.BudgetItem
	err := r.db.GetContext(ctx, &item, "SELECT * FROM budget_items WHERE id = $1", itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("budgetItemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *budgetItemRepo) ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.BudgetItem, error) {
	var items []domain.BudgetItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM budget_items WHERE file_id = $1 ORDER BY row_number", fileID)
	if err != nil {
		return nil, fmt.Errorf("budgetItemRepo.ListByFile: %w", err)
	}
	return items, nil
}

// ListFinalized joins against the parent file so the finalized-only gate is
// enforced here, at the query boundary, not in callers.
func (r *budgetItemRepo) ListFinalized(ctx context.Context, channel *domain.ChannelType, offset, limit int) ([]domain.BudgetItem, int, error) {
	where := `FROM budget_items i
		JOIN budget_files f ON f.id = i.file_id
		WHERE f.status = $1`
	args := []interface{}{domain.FileStatusFinalized}
	if channel != nil {
		args = append(args, *channel)
		where += fmt.Sprintf(" AND i.channel = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("budgetItemRepo.ListFinalized count: %w", err)
	}

	args = append(args, limit, offset)
	var items []domain.BudgetItem
	err := r.db.SelectContext(ctx, &items,
		fmt.Sprintf("SELECT i.* %s ORDER BY i.row_number LIMIT $%d OFFSET $%d",
			where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("budgetItemRepo.ListFinalized: %w", err)
	}
	return items, total, nil
}

func (r *budgetItemRepo) Update(ctx context.Context, item *domain.BudgetItem) error {
	item.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE budget_items SET
			campaign_name = $1, budget_code = $2, vendor = $3, sub_channel = $4,
			amount_planned = $5, start_date = $6, end_date = $7,
			metric_1 = $8, metric_2 = $9, metric_3 = $10, description = $11,
			updated_at = $12
		 WHERE id = $13`,
		item.CampaignName, item.BudgetCode, item.Vendor, item.SubChannel,
		item.AmountPlanned, item.StartDate, item.EndDate,
		item.Metric1, item.Metric2, item.Metric3, item.Description,
		item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("budgetItemRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *budgetItemRepo) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM budget_items WHERE file_id = $1", fileID)
	if err != nil {
		return fmt.Errorf("budgetItemRepo.DeleteByFile: %w", err)
	}
	return nil
}
