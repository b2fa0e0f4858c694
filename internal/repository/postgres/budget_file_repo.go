package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

type budgetFileRepo struct {
	db *sqlx.DB
}

// NewBudgetFileRepo creates a new PostgreSQL-backed BudgetFileRepository.
func NewBudgetFileRepo(db *sqlx.DB) port.BudgetFileRepository {
	return &budgetFileRepo{db: db}
}

const budgetFileInsert = `INSERT INTO budget_files
	(id, file_name, file_hash, budget_type, parent_file_id, channel, status,
	 uploaded_by, reviewed_by, row_count, total_planned, total_actual,
	 review_comment, s3_bucket, original_key, pdf_key, signed_key,
	 uploaded_at, reviewed_at, pdf_generated_at, signed_at, finalized_at,
	 created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	 $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

func budgetFileInsertArgs(file *domain.BudgetFile) []interface{} {
	return []interface{}{
		file.ID, file.FileName, file.FileHash, file.BudgetType, file.ParentFileID,
		file.Channel, file.Status, file.UploadedBy, file.ReviewedBy, file.RowCount,
		file.TotalPlanned, file.TotalActual, file.ReviewComment, file.S3Bucket,
		file.OriginalKey, file.PDFKey, file.SignedKey, file.UploadedAt,
		file.ReviewedAt, file.PDFGeneratedAt, file.SignedAt, file.FinalizedAt,
		file.CreatedAt, file.UpdatedAt,
	}
}

func (r *budgetFileRepo) CreateWithItems(ctx context.Context, file *domain.BudgetFile, items []domain.BudgetItem) error {
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("budgetFileRepo.CreateWithItems begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, budgetFileInsert, budgetFileInsertArgs(file)...); err != nil {
		return fmt.Errorf("budgetFileRepo.CreateWithItems insert file: %w", err)
	}

	for i := range items {
		items[i].FileID = file.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		if _, err := tx.ExecContext(ctx, budgetItemInsert, budgetItemInsertArgs(&items[i])...); err != nil {
			return fmt.Errorf("budgetFileRepo.CreateWithItems insert item %d: %w", items[i].RowNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("budgetFileRepo.CreateWithItems commit: %w", err)
	}
	return nil
}

func (r *budgetFileRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.BudgetFile, error) {
	var file domain.BudgetFile
	err := r.db.GetContext(ctx, &file, "SELECT * FROM budget_files WHERE id = $1", fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("budgetFileRepo.GetByID: %w", err)
	}
	return &file, nil
}

func (r *budgetFileRepo) GetByHash(ctx context.Context, hash string) (*domain.BudgetFile, error) {
	var file domain.BudgetFile
	err := r.db.GetContext(ctx, &file, "SELECT * FROM budget_files WHERE file_hash = $1", hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("budgetFileRepo.GetByHash: %w", err)
	}
	return &file, nil
}

func (r *budgetFileRepo) List(ctx context.Context, statuses []domain.FileStatus, offset, limit int) ([]domain.BudgetFile, int, error) {
	where := ""
	args := []interface{}{}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			args = append(args, s)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		where = " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM budget_files"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("budgetFileRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var files []domain.BudgetFile
	err = r.db.SelectContext(ctx, &files,
		fmt.Sprintf("SELECT * FROM budget_files%s ORDER BY uploaded_at DESC LIMIT $%d OFFSET $%d",
			where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("budgetFileRepo.List: %w", err)
	}
	return files, total, nil
}

func (r *budgetFileRepo) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.BudgetFile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM budget_files WHERE uploaded_by = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("budgetFileRepo.ListByUploader count: %w", err)
	}

	var files []domain.BudgetFile
	err = r.db.SelectContext(ctx, &files,
		`SELECT * FROM budget_files WHERE uploaded_by = $1
		 ORDER BY uploaded_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("budgetFileRepo.ListByUploader: %w", err)
	}
	return files, total, nil
}

// Update writes the full mutable state of a file in one statement so a
// transition's status change and metadata stamps land together.
func (r *budgetFileRepo) Update(ctx context.Context, file *domain.BudgetFile) error {
	file.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE budget_files SET
			status = $1, reviewed_by = $2, review_comment = $3,
			pdf_key = $4, signed_key = $5,
			reviewed_at = $6, pdf_generated_at = $7, signed_at = $8, finalized_at = $9,
			row_count = $10, total_planned = $11, total_actual = $12,
			updated_at = $13
		 WHERE id = $14`,
		file.Status, file.ReviewedBy, file.ReviewComment,
		file.PDFKey, file.SignedKey,
		file.ReviewedAt, file.PDFGeneratedAt, file.SignedAt, file.FinalizedAt,
		file.RowCount, file.TotalPlanned, file.TotalActual,
		file.UpdatedAt, file.ID)
	if err != nil {
		return fmt.Errorf("budgetFileRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *budgetFileRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM budget_files WHERE id = $1", fileID)
	if err != nil {
		return fmt.Errorf("budgetFileRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
