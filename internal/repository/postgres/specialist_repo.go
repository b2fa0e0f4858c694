package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

type specialistRepo struct {
	db *sqlx.DB
}

// NewSpecialistRepo creates a new PostgreSQL-backed SpecialistRepository.
func NewSpecialistRepo(db *sqlx.DB) port.SpecialistRepository {
	return &specialistRepo{db: db}
}

func (r *specialistRepo) Create(ctx context.Context, specialist *domain.Specialist) error {
	specialist.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO specialists (id, name, is_active, created_at) VALUES ($1, $2, $3, $4)",
		specialist.ID, specialist.Name, specialist.IsActive, specialist.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "specialists_name_key") {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("specialistRepo.Create: %w", err)
	}
	return nil
}

func (r *specialistRepo) List(ctx context.Context, activeOnly bool) ([]domain.Specialist, error) {
	query := "SELECT * FROM specialists"
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY name"

	var specialists []domain.Specialist
	if err := r.db.SelectContext(ctx, &specialists, query); err != nil {
		return nil, fmt.Errorf("specialistRepo.List: %w", err)
	}
	return specialists, nil
}

func (r *specialistRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE specialists SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return fmt.Errorf("specialistRepo.SetActive: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *specialistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM specialists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("specialistRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
