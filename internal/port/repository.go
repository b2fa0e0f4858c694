package port

import (
	"context"

	"github.com/google/uuid"

	"budgetflow/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// BudgetFileRepository defines the contract for budget file persistence.
// CreateWithItems persists a file and its line items in one transaction so
// a failed bulk insert leaves nothing behind.
type BudgetFileRepository interface {
	CreateWithItems(ctx context.Context, file *domain.BudgetFile, items []domain.BudgetItem) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.BudgetFile, error)
	GetByHash(ctx context.Context, hash string) (*domain.BudgetFile, error)
	List(ctx context.Context, statuses []domain.FileStatus, offset, limit int) ([]domain.BudgetFile, int, error)
	ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.BudgetFile, int, error)
	Update(ctx context.Context, file *domain.BudgetFile) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}

// BudgetItemRepository defines the contract for line item persistence.
// ListFinalized is the dashboard query boundary: it must only ever return
// items whose parent file status is finalized.
type BudgetItemRepository interface {
	GetByID(ctx context.Context, itemID uuid.UUID) (*domain.BudgetItem, error)
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.BudgetItem, error)
	ListFinalized(ctx context.Context, channel *domain.ChannelType, offset, limit int) ([]domain.BudgetItem, int, error)
	Update(ctx context.Context, item *domain.BudgetItem) error
	DeleteByFile(ctx context.Context, fileID uuid.UUID) error
}

// SpecialistRepository defines the contract for the persisted specialist
// roster.
type SpecialistRepository interface {
	Create(ctx context.Context, specialist *domain.Specialist) error
	List(ctx context.Context, activeOnly bool) ([]domain.Specialist, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportRepository defines the read-only aggregation queries behind the
// dashboard. Implementations must enforce status filtering in SQL, not in
// the caller.
type ReportRepository interface {
	Summary(ctx context.Context) (*domain.BudgetSummary, error)
	ByCompanyPrefix(ctx context.Context) ([]domain.CompanyTotal, error)
	ByMonth(ctx context.Context) ([]domain.MonthlyTotal, error)
	TopCampaigns(ctx context.Context, limit int) ([]domain.CampaignTotal, error)
	FileEfficiency(ctx context.Context) ([]domain.FileEfficiency, error)
	StatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}
