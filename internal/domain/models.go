package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an authenticated user. The Username doubles as the
// row-ownership key stored on budget items.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// BudgetFile is one uploaded spreadsheet submission moving through the
// approval workflow.
type BudgetFile struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	FileName     string      `db:"file_name" json:"file_name"`
	FileHash     string      `db:"file_hash" json:"file_hash"`
	BudgetType   BudgetType  `db:"budget_type" json:"budget_type"`
	ParentFileID *uuid.UUID  `db:"parent_file_id" json:"parent_file_id"`
	Channel      ChannelType `db:"channel" json:"channel"`
	Status       FileStatus  `db:"status" json:"status"`

	UploadedBy uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	ReviewedBy *uuid.UUID `db:"reviewed_by" json:"reviewed_by"`

	RowCount     int             `db:"row_count" json:"row_count"`
	TotalPlanned decimal.Decimal `db:"total_planned" json:"total_planned"`
	TotalActual  decimal.Decimal `db:"total_actual" json:"total_actual"`

	ReviewComment string `db:"review_comment" json:"review_comment"`

	S3Bucket    string  `db:"s3_bucket" json:"s3_bucket"`
	OriginalKey string  `db:"original_key" json:"original_key"`
	PDFKey      *string `db:"pdf_key" json:"pdf_key"`
	SignedKey   *string `db:"signed_key" json:"signed_key"`

	UploadedAt     time.Time  `db:"uploaded_at" json:"uploaded_at"`
	ReviewedAt     *time.Time `db:"reviewed_at" json:"reviewed_at"`
	PDFGeneratedAt *time.Time `db:"pdf_generated_at" json:"pdf_generated_at"`
	SignedAt       *time.Time `db:"signed_at" json:"signed_at"`
	FinalizedAt    *time.Time `db:"finalized_at" json:"finalized_at"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// BudgetItem is one normalized line row belonging to a BudgetFile.
// Metric fields are generic slots whose meaning is channel-dependent;
// MetricLabelsFor resolves the human labels.
type BudgetItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FileID    uuid.UUID `db:"file_id" json:"file_id"`
	RowNumber int       `db:"row_number" json:"row_number"`

	Specialist string `db:"specialist" json:"specialist"`

	CampaignName string      `db:"campaign_name" json:"campaign_name"`
	BudgetCode   string      `db:"budget_code" json:"budget_code"`
	Vendor       string      `db:"vendor" json:"vendor"`
	Channel      ChannelType `db:"channel" json:"channel"`
	SubChannel   string      `db:"sub_channel" json:"sub_channel"`

	AmountPlanned decimal.NullDecimal `db:"amount_planned" json:"amount_planned"`
	StartDate     *time.Time          `db:"start_date" json:"start_date"`
	EndDate       *time.Time          `db:"end_date" json:"end_date"`

	Metric1     string `db:"metric_1" json:"metric_1"`
	Metric2     string `db:"metric_2" json:"metric_2"`
	Metric3     string `db:"metric_3" json:"metric_3"`
	Description string `db:"description" json:"description"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Specialist is a persisted roster entry. The roster feeds the upload form's
// row-owner assignment and replaces any in-memory session list.
type Specialist struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
