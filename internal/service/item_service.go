package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
)

// RejectedEdit reports a proposed row change refused by the ownership check,
// naming the row's true owner so the caller can explain the refusal.
type RejectedEdit struct {
	ItemID uuid.UUID `json:"item_id"`
	Owner  string    `json:"owner"`
}

// EditOutcome partitions a batch of proposed edits into applied and rejected
// rows. Rejected rows are reported, never silently dropped.
type EditOutcome struct {
	Applied  []domain.BudgetItem `json:"applied"`
	Rejected []RejectedEdit      `json:"rejected"`
	Errors   []string            `json:"errors,omitempty"`
}

// ItemService applies row-level edits under per-row specialist ownership.
type ItemService interface {
	SaveEdits(ctx context.Context, fileID uuid.UUID, proposed []domain.BudgetItem, actor *domain.User) (*EditOutcome, error)
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.BudgetItem, error)
	ListFinalized(ctx context.Context, channel *domain.ChannelType, offset, limit int) ([]domain.BudgetItem, int, error)
}

type itemService struct {
	fileRepo port.BudgetFileRepository
	itemRepo port.BudgetItemRepository
}

// NewItemService creates a new ItemService implementation.
func NewItemService(fileRepo port.BudgetFileRepository, itemRepo port.BudgetItemRepository) ItemService {
	return &itemService{fileRepo: fileRepo, itemRepo: itemRepo}
}

// SaveEdits diffs the proposed rows against the stored rows and applies only
// the changes owned by the acting user. Ownership is checked against the
// stored record, not the client-supplied snapshot; a client holding stale or
// forged ownership data cannot write another specialist's row.
func (s *itemService) SaveEdits(ctx context.Context, fileID uuid.UUID, proposed []domain.BudgetItem, actor *domain.User) (*EditOutcome, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status == domain.FileStatusFinalized || file.Status == domain.FileStatusRejected {
		return nil, fmt.Errorf("%w: file is %s and no longer editable", domain.ErrForbidden, file.Status)
	}

	stored, err := s.itemRepo.ListByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("item.SaveEdits: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.BudgetItem, len(stored))
	for i := range stored {
		byID[stored[i].ID] = &stored[i]
	}

	outcome := &EditOutcome{
		Applied:  make([]domain.BudgetItem, 0),
		Rejected: make([]RejectedEdit, 0),
	}

	for _, p := range proposed {
		current, ok := byID[p.ID]
		if !ok || current.FileID != fileID {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("row %s does not belong to this file", p.ID))
			continue
		}
		if !hasEditableChange(current, &p) {
			continue
		}

		if current.Specialist != actor.Username {
			outcome.Rejected = append(outcome.Rejected, RejectedEdit{ItemID: current.ID, Owner: current.Specialist})
			continue
		}

		applyEditableFields(current, &p)
		current.UpdatedAt = time.Now()
		if err := s.itemRepo.Update(ctx, current); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("row %s: %v", current.ID, err))
			continue
		}
		outcome.Applied = append(outcome.Applied, *current)
	}

	if len(outcome.Applied) > 0 {
		// TotalPlanned stays as ingested; actual spend follows the rows.
		total := decimal.Zero
		for i := range stored {
			if stored[i].AmountPlanned.Valid {
				total = total.Add(stored[i].AmountPlanned.Decimal)
			}
		}
		file.TotalActual = total
		file.UpdatedAt = time.Now()
		if err := s.fileRepo.Update(ctx, file); err != nil {
			return nil, fmt.Errorf("item.SaveEdits: %w", err)
		}
	}

	return outcome, nil
}

func (s *itemService) ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.BudgetItem, error) {
	return s.itemRepo.ListByFile(ctx, fileID)
}

func (s *itemService) ListFinalized(ctx context.Context, channel *domain.ChannelType, offset, limit int) ([]domain.BudgetItem, int, error) {
	return s.itemRepo.ListFinalized(ctx, channel, offset, limit)
}

// hasEditableChange reports whether any field a specialist may edit differs
// between the stored row and the proposal.
func hasEditableChange(current, proposed *domain.BudgetItem) bool {
	if current.CampaignName != proposed.CampaignName ||
		current.BudgetCode != proposed.BudgetCode ||
		current.Vendor != proposed.Vendor ||
		current.SubChannel != proposed.SubChannel ||
		current.Metric1 != proposed.Metric1 ||
		current.Metric2 != proposed.Metric2 ||
		current.Metric3 != proposed.Metric3 ||
		current.Description != proposed.Description {
		return true
	}
	if !nullDecimalEqual(current.AmountPlanned, proposed.AmountPlanned) {
		return true
	}
	if !timePtrEqual(current.StartDate, proposed.StartDate) || !timePtrEqual(current.EndDate, proposed.EndDate) {
		return true
	}
	return false
}

// applyEditableFields copies the editable fields only. Row number, owner and
// parentage are never client-writable.
func applyEditableFields(current, proposed *domain.BudgetItem) {
	current.CampaignName = proposed.CampaignName
	current.BudgetCode = proposed.BudgetCode
	current.Vendor = proposed.Vendor
	current.SubChannel = proposed.SubChannel
	current.AmountPlanned = proposed.AmountPlanned
	current.StartDate = proposed.StartDate
	current.EndDate = proposed.EndDate
	current.Metric1 = proposed.Metric1
	current.Metric2 = proposed.Metric2
	current.Metric3 = proposed.Metric3
	current.Description = proposed.Description
}

func nullDecimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	if !a.Valid {
		return true
	}
	return a.Decimal.Equal(b.Decimal)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
