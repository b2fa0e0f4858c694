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

func planned(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

func storedItems(fileID uuid.UUID) []domain.BudgetItem {
	return []domain.BudgetItem{
		{
			ID:            uuid.New(),
			FileID:        fileID,
			RowNumber:     4,
			Specialist:    "bayarmaa",
			CampaignName:  "Summer Launch",
			BudgetCode:    "A-101",
			AmountPlanned: planned(1200000),
		},
		{
			ID:            uuid.New(),
			FileID:        fileID,
			RowNumber:     5,
			Specialist:    "enkhjin",
			CampaignName:  "Autumn Brand",
			BudgetCode:    "A-102",
			AmountPlanned: planned(800000),
		},
	}
}

func TestItemService_SaveEdits_OwnershipPartition(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	svc := service.NewItemService(fileRepo, itemRepo)

	actor := planner() // username "bayarmaa"
	file := pendingFile(actor.ID)
	items := storedItems(file.ID)

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	itemRepo.On("ListByFile", mock.Anything, file.ID).Return(items, nil)
	itemRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetItem")).Return(nil)
	fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)

	mine := items[0]
	mine.AmountPlanned = planned(1500000)
	theirs := items[1]
	theirs.AmountPlanned = planned(900000)

	outcome, err := svc.SaveEdits(context.Background(), file.ID, []domain.BudgetItem{mine, theirs}, actor)
	require.NoError(t, err)

	require.Len(t, outcome.Applied, 1)
	assert.Equal(t, mine.ID, outcome.Applied[0].ID)
	assert.Equal(t, "1500000", outcome.Applied[0].AmountPlanned.Decimal.String())

	require.Len(t, outcome.Rejected, 1)
	assert.Equal(t, theirs.ID, outcome.Rejected[0].ItemID)
	assert.Equal(t, "enkhjin", outcome.Rejected[0].Owner)

	// Actual spend follows the applied edit; the rejected row keeps its
	// stored amount.
	assert.Equal(t, "2300000", file.TotalActual.String())
	itemRepo.AssertNumberOfCalls(t, "Update", 1)
	fileRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestItemService_SaveEdits_ForgedOwnershipIgnored(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	svc := service.NewItemService(fileRepo, itemRepo)

	actor := planner()
	file := pendingFile(actor.ID)
	items := storedItems(file.ID)

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	itemRepo.On("ListByFile", mock.Anything, file.ID).Return(items, nil)

	// The client claims the actor owns enkhjin's row; the stored owner wins.
	forged := items[1]
	forged.Specialist = actor.Username
	forged.AmountPlanned = planned(1)

	outcome, err := svc.SaveEdits(context.Background(), file.ID, []domain.BudgetItem{forged}, actor)
	require.NoError(t, err)

	assert.Empty(t, outcome.Applied)
	require.Len(t, outcome.Rejected, 1)
	assert.Equal(t, "enkhjin", outcome.Rejected[0].Owner)
	itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestItemService_SaveEdits_UnchangedRowsSkipped(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	svc := service.NewItemService(fileRepo, itemRepo)

	actor := planner()
	file := pendingFile(actor.ID)
	items := storedItems(file.ID)

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	itemRepo.On("ListByFile", mock.Anything, file.ID).Return(items, nil)

	outcome, err := svc.SaveEdits(context.Background(), file.ID, items, actor)
	require.NoError(t, err)

	assert.Empty(t, outcome.Applied)
	assert.Empty(t, outcome.Rejected)
	itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	fileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestItemService_SaveEdits_FinalizedFileRefused(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	svc := service.NewItemService(fileRepo, itemRepo)

	actor := planner()
	file := pendingFile(actor.ID)
	file.Status = domain.FileStatusFinalized
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)

	_, err := svc.SaveEdits(context.Background(), file.ID, storedItems(file.ID), actor)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	itemRepo.AssertNotCalled(t, "ListByFile", mock.Anything, mock.Anything)
}

func TestItemService_SaveEdits_ForeignRowReported(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	svc := service.NewItemService(fileRepo, itemRepo)

	actor := planner()
	file := pendingFile(actor.ID)
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	itemRepo.On("ListByFile", mock.Anything, file.ID).Return(storedItems(file.ID), nil)

	stray := domain.BudgetItem{ID: uuid.New(), FileID: uuid.New(), CampaignName: "Other file"}

	outcome, err := svc.SaveEdits(context.Background(), file.ID, []domain.BudgetItem{stray}, actor)
	require.NoError(t, err)

	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "does not belong to this file")
}
