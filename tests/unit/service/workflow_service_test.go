package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
	"budgetflow/internal/service"
	"budgetflow/mocks"
)

func manager() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Username: "boss",
		Email:    "boss@example.mn",
		Role:     domain.RoleManager,
		IsActive: true,
	}
}

func pendingFile(uploadedBy uuid.UUID) *domain.BudgetFile {
	return &domain.BudgetFile{
		ID:          uuid.New(),
		FileName:    "budget.xlsx",
		Status:      domain.FileStatusPendingApproval,
		UploadedBy:  uploadedBy,
		S3Bucket:    "test-bucket",
		OriginalKey: "budgets/x/original/budget.xlsx",
	}
}

func newWorkflowService(fileRepo *mocks.MockBudgetFileRepo, itemRepo *mocks.MockBudgetItemRepo, userRepo *mocks.MockUserRepo, storage *mocks.MockObjectStorage, renderer *mocks.MockDocumentRenderer, emails *mocks.MockEmailSender) service.WorkflowService {
	return service.NewWorkflowService(fileRepo, itemRepo, userRepo, storage, renderer, emails, 30*time.Second)
}

func TestWorkflowService_Approve_Success(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), userRepo, new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), emails)

	reviewer := manager()
	uploader := planner()
	file := pendingFile(uploader.ID)

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)
	userRepo.On("GetByID", mock.Anything, uploader.ID).Return(uploader, nil)
	emails.On("SendFileReviewed", mock.Anything, uploader.Email, "budget.xlsx", "approved", "").Return(nil)

	updated, err := svc.Approve(context.Background(), service.ReviewInput{FileID: file.ID, Actor: reviewer})
	require.NoError(t, err)

	assert.Equal(t, domain.FileStatusApprovedForPrint, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, reviewer.ID, *updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
	fileRepo.AssertExpectations(t)
}

func TestWorkflowService_Approve_UploaderWithoutEmailSkipsNotification(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), userRepo, new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), emails)

	uploader := planner()
	uploader.Email = ""
	file := pendingFile(uploader.ID)

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)
	userRepo.On("GetByID", mock.Anything, uploader.ID).Return(uploader, nil)

	updated, err := svc.Approve(context.Background(), service.ReviewInput{FileID: file.ID, Actor: manager()})
	require.NoError(t, err)

	assert.Equal(t, domain.FileStatusApprovedForPrint, updated.Status)
	emails.AssertNotCalled(t, "SendFileReviewed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowService_Approve_PlannerForbidden(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)

	_, err := svc.Approve(context.Background(), service.ReviewInput{FileID: file.ID, Actor: uploader})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	fileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestWorkflowService_Reject_RequiresComment(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	file := pendingFile(uuid.New())
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)

	_, err := svc.Reject(context.Background(), service.ReviewInput{FileID: file.ID, Comment: "   ", Actor: manager()})

	assert.ErrorIs(t, err, domain.ErrCommentRequired)
	fileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestWorkflowService_Reject_StampsComment(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), userRepo, new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), emails)

	uploader := planner()
	file := pendingFile(uploader.ID)
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)
	userRepo.On("GetByID", mock.Anything, uploader.ID).Return(uploader, nil)
	emails.On("SendFileReviewed", mock.Anything, uploader.Email, "budget.xlsx", "rejected", "totals do not reconcile").Return(nil)

	updated, err := svc.Reject(context.Background(), service.ReviewInput{
		FileID:  file.ID,
		Comment: "totals do not reconcile",
		Actor:   manager(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FileStatusRejected, updated.Status)
	assert.Equal(t, "totals do not reconcile", updated.ReviewComment)
	emails.AssertExpectations(t)
}

func TestWorkflowService_GeneratePDF_Success(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	storage := new(mocks.MockObjectStorage)
	renderer := new(mocks.MockDocumentRenderer)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), storage, renderer, new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	file.Status = domain.FileStatusApprovedForPrint

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	storage.On("Download", mock.Anything, "test-bucket", file.OriginalKey).Return([]byte("xlsx-bytes"), nil)
	renderer.On("RenderPDF", mock.Anything, "budget.xlsx", []byte("xlsx-bytes")).Return([]byte("%PDF-1.4"), nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "loc", ETag: "e"}, nil)
	fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)

	updated, err := svc.GeneratePDF(context.Background(), file.ID, uploader)
	require.NoError(t, err)

	assert.Equal(t, domain.FileStatusSigning, updated.Status)
	require.NotNil(t, updated.PDFKey)
	assert.Contains(t, *updated.PDFKey, "/pdf/budget.pdf")
	assert.NotNil(t, updated.PDFGeneratedAt)
}

func TestWorkflowService_GeneratePDF_RenderFailureLeavesStatus(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	storage := new(mocks.MockObjectStorage)
	renderer := new(mocks.MockDocumentRenderer)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), storage, renderer, new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	file.Status = domain.FileStatusApprovedForPrint

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	storage.On("Download", mock.Anything, "test-bucket", file.OriginalKey).Return([]byte("xlsx-bytes"), nil)
	renderer.On("RenderPDF", mock.Anything, "budget.xlsx", []byte("xlsx-bytes")).Return(nil, errors.New("soffice exited 1"))

	_, err := svc.GeneratePDF(context.Background(), file.ID, uploader)

	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	assert.Equal(t, domain.FileStatusApprovedForPrint, file.Status)
	fileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestWorkflowService_UploadSigned_Success(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), storage, new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	file.Status = domain.FileStatusSigning

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "loc", ETag: "e"}, nil)
	fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)

	updated, err := svc.UploadSigned(context.Background(), service.SignedUploadInput{
		FileID:   file.ID,
		FileName: "budget-signed.pdf",
		Data:     []byte("%PDF-1.4"),
		Actor:    uploader,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FileStatusFinalized, updated.Status)
	require.NotNil(t, updated.SignedKey)
	assert.NotNil(t, updated.SignedAt)
	assert.NotNil(t, updated.FinalizedAt)
}

func TestWorkflowService_UploadSigned_AcceptedExtensions(t *testing.T) {
	for _, fileName := range []string{"scan.pdf", "scan.jpg", "scan.jpeg", "scan.png", "SCAN.PDF"} {
		fileRepo := new(mocks.MockBudgetFileRepo)
		storage := new(mocks.MockObjectStorage)
		svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), storage, new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

		uploader := planner()
		file := pendingFile(uploader.ID)
		file.Status = domain.FileStatusSigning

		fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
		storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
			Return(&port.UploadOutput{Location: "loc", ETag: "e"}, nil)
		fileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BudgetFile")).Return(nil)

		updated, err := svc.UploadSigned(context.Background(), service.SignedUploadInput{
			FileID:   file.ID,
			FileName: fileName,
			Data:     []byte("scan-bytes"),
			Actor:    uploader,
		})
		require.NoError(t, err, "file %s", fileName)
		assert.Equal(t, domain.FileStatusFinalized, updated.Status, "file %s", fileName)
	}
}

func TestWorkflowService_UploadSigned_RejectsWordDocument(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), storage, new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	file.Status = domain.FileStatusSigning
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)

	_, err := svc.UploadSigned(context.Background(), service.SignedUploadInput{
		FileID:   file.ID,
		FileName: "budget-signed.docx",
		Data:     []byte("not a scan"),
		Actor:    uploader,
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.Equal(t, domain.FileStatusSigning, file.Status)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	fileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestWorkflowService_DeleteRejected_OnlyRejectedFiles(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)

	err := svc.DeleteRejected(context.Background(), file.ID, uploader)

	assert.ErrorIs(t, err, domain.ErrFileNotRejected)
	fileRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestWorkflowService_DeleteRejected_OwnerOnly(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newWorkflowService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	file := pendingFile(uuid.New())
	file.Status = domain.FileStatusRejected
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)

	otherPlanner := planner()
	err := svc.DeleteRejected(context.Background(), file.ID, otherPlanner)

	assert.ErrorIs(t, err, domain.ErrNotFileOwner)
}

func TestWorkflowService_DeleteRejected_Success(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newWorkflowService(fileRepo, itemRepo, new(mocks.MockUserRepo), storage, new(mocks.MockDocumentRenderer), new(mocks.MockEmailSender))

	uploader := planner()
	file := pendingFile(uploader.ID)
	file.Status = domain.FileStatusRejected

	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	storage.On("Delete", mock.Anything, "test-bucket", file.OriginalKey).Return(nil)
	itemRepo.On("DeleteByFile", mock.Anything, file.ID).Return(nil)
	fileRepo.On("Delete", mock.Anything, file.ID).Return(nil)

	err := svc.DeleteRejected(context.Background(), file.ID, uploader)
	require.NoError(t, err)

	itemRepo.AssertExpectations(t)
	fileRepo.AssertExpectations(t)
}
