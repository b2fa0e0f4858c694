package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
	"budgetflow/internal/service"
	"budgetflow/mocks"
)

const budgetCSV = `Marketing plan 2025
Budget Code,Campaign,Amount,Start Date,End Date,Description
A-101,Summer Launch,"1,200,000",01/06/2025,30/06/2025,June push
A-102,Autumn Brand,"800,000",01/09/2025,30/09/2025,
`

func planner() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Username: "bayarmaa",
		Email:    "bayarmaa@example.mn",
		FullName: "Баярмаа",
		Role:     domain.RolePlanner,
		IsActive: true,
	}
}

const testPresignExpiry = int64(900)

func newUploadService(fileRepo *mocks.MockBudgetFileRepo, itemRepo *mocks.MockBudgetItemRepo, userRepo *mocks.MockUserRepo, storage *mocks.MockObjectStorage, emails *mocks.MockEmailSender) service.UploadService {
	return service.NewUploadService(fileRepo, itemRepo, userRepo, storage, emails, "test-bucket", 50, testPresignExpiry)
}

func TestUploadService_Submit_Success(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	emails := new(mocks.MockEmailSender)
	svc := newUploadService(fileRepo, itemRepo, userRepo, storage, emails)

	uploader := planner()
	manager := domain.User{ID: uuid.New(), Username: "boss", Email: "boss@example.mn", Role: domain.RoleManager}

	fileRepo.On("GetByHash", mock.Anything, mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/x", ETag: "abc"}, nil)
	fileRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.BudgetFile"), mock.AnythingOfType("[]domain.BudgetItem")).Return(nil)
	userRepo.On("ListByRole", mock.Anything, domain.RoleManager).Return([]domain.User{manager}, nil)
	emails.On("SendFileSubmitted", mock.Anything, "boss@example.mn", "budget.csv", "Баярмаа").Return(nil)

	result, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:   "budget.csv",
		Data:       []byte(budgetCSV),
		Channel:    domain.ChannelTV,
		BudgetType: domain.BudgetTypePrimary,
		Uploader:   uploader,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FileStatusPendingApproval, result.File.Status)
	assert.Equal(t, 2, result.File.RowCount)
	assert.Equal(t, "2000000", result.File.TotalPlanned.String())
	assert.Equal(t, "2000000", result.File.TotalActual.String())
	assert.Equal(t, uploader.ID, result.File.UploadedBy)
	assert.Len(t, result.File.FileHash, 64)

	// Rows default to the uploader as owning specialist.
	createCall := fileRepo.Calls[1]
	items := createCall.Arguments.Get(2).([]domain.BudgetItem)
	require.Len(t, items, 2)
	assert.Equal(t, "bayarmaa", items[0].Specialist)
	assert.Equal(t, domain.ChannelTV, items[0].Channel)

	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
	emails.AssertExpectations(t)
}

func TestUploadService_Submit_DuplicateContent(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	emails := new(mocks.MockEmailSender)
	svc := newUploadService(fileRepo, itemRepo, userRepo, storage, emails)

	existing := &domain.BudgetFile{
		ID:       uuid.New(),
		FileName: "budget.csv",
		Status:   domain.FileStatusPendingApproval,
	}
	fileRepo.On("GetByHash", mock.Anything, mock.AnythingOfType("string")).Return(existing, nil)

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:   "renamed-copy.csv",
		Data:       []byte(budgetCSV),
		Channel:    domain.ChannelTV,
		BudgetType: domain.BudgetTypePrimary,
		Uploader:   planner(),
	})

	require.ErrorIs(t, err, domain.ErrDuplicateFile)
	assert.Contains(t, err.Error(), existing.ID.String())
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	fileRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Submit_UnsupportedExtension(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newUploadService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockEmailSender))

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:   "budget.pdf",
		Data:       []byte("%PDF-1.4"),
		Channel:    domain.ChannelTV,
		BudgetType: domain.BudgetTypePrimary,
		Uploader:   planner(),
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	fileRepo.AssertNotCalled(t, "GetByHash", mock.Anything, mock.Anything)
}

func TestUploadService_Submit_ExtensionGate(t *testing.T) {
	// A zero-MB limit makes the size check the next gate, so a size error
	// proves the extension itself was accepted.
	svc := service.NewUploadService(new(mocks.MockBudgetFileRepo), new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockEmailSender), "test-bucket", 0, testPresignExpiry)

	cases := []struct {
		fileName string
		want     error
	}{
		{"budget.csv", domain.ErrFileTooLarge},
		{"budget.xls", domain.ErrFileTooLarge},
		{"budget.xlsx", domain.ErrFileTooLarge},
		{"BUDGET.CSV", domain.ErrFileTooLarge},
		{"budget.pdf", domain.ErrUnsupportedFileType},
		{"budget", domain.ErrUnsupportedFileType},
	}
	for _, tc := range cases {
		_, err := svc.Submit(context.Background(), service.SubmitInput{
			FileName:   tc.fileName,
			Data:       []byte(budgetCSV),
			Channel:    domain.ChannelTV,
			BudgetType: domain.BudgetTypePrimary,
			Uploader:   planner(),
		})
		assert.ErrorIs(t, err, tc.want, "file %s", tc.fileName)
	}
}

func TestUploadService_GetDownloadURL_UsesConfiguredExpiry(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newUploadService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), storage, new(mocks.MockEmailSender))

	file := &domain.BudgetFile{
		ID:          uuid.New(),
		S3Bucket:    "test-bucket",
		OriginalKey: "budgets/x/original/budget.csv",
	}
	fileRepo.On("GetByID", mock.Anything, file.ID).Return(file, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", file.OriginalKey, testPresignExpiry).
		Return("https://signed.example/url", nil)

	url, err := svc.GetDownloadURL(context.Background(), file.ID, "original")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/url", url)
	storage.AssertExpectations(t)
}

func TestUploadService_Submit_TooLarge(t *testing.T) {
	svc := service.NewUploadService(new(mocks.MockBudgetFileRepo), new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockEmailSender), "test-bucket", 0, testPresignExpiry)

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:   "budget.csv",
		Data:       []byte(budgetCSV),
		Channel:    domain.ChannelTV,
		BudgetType: domain.BudgetTypePrimary,
		Uploader:   planner(),
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUploadService_Submit_AdditionalRequiresParent(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newUploadService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockEmailSender))

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:   "extra.csv",
		Data:       []byte(budgetCSV),
		Channel:    domain.ChannelTV,
		BudgetType: domain.BudgetTypeAdditional,
		Uploader:   planner(),
	})

	assert.ErrorIs(t, err, domain.ErrParentFileRequired)
}

func TestUploadService_Submit_MissingParent(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	svc := newUploadService(fileRepo, new(mocks.MockBudgetItemRepo), new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockEmailSender))

	parentID := uuid.New()
	fileRepo.On("GetByID", mock.Anything, parentID).Return(nil, domain.ErrNotFound)

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:     "extra.csv",
		Data:         []byte(budgetCSV),
		Channel:      domain.ChannelTV,
		BudgetType:   domain.BudgetTypeAdditional,
		ParentFileID: &parentID,
		Uploader:     planner(),
	})

	assert.ErrorIs(t, err, domain.ErrParentFileRequired)
}

func TestUploadService_Submit_ExplicitSpecialist(t *testing.T) {
	fileRepo := new(mocks.MockBudgetFileRepo)
	itemRepo := new(mocks.MockBudgetItemRepo)
	userRepo := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	emails := new(mocks.MockEmailSender)
	svc := newUploadService(fileRepo, itemRepo, userRepo, storage, emails)

	fileRepo.On("GetByHash", mock.Anything, mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "loc", ETag: "e"}, nil)
	fileRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.BudgetFile"), mock.AnythingOfType("[]domain.BudgetItem")).Return(nil)
	userRepo.On("ListByRole", mock.Anything, domain.RoleManager).Return([]domain.User{}, nil)

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		FileName:   "budget.csv",
		Data:       []byte(budgetCSV),
		Channel:    domain.ChannelTV,
		BudgetType: domain.BudgetTypePrimary,
		Specialist: "enkhjin",
		Uploader:   planner(),
	})
	require.NoError(t, err)

	items := fileRepo.Calls[1].Arguments.Get(2).([]domain.BudgetItem)
	assert.Equal(t, "enkhjin", items[0].Specialist)
}
