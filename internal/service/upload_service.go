package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/ingest"
	"budgetflow/internal/port"
)

// SubmitInput carries one spreadsheet submission.
type SubmitInput struct {
	FileName     string
	Data         []byte
	Channel      domain.ChannelType
	BudgetType   domain.BudgetType
	ParentFileID *uuid.UUID

	// Specialist is the identity written onto every ingested row as its
	// edit owner. Empty defaults to the uploader's username.
	Specialist string

	Uploader *domain.User
}

// SubmitResult is returned to the uploader after a successful submission.
type SubmitResult struct {
	File     *domain.BudgetFile `json:"file"`
	Warnings []string           `json:"warnings"`
	Unmapped []string           `json:"unmapped_columns"`
}

// FileDetail bundles a file with its line items.
type FileDetail struct {
	File  *domain.BudgetFile  `json:"file"`
	Items []domain.BudgetItem `json:"items"`
}

// UploadService handles spreadsheet submission and file retrieval.
type UploadService interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	GetFile(ctx context.Context, fileID uuid.UUID) (*FileDetail, error)
	ListFiles(ctx context.Context, statuses []domain.FileStatus, offset, limit int) ([]domain.BudgetFile, int, error)
	ListMyFiles(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.BudgetFile, int, error)
	GetDownloadURL(ctx context.Context, fileID uuid.UUID, document string) (string, error)
}

type uploadService struct {
	fileRepo  port.BudgetFileRepository
	itemRepo  port.BudgetItemRepository
	userRepo  port.UserRepository
	storage   port.ObjectStorage
	emails    port.EmailSender
	processor *ingest.Processor

	bucket        string
	maxFileSize   int64
	presignExpiry int64
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	fileRepo port.BudgetFileRepository,
	itemRepo port.BudgetItemRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	emails port.EmailSender,
	bucket string,
	maxFileSizeMB int64,
	presignExpirySeconds int64,
) UploadService {
	return &uploadService{
		fileRepo:      fileRepo,
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		storage:       storage,
		emails:        emails,
		processor:     ingest.NewProcessor(),
		bucket:        bucket,
		maxFileSize:   maxFileSizeMB * 1024 * 1024,
		presignExpiry: presignExpirySeconds,
	}
}

func (s *uploadService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.FileName)), ".")
	contentType, ok := domain.SpreadsheetExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}
	if int64(len(input.Data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrFileTooLarge, len(input.Data), s.maxFileSize)
	}

	switch input.BudgetType {
	case domain.BudgetTypePrimary, domain.BudgetTypeAdditional:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBudgetType, input.BudgetType)
	}
	if input.BudgetType == domain.BudgetTypeAdditional {
		if input.ParentFileID == nil {
			return nil, domain.ErrParentFileRequired
		}
		if _, err := s.fileRepo.GetByID(ctx, *input.ParentFileID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent file %s does not exist", domain.ErrParentFileRequired, input.ParentFileID)
			}
			return nil, fmt.Errorf("upload.Submit: %w", err)
		}
	}

	result, err := s.processor.Process(input.FileName, input.Data, input.Channel)
	if err != nil {
		return nil, err
	}

	existing, err := s.fileRepo.GetByHash(ctx, result.FileHash)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("upload.Submit: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: identical content already uploaded as %q (file %s, status %s)",
			domain.ErrDuplicateFile, existing.FileName, existing.ID, existing.Status)
	}

	specialist := strings.TrimSpace(input.Specialist)
	if specialist == "" {
		specialist = input.Uploader.Username
	}

	now := time.Now()
	fileID := uuid.New()
	originalKey := fmt.Sprintf("budgets/%s/original/%s", fileID, input.FileName)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         originalKey,
		Body:        bytes.NewReader(input.Data),
		ContentType: contentType,
		Size:        int64(len(input.Data)),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	file := &domain.BudgetFile{
		ID:           fileID,
		FileName:     input.FileName,
		FileHash:     result.FileHash,
		BudgetType:   input.BudgetType,
		ParentFileID: input.ParentFileID,
		Channel:      input.Channel,
		Status:       domain.FileStatusPendingApproval,
		UploadedBy:   input.Uploader.ID,
		RowCount:     result.RowCount,
		TotalPlanned: result.TotalAmount,
		TotalActual:  result.TotalAmount,
		S3Bucket:     s.bucket,
		OriginalKey:  originalKey,
		UploadedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	items := make([]domain.BudgetItem, 0, len(result.Rows))
	for _, row := range result.Rows {
		items = append(items, domain.BudgetItem{
			ID:            uuid.New(),
			FileID:        fileID,
			RowNumber:     row.RowNumber,
			Specialist:    specialist,
			CampaignName:  row.CampaignName,
			BudgetCode:    row.BudgetCode,
			Vendor:        row.Vendor,
			Channel:       input.Channel,
			SubChannel:    row.SubChannel,
			AmountPlanned: row.Amount,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			Metric1:       row.Metric1,
			Metric2:       row.Metric2,
			Metric3:       row.Metric3,
			Description:   row.Description,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := s.fileRepo.CreateWithItems(ctx, file, items); err != nil {
		// Orphaned object; the upload must not appear to have succeeded.
		if delErr := s.storage.Delete(ctx, s.bucket, originalKey); delErr != nil {
			log.Printf("upload.Submit: cleanup of %s failed: %v", originalKey, delErr)
		}
		return nil, fmt.Errorf("upload.Submit: %w", err)
	}

	s.notifyReviewers(ctx, file, input.Uploader)

	return &SubmitResult{
		File:     file,
		Warnings: result.Warnings,
		Unmapped: result.Unmapped,
	}, nil
}

func (s *uploadService) GetFile(ctx context.Context, fileID uuid.UUID) (*FileDetail, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("upload.GetFile: %w", err)
	}
	return &FileDetail{File: file, Items: items}, nil
}

func (s *uploadService) ListFiles(ctx context.Context, statuses []domain.FileStatus, offset, limit int) ([]domain.BudgetFile, int, error) {
	return s.fileRepo.List(ctx, statuses, offset, limit)
}

func (s *uploadService) ListMyFiles(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.BudgetFile, int, error) {
	return s.fileRepo.ListByUploader(ctx, userID, offset, limit)
}

// GetDownloadURL presigns one of the file's stored documents: "original",
// "pdf" or "signed".
func (s *uploadService) GetDownloadURL(ctx context.Context, fileID uuid.UUID, document string) (string, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return "", err
	}

	var key string
	switch document {
	case "pdf":
		if file.PDFKey == nil {
			return "", fmt.Errorf("%w: no generated PDF for file %s", domain.ErrNotFound, fileID)
		}
		key = *file.PDFKey
	case "signed":
		if file.SignedKey == nil {
			return "", fmt.Errorf("%w: no signed document for file %s", domain.ErrNotFound, fileID)
		}
		key = *file.SignedKey
	default:
		key = file.OriginalKey
	}

	url, err := s.storage.GetPresignedURL(ctx, file.S3Bucket, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("upload.GetDownloadURL: %w", err)
	}
	return url, nil
}

// notifyReviewers emails every active manager about the new submission.
// Notification failure never fails the upload.
func (s *uploadService) notifyReviewers(ctx context.Context, file *domain.BudgetFile, uploader *domain.User) {
	managers, err := s.userRepo.ListByRole(ctx, domain.RoleManager)
	if err != nil {
		log.Printf("upload.notifyReviewers: listing managers: %v", err)
		return
	}
	uploaderName := uploader.FullName
	if uploaderName == "" {
		uploaderName = uploader.Username
	}
	for _, m := range managers {
		if m.Email == "" {
			continue
		}
		if err := s.emails.SendFileSubmitted(ctx, m.Email, file.FileName, uploaderName); err != nil {
			log.Printf("upload.notifyReviewers: notify %s: %v", m.Username, err)
		}
	}
}
