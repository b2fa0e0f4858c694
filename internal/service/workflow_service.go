package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/port"
	"budgetflow/internal/workflow"
)

// ReviewInput carries a manager's approve or reject decision.
type ReviewInput struct {
	FileID  uuid.UUID
	Comment string
	Actor   *domain.User
}

// SignedUploadInput carries the scanned signed document closing the workflow.
type SignedUploadInput struct {
	FileID   uuid.UUID
	FileName string
	Data     []byte
	Actor    *domain.User
}

// WorkflowService drives budget files through the approval state machine.
type WorkflowService interface {
	Approve(ctx context.Context, input ReviewInput) (*domain.BudgetFile, error)
	Reject(ctx context.Context, input ReviewInput) (*domain.BudgetFile, error)
	GeneratePDF(ctx context.Context, fileID uuid.UUID, actor *domain.User) (*domain.BudgetFile, error)
	UploadSigned(ctx context.Context, input SignedUploadInput) (*domain.BudgetFile, error)
	DeleteRejected(ctx context.Context, fileID uuid.UUID, actor *domain.User) error
}

type workflowService struct {
	fileRepo port.BudgetFileRepository
	itemRepo port.BudgetItemRepository
	userRepo port.UserRepository
	storage  port.ObjectStorage
	renderer port.DocumentRenderer
	emails   port.EmailSender
	machine  *workflow.Machine

	renderTimeout time.Duration
}

// NewWorkflowService creates a new WorkflowService implementation.
func NewWorkflowService(
	fileRepo port.BudgetFileRepository,
	itemRepo port.BudgetItemRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	renderer port.DocumentRenderer,
	emails port.EmailSender,
	renderTimeout time.Duration,
) WorkflowService {
	return &workflowService{
		fileRepo:      fileRepo,
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		storage:       storage,
		renderer:      renderer,
		emails:        emails,
		machine:       workflow.NewMachine(),
		renderTimeout: renderTimeout,
	}
}

func (s *workflowService) Approve(ctx context.Context, input ReviewInput) (*domain.BudgetFile, error) {
	return s.review(ctx, input, domain.FileStatusApprovedForPrint, "approved")
}

func (s *workflowService) Reject(ctx context.Context, input ReviewInput) (*domain.BudgetFile, error) {
	return s.review(ctx, input, domain.FileStatusRejected, "rejected")
}

func (s *workflowService) review(ctx context.Context, input ReviewInput, to domain.FileStatus, decision string) (*domain.BudgetFile, error) {
	file, err := s.fileRepo.GetByID(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(input.Comment)
	isUploader := file.UploadedBy == input.Actor.ID
	if err := s.machine.Authorize(file.Status, to, input.Actor.Role, isUploader, comment); err != nil {
		return nil, err
	}

	now := time.Now()
	file.Status = to
	file.ReviewedBy = &input.Actor.ID
	file.ReviewedAt = &now
	file.ReviewComment = comment
	file.UpdatedAt = now

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, fmt.Errorf("workflow.review: %w", err)
	}

	s.notifyUploader(ctx, file, decision, comment)
	return file, nil
}

// GeneratePDF renders the original spreadsheet into a printable PDF and
// advances the file into the signing state. Render failure leaves the file
// in APPROVED_FOR_PRINT so the transition can be retried.
func (s *workflowService) GeneratePDF(ctx context.Context, fileID uuid.UUID, actor *domain.User) (*domain.BudgetFile, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	isUploader := file.UploadedBy == actor.ID
	if err := s.machine.Authorize(file.Status, domain.FileStatusSigning, actor.Role, isUploader, ""); err != nil {
		return nil, err
	}

	source, err := s.storage.Download(ctx, file.S3Bucket, file.OriginalKey)
	if err != nil {
		return nil, fmt.Errorf("workflow.GeneratePDF: fetching original: %w", err)
	}

	renderCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	pdf, err := s.renderer.RenderPDF(renderCtx, file.FileName, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	pdfKey := fmt.Sprintf("budgets/%s/pdf/%s.pdf", file.ID, strings.TrimSuffix(file.FileName, filepath.Ext(file.FileName)))
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      file.S3Bucket,
		Key:         pdfKey,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
		Size:        int64(len(pdf)),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	now := time.Now()
	file.Status = domain.FileStatusSigning
	file.PDFKey = &pdfKey
	file.PDFGeneratedAt = &now
	file.UpdatedAt = now

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, fmt.Errorf("workflow.GeneratePDF: %w", err)
	}
	return file, nil
}

func (s *workflowService) UploadSigned(ctx context.Context, input SignedUploadInput) (*domain.BudgetFile, error) {
	file, err := s.fileRepo.GetByID(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	isUploader := file.UploadedBy == input.Actor.ID
	if err := s.machine.Authorize(file.Status, domain.FileStatusFinalized, input.Actor.Role, isUploader, ""); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.FileName)), ".")
	contentType, ok := domain.SignedFileExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s is not an accepted signed-document format", domain.ErrUnsupportedFileType, ext)
	}

	signedKey := fmt.Sprintf("budgets/%s/signed/%s", file.ID, input.FileName)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      file.S3Bucket,
		Key:         signedKey,
		Body:        bytes.NewReader(input.Data),
		ContentType: contentType,
		Size:        int64(len(input.Data)),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	now := time.Now()
	file.Status = domain.FileStatusFinalized
	file.SignedKey = &signedKey
	file.SignedAt = &now
	file.FinalizedAt = &now
	file.UpdatedAt = now

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, fmt.Errorf("workflow.UploadSigned: %w", err)
	}
	return file, nil
}

// DeleteRejected removes a rejected file so its uploader can resubmit a
// corrected version as a fresh cycle. Only rejected files may be deleted.
func (s *workflowService) DeleteRejected(ctx context.Context, fileID uuid.UUID, actor *domain.User) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if file.Status != domain.FileStatusRejected {
		return fmt.Errorf("%w: file is %s", domain.ErrFileNotRejected, file.Status)
	}
	if file.UploadedBy != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrNotFileOwner
	}

	if err := s.storage.Delete(ctx, file.S3Bucket, file.OriginalKey); err != nil {
		log.Printf("workflow.DeleteRejected: deleting %s: %v", file.OriginalKey, err)
	}

	if err := s.itemRepo.DeleteByFile(ctx, fileID); err != nil {
		return fmt.Errorf("workflow.DeleteRejected: %w", err)
	}
	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("workflow.DeleteRejected: %w", err)
	}
	return nil
}

func (s *workflowService) notifyUploader(ctx context.Context, file *domain.BudgetFile, decision, comment string) {
	uploader, err := s.userRepo.GetByID(ctx, file.UploadedBy)
	if err != nil {
		log.Printf("workflow.notifyUploader: loading uploader: %v", err)
		return
	}
	if uploader.Email == "" {
		return
	}
	if err := s.emails.SendFileReviewed(ctx, uploader.Email, file.FileName, decision, comment); err != nil {
		log.Printf("workflow.notifyUploader: notify %s: %v", uploader.Username, err)
	}
}
