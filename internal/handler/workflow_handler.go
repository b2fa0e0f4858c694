package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/service"
)

// WorkflowHandler handles approval workflow endpoints.
type WorkflowHandler struct {
	workflowService service.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(workflowService service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

type reviewRequest struct {
	Comment string `json:"comment"`
}

// Approve handles POST /api/v1/budgets/:id/approve
func (h *WorkflowHandler) Approve(c *gin.Context) {
	h.review(c, h.workflowService.Approve)
}

// Reject handles POST /api/v1/budgets/:id/reject
func (h *WorkflowHandler) Reject(c *gin.Context) {
	h.review(c, h.workflowService.Reject)
}

func (h *WorkflowHandler) review(c *gin.Context, decide func(context.Context, service.ReviewInput) (*domain.BudgetFile, error)) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	var req reviewRequest
	// A missing body is fine for approvals; rejections without a comment
	// are refused by the state machine.
	_ = c.ShouldBindJSON(&req)

	file, err := decide(c.Request.Context(), service.ReviewInput{
		FileID:  fileID,
		Comment: req.Comment,
		Actor:   actor,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, file)
}

// GeneratePDF handles POST /api/v1/budgets/:id/generate-pdf
func (h *WorkflowHandler) GeneratePDF(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	file, err := h.workflowService.GeneratePDF(c.Request.Context(), fileID, actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, file)
}

// UploadSigned handles POST /api/v1/budgets/:id/signed
func (h *WorkflowHandler) UploadSigned(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	updated, err := h.workflowService.UploadSigned(c.Request.Context(), service.SignedUploadInput{
		FileID:   fileID,
		FileName: header.Filename,
		Data:     data,
		Actor:    actor,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, updated)
}

// DeleteRejected handles DELETE /api/v1/budgets/:id
func (h *WorkflowHandler) DeleteRejected(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	if err := h.workflowService.DeleteRejected(c.Request.Context(), fileID, actor); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": fileID})
}
