package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/service"
)

// BudgetFileHandler handles spreadsheet upload and file retrieval endpoints.
type BudgetFileHandler struct {
	uploadService service.UploadService
}

// NewBudgetFileHandler creates a new BudgetFileHandler.
func NewBudgetFileHandler(uploadService service.UploadService) *BudgetFileHandler {
	return &BudgetFileHandler{uploadService: uploadService}
}

// Upload handles POST /api/v1/budgets/upload
func (h *BudgetFileHandler) Upload(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
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

	channel := domain.ChannelType(c.PostForm("channel"))
	budgetType := domain.BudgetType(c.DefaultPostForm("budget_type", string(domain.BudgetTypePrimary)))

	var parentID *uuid.UUID
	if raw := strings.TrimSpace(c.PostForm("parent_file_id")); raw != "" {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid parent_file_id format")
			return
		}
		parentID = &id
	}

	input := service.SubmitInput{
		FileName:     header.Filename,
		Data:         data,
		Channel:      channel,
		BudgetType:   budgetType,
		ParentFileID: parentID,
		Specialist:   c.PostForm("specialist"),
		Uploader:     actor,
	}

	result, err := h.uploadService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/budgets
func (h *BudgetFileHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	var statuses []domain.FileStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, domain.FileStatus(strings.TrimSpace(s)))
		}
	}

	files, total, err := h.uploadService.ListFiles(c.Request.Context(), statuses, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListMine handles GET /api/v1/budgets/mine
func (h *BudgetFileHandler) ListMine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	files, total, err := h.uploadService.ListMyFiles(c.Request.Context(), actor.ID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/budgets/:id
func (h *BudgetFileHandler) GetByID(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	detail, err := h.uploadService.GetFile(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// DownloadURL handles GET /api/v1/budgets/:id/download
func (h *BudgetFileHandler) DownloadURL(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	document := c.DefaultQuery("document", "original")
	url, err := h.uploadService.GetDownloadURL(c.Request.Context(), fileID, document)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
