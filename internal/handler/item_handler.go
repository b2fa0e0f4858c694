package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/service"
)

// ItemHandler handles budget line item endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type saveEditsRequest struct {
	Items []domain.BudgetItem `json:"items" binding:"required"`
}

// SaveEdits handles PUT /api/v1/budgets/:id/items
func (h *ItemHandler) SaveEdits(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	var req saveEditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.itemService.SaveEdits(c.Request.Context(), fileID, req.Items, actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}

// ListByFile handles GET /api/v1/budgets/:id/items
func (h *ItemHandler) ListByFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid file id format")
		return
	}

	items, err := h.itemService.ListByFile(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// ListFinalized handles GET /api/v1/items/finalized
func (h *ItemHandler) ListFinalized(c *gin.Context) {
	offset, limit := pagination(c)

	var channel *domain.ChannelType
	if raw := c.Query("channel"); raw != "" {
		ch := domain.ChannelType(raw)
		if !domain.IsValidChannel(ch) {
			RespondError(c, http.StatusBadRequest, "INVALID_CHANNEL", "unknown channel tag")
			return
		}
		channel = &ch
	}

	items, total, err := h.itemService.ListFinalized(c.Request.Context(), channel, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// MetricLabels handles GET /api/v1/channels/:channel/metric-labels
func (h *ItemHandler) MetricLabels(c *gin.Context) {
	channel := domain.ChannelType(c.Param("channel"))
	if !domain.IsValidChannel(channel) {
		RespondError(c, http.StatusBadRequest, "INVALID_CHANNEL", "unknown channel tag")
		return
	}
	RespondOK(c, domain.MetricLabelsFor(channel))
}
