package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"budgetflow/internal/service"
)

// SpecialistHandler handles specialist roster endpoints.
type SpecialistHandler struct {
	specialistService service.SpecialistService
}

// NewSpecialistHandler creates a new SpecialistHandler.
func NewSpecialistHandler(specialistService service.SpecialistService) *SpecialistHandler {
	return &SpecialistHandler{specialistService: specialistService}
}

type addSpecialistRequest struct {
	Name string `json:"name" binding:"required"`
}

// Add handles POST /api/v1/specialists
func (h *SpecialistHandler) Add(c *gin.Context) {
	var req addSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	specialist, err := h.specialistService.Add(c.Request.Context(), req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, specialist)
}

// List handles GET /api/v1/specialists
func (h *SpecialistHandler) List(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "true"))

	specialists, err := h.specialistService.List(c.Request.Context(), activeOnly)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, specialists)
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive handles PUT /api/v1/specialists/:id
func (h *SpecialistHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid specialist id format")
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.specialistService.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"updated": id})
}

// Remove handles DELETE /api/v1/specialists/:id
func (h *SpecialistHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid specialist id format")
		return
	}

	if err := h.specialistService.Remove(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": id})
}
