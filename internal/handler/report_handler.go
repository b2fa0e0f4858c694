package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budgetflow/internal/domain"
	"budgetflow/internal/export"
	"budgetflow/internal/service"
)

// ReportHandler handles analytics dashboard endpoints.
type ReportHandler struct {
	reportService service.ReportService
	itemService   service.ItemService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, itemService service.ItemService) *ReportHandler {
	return &ReportHandler{reportService: reportService, itemService: itemService}
}

// Dashboard handles GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

// Efficiency handles GET /api/v1/reports/efficiency
func (h *ReportHandler) Efficiency(c *gin.Context) {
	entries, err := h.reportService.Efficiency(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}

const exportLimit = 10000

// Export handles GET /api/v1/reports/export. The default workbook lists
// finalized line items; ?report=summary returns the by-company and
// efficiency sheets instead.
func (h *ReportHandler) Export(c *gin.Context) {
	if c.Query("report") == "summary" {
		h.exportSummary(c)
		return
	}

	var channel *domain.ChannelType
	if raw := c.Query("channel"); raw != "" {
		ch := domain.ChannelType(raw)
		if !domain.IsValidChannel(ch) {
			RespondError(c, http.StatusBadRequest, "INVALID_CHANNEL", "unknown channel tag")
			return
		}
		channel = &ch
	}

	items, _, err := h.itemService.ListFinalized(c.Request.Context(), channel, 0, exportLimit)
	if err != nil {
		HandleError(c, err)
		return
	}

	workbook, err := export.FinalizedItems(items)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.respondWorkbook(c, "finalized-budgets", workbook)
}

func (h *ReportHandler) exportSummary(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	rows := make([]export.EfficiencyRow, 0, len(dashboard.Efficiency))
	for _, entry := range dashboard.Efficiency {
		rows = append(rows, export.EfficiencyRow{
			FileName:     entry.FileName,
			TotalPlanned: entry.TotalPlanned,
			TotalActual:  entry.TotalActual,
			SpendPercent: entry.SpendPercent,
			Band:         string(entry.Band),
		})
	}

	workbook, err := export.SummaryWorkbook(dashboard.ByCompany, rows)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respondWorkbook(c, "budget-summary", workbook)
}

func (h *ReportHandler) respondWorkbook(c *gin.Context, prefix string, workbook []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
