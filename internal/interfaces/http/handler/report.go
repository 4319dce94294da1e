package handler

import (
	ledgerapp "github.com/advoga/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles period closing and report API endpoints
type ReportHandler struct {
	BaseHandler
	periods *ledgerapp.PeriodService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(periods *ledgerapp.PeriodService) *ReportHandler {
	return &ReportHandler{periods: periods}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	periods := rg.Group("/ledger/periods")
	{
		periods.GET("", h.ListReports)
		periods.POST("/close", h.ClosePeriod)
	}
}

// ClosePeriod closes a monthly period, archiving its entries into a snapshot
func (h *ReportHandler) ClosePeriod(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req ledgerapp.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	snapshot, err := h.periods.ClosePeriod(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, snapshot)
}

// ListReports lists the tenant's closed period snapshots, newest first
func (h *ReportHandler) ListReports(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	reports, err := h.periods.ListReports(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reports)
}
