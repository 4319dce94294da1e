package handler

import (
	ledgerapp "github.com/advoga/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles ledger entry and settlement API endpoints
type LedgerHandler struct {
	BaseHandler
	transactions *ledgerapp.TransactionService
	settlements  *ledgerapp.SettlementService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(transactions *ledgerapp.TransactionService, settlements *ledgerapp.SettlementService) *LedgerHandler {
	return &LedgerHandler{
		transactions: transactions,
		settlements:  settlements,
	}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.GET("/transactions", h.ListTransactions)
		ledger.POST("/transactions", h.RecordTransaction)
		ledger.PATCH("/transactions/:id/pay", h.MarkPaid)
		ledger.GET("/summary", h.GetSummary)
		ledger.POST("/settlements", h.SplitSettlement)
	}
}

// RecordTransaction records a manual ledger entry
func (h *LedgerHandler) RecordTransaction(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req ledgerapp.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tx, err := h.transactions.Record(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// ListTransactions lists the tenant's active ledger entries
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var filter ledgerapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	txs, err := h.transactions.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txs)
}

// GetSummary returns grouped totals over active entries
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	sums, err := h.transactions.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sums)
}

// MarkPaid marks a pending ledger entry as paid
func (h *LedgerHandler) MarkPaid(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid entry id")
		return
	}

	tx, err := h.transactions.MarkPaid(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// SplitSettlement splits a settlement into a fee entry and a client repayment entry
func (h *LedgerHandler) SplitSettlement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req ledgerapp.SplitSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.settlements.Split(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
