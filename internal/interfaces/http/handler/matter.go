package handler

import (
	matterapp "github.com/advoga/backend/internal/application/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/courtsync"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errSyncDisabled = shared.NewDomainError(shared.ErrCodeInvalidState, "court synchronization is disabled")

// MatterHandler handles case and client API endpoints
type MatterHandler struct {
	BaseHandler
	service *matterapp.MatterService
	syncer  *courtsync.Worker
}

// NewMatterHandler creates a new MatterHandler. The syncer may be nil when
// court synchronization is disabled.
func NewMatterHandler(service *matterapp.MatterService, syncer *courtsync.Worker) *MatterHandler {
	return &MatterHandler{
		service: service,
		syncer:  syncer,
	}
}

// RegisterRoutes registers case and client routes
func (h *MatterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	{
		cases.GET("", h.ListCases)
		cases.POST("", h.CreateCase)
		cases.POST("/:id/sync", h.SyncCase)
	}

	clients := rg.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
	}
}

// CreateCase registers a new legal case
func (h *MatterHandler) CreateCase(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req matterapp.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	legalCase, err := h.service.CreateCase(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, legalCase)
}

// ListCases lists the tenant's cases with their recent movements
func (h *MatterHandler) ListCases(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	cases, err := h.service.ListCases(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cases)
}

// SyncCase schedules a background synchronization against the court registry
func (h *MatterHandler) SyncCase(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid case id")
		return
	}

	if h.syncer == nil {
		h.HandleError(c, errSyncDisabled)
		return
	}

	scheduled, err := h.syncer.Enqueue(c.Request.Context(), courtsync.Job{
		TenantID: tenantID,
		CaseID:   id,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, gin.H{
		"case_id":   id,
		"scheduled": scheduled,
	})
}

// CreateClient registers a new client
func (h *MatterHandler) CreateClient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req matterapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// ListClients lists the tenant's clients
func (h *MatterHandler) ListClients(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	clients, err := h.service.ListClients(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}
