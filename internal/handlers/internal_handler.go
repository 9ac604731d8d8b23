package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"herdbook/internal/services"
)

// InternalHandler serves the API-key protected operations endpoints.
type InternalHandler struct {
	reconcileService services.ReconcileServicer
	auditService     services.AuditServicer
}

// NewInternalHandler creates a new InternalHandler.
func NewInternalHandler(reconcileService services.ReconcileServicer, auditService services.AuditServicer) *InternalHandler {
	return &InternalHandler{reconcileService: reconcileService, auditService: auditService}
}

// ReconcileAll re-syncs the ledgers of every active user
// @Summary     Reconcile all ledgers
// @Description Run the reconciliation pass for every active user (operations endpoint).
// @Tags        internal
// @Produce     json
// @Param       X-API-Key header string true "Internal API key"
// @Success     200 {object} services.ReconcileReport "Combined report"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Internal endpoints not configured or backend unavailable"
// @Router      /internal/reconcile [post]
func (h *InternalHandler) ReconcileAll(c *gin.Context) {
	report, err := h.reconcileService.ReconcileAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.SystemActorID, "RECONCILE_ALL", "ledger", "", c.ClientIP(),
		map[string]interface{}{"users": report.Users, "failed": report.Failed, "orphans": report.Orphans})

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler. A nil pinger reports ok.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles the health check
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string "Service healthy"
// @Failure     503 {object} map[string]string "Database unreachable"
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
