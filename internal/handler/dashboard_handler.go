package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/middleware"
	"github.com/nunukkam/admin-portal-api/internal/service"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// DashboardHandler exposes the landing-screen counters.
type DashboardHandler struct {
	dashboard *service.DashboardService
	metrics   *service.MetricsService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, metrics *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, metrics: metrics}
}

// Summary godoc
// @Summary Dashboard counters
// @Description Aggregate counts for the admin landing screen, cached for a short TTL.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, hit, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// SystemMetrics godoc
// @Summary Runtime metrics snapshot
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) SystemMetrics(c *gin.Context) {
	if h.metrics == nil {
		response.JSON(c, http.StatusOK, gin.H{}, nil)
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
