package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GiaHeplBro/SEO/internal/services"
)

// MetricsHandler handles the dashboard metrics endpoint.
type MetricsHandler struct {
	metricsService services.MetricsServicer
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService services.MetricsServicer) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// GetMetrics returns the dashboard counters
// @Summary     Get dashboard metrics
// @Description Get client, task, follow-up, and compliance counters with trends
// @Tags        metrics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardMetrics
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /metrics [get]
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.metricsService.GetDashboardMetrics()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
