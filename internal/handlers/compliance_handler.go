package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GiaHeplBro/SEO/internal/services"
)

// ComplianceHandler handles compliance queries.
type ComplianceHandler struct {
	complianceService services.ComplianceServicer
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService services.ComplianceServicer) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// GetCompliance returns the compliance overview
// @Summary     Get compliance overview
// @Description Get every compliance metric with its tier, the overall score, and an alert for the weakest metric
// @Tags        compliance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ComplianceOverview
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /compliance [get]
func (h *ComplianceHandler) GetCompliance(c *gin.Context) {
	overview, err := h.complianceService.GetOverview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
