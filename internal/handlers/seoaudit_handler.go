package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// SEOAuditHandler handles SEO audit requests.
type SEOAuditHandler struct {
	auditService    services.SEOAuditServicer
	activityAuditor services.AuditServicer
}

// NewSEOAuditHandler creates a new SEOAuditHandler.
func NewSEOAuditHandler(auditService services.SEOAuditServicer, activityAuditor services.AuditServicer) *SEOAuditHandler {
	return &SEOAuditHandler{auditService: auditService, activityAuditor: activityAuditor}
}

// CreateAuditRequest represents the payload for recording an audit.
type CreateAuditRequest struct {
	OverallScore int             `json:"overallScore" binding:"gte=0,lte=100"`
	Findings     json.RawMessage `json:"findings"`
}

// ListAllAudits returns a page of audits across all websites
// @Summary     List audits
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.SEOAudit]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /audits [get]
func (h *SEOAuditHandler) ListAllAudits(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.ListAudits(nil, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListWebsiteAudits returns a page of one website's audits
// @Summary     List website audits
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Success     200 {object} pagination.PageResponse[models.SEOAudit]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /websites/{id}/audits [get]
func (h *SEOAuditHandler) ListWebsiteAudits(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.ListAudits(&websiteID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAudit returns one audit
// @Summary     Get audit
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Audit ID"
// @Success     200 {object} models.SEOAudit
// @Failure     404 {object} ErrorResponse "Audit not found"
// @Router      /audits/{id} [get]
func (h *SEOAuditHandler) GetAudit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	audit, err := h.auditService.GetAudit(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, audit)
}

// CreateAudit records an audit and refreshes the website's score
// @Summary     Record audit
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       request body CreateAuditRequest true "Audit result"
// @Success     201 {object} models.SEOAudit
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id}/audits [post]
func (h *SEOAuditHandler) CreateAudit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	audit, err := h.auditService.CreateAudit(websiteID, services.SEOAuditInput{
		OverallScore: req.OverallScore,
		Findings:     req.Findings,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, audit)

	h.activityAuditor.Log(auditEntry(c, userID, "CREATE", "seo_audit", strconv.FormatUint(uint64(audit.ID), 10), "Recorded SEO audit"))
}
