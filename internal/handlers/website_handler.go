package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// WebsiteHandler handles website-related requests.
type WebsiteHandler struct {
	websiteService services.WebsiteServicer
	auditService   services.AuditServicer
}

// NewWebsiteHandler creates a new WebsiteHandler.
func NewWebsiteHandler(websiteService services.WebsiteServicer, auditService services.AuditServicer) *WebsiteHandler {
	return &WebsiteHandler{websiteService: websiteService, auditService: auditService}
}

// WebsiteRequest represents the create/update payload for a website.
type WebsiteRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
	URL  string `json:"url" binding:"required,url,max=255"`
}

// ListWebsites returns a page of the user's websites
// @Summary     List websites
// @Tags        websites
// @Produce     json
// @Security    BearerAuth
// @Param       query query string false "Search by name or URL"
// @Param       page query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Website]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /websites [get]
func (h *WebsiteHandler) ListWebsites(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.websiteService.ListWebsites(userID, c.Query("query"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWebsite returns one of the user's websites
// @Summary     Get website
// @Tags        websites
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Success     200 {object} models.Website
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id} [get]
func (h *WebsiteHandler) GetWebsite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	website, err := h.websiteService.GetWebsite(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, website)
}

// CreateWebsite registers a website
// @Summary     Create website
// @Tags        websites
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body WebsiteRequest true "Website details"
// @Success     201 {object} models.Website
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /websites [post]
func (h *WebsiteHandler) CreateWebsite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	website, err := h.websiteService.CreateWebsite(userID, services.WebsiteInput{Name: req.Name, URL: req.URL})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, website)

	h.auditService.Log(auditEntry(c, userID, "CREATE", "website", strconv.FormatUint(uint64(website.ID), 10), "Registered website "+website.Name))
}

// UpdateWebsite replaces a website's name and URL
// @Summary     Update website
// @Tags        websites
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       request body WebsiteRequest true "Website details"
// @Success     200 {object} models.Website
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id} [put]
func (h *WebsiteHandler) UpdateWebsite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	website, err := h.websiteService.UpdateWebsite(userID, id, services.WebsiteInput{Name: req.Name, URL: req.URL})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, website)

	h.auditService.Log(auditEntry(c, userID, "UPDATE", "website", strconv.FormatUint(uint64(id), 10), "Updated website "+website.Name))
}

// DeleteWebsite removes a website
// @Summary     Delete website
// @Tags        websites
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id} [delete]
func (h *WebsiteHandler) DeleteWebsite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.websiteService.DeleteWebsite(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)

	h.auditService.Log(auditEntry(c, userID, "DELETE", "website", strconv.FormatUint(uint64(id), 10), "Deleted website"))
}

// GetSEODashboard returns the user's aggregated SEO position
// @Summary     Get SEO dashboard
// @Description Get site, keyword, backlink, and suggestion aggregates plus recent audits
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SEODashboard
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /seo/dashboard [get]
func (h *WebsiteHandler) GetSEODashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.websiteService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
