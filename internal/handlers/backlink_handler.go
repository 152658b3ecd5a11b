package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// BacklinkHandler handles backlink requests.
type BacklinkHandler struct {
	backlinkService services.BacklinkServicer
}

// NewBacklinkHandler creates a new BacklinkHandler.
func NewBacklinkHandler(backlinkService services.BacklinkServicer) *BacklinkHandler {
	return &BacklinkHandler{backlinkService: backlinkService}
}

// CreateBacklinkRequest represents the payload for recording a backlink.
type CreateBacklinkRequest struct {
	SourceURL       string `json:"sourceUrl" binding:"required,url,max=500"`
	TargetURL       string `json:"targetUrl" binding:"required,url,max=500"`
	AnchorText      string `json:"anchorText" binding:"max=255"`
	DomainAuthority int    `json:"domainAuthority" binding:"gte=0,lte=100"`
	ToxicityScore   int    `json:"toxicityScore" binding:"gte=0,lte=100"`
}

// UpdateBacklinkStatusRequest represents the status change payload.
type UpdateBacklinkStatusRequest struct {
	Status string `json:"status" binding:"required,backlink_status"`
}

// backlinkListQuery binds the backlink list's query parameters.
type backlinkListQuery struct {
	pagination.PageRequest
	Toxic bool `form:"toxic"`
}

// ListBacklinks returns a page of a website's backlinks
// @Summary     List backlinks
// @Description List backlinks, strongest domains first. With toxic=true only links above the toxicity threshold are returned.
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       toxic query bool false "Only toxic backlinks"
// @Success     200 {object} pagination.PageResponse[models.Backlink]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /websites/{id}/backlinks [get]
func (h *BacklinkHandler) ListBacklinks(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q backlinkListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.backlinkService.ListBacklinks(websiteID, q.Toxic, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateBacklink records a newly discovered backlink
// @Summary     Record backlink
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       request body CreateBacklinkRequest true "Backlink details"
// @Success     201 {object} models.Backlink
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id}/backlinks [post]
func (h *BacklinkHandler) CreateBacklink(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBacklinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	backlink, err := h.backlinkService.CreateBacklink(websiteID, services.BacklinkInput{
		SourceURL:       req.SourceURL,
		TargetURL:       req.TargetURL,
		AnchorText:      req.AnchorText,
		DomainAuthority: req.DomainAuthority,
		ToxicityScore:   req.ToxicityScore,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, backlink)
}

// UpdateBacklinkStatus moves a backlink to a new status
// @Summary     Update backlink status
// @Description Change a backlink's status and stamp its check time
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Backlink ID"
// @Param       request body UpdateBacklinkStatusRequest true "New status"
// @Success     200 {object} models.Backlink
// @Failure     404 {object} ErrorResponse "Backlink not found"
// @Router      /backlinks/{id}/status [patch]
func (h *BacklinkHandler) UpdateBacklinkStatus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBacklinkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	backlink, err := h.backlinkService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, backlink)
}

// DeleteBacklink removes a backlink
// @Summary     Delete backlink
// @Tags        seo
// @Security    BearerAuth
// @Param       id path int true "Backlink ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Backlink not found"
// @Router      /backlinks/{id} [delete]
func (h *BacklinkHandler) DeleteBacklink(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.backlinkService.DeleteBacklink(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
