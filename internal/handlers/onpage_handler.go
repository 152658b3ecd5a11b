package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// OnPageHandler handles on-page optimization suggestions.
type OnPageHandler struct {
	onPageService services.OnPageServicer
}

// NewOnPageHandler creates a new OnPageHandler.
func NewOnPageHandler(onPageService services.OnPageServicer) *OnPageHandler {
	return &OnPageHandler{onPageService: onPageService}
}

// CreateOnPageRequest represents the payload for recording a suggestion.
type CreateOnPageRequest struct {
	PageURL        string `json:"pageUrl" binding:"required,max=500"`
	Element        string `json:"element" binding:"required,max=100"`
	CurrentValue   string `json:"currentValue" binding:"max=2000"`
	SuggestedValue string `json:"suggestedValue" binding:"required,max=2000"`
	Impact         string `json:"impact" binding:"required,oneof=high medium low"`
}

// UpdateOnPageStatusRequest represents the status change payload.
type UpdateOnPageStatusRequest struct {
	Status string `json:"status" binding:"required,optimization_status"`
}

// onPageListQuery binds the suggestion list's query parameters.
type onPageListQuery struct {
	pagination.PageRequest
	PageURL string `form:"pageUrl"`
}

// ListOnPageOptimizations returns a page of a website's suggestions
// @Summary     List on-page suggestions
// @Description List on-page suggestions, pending first, optionally narrowed to one page URL
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       pageUrl query string false "Filter by page URL"
// @Success     200 {object} pagination.PageResponse[models.OnPageOptimization]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /websites/{id}/on-page-optimizations [get]
func (h *OnPageHandler) ListOnPageOptimizations(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q onPageListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.onPageService.ListOptimizations(websiteID, q.PageURL, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateOnPageOptimization records a suggestion
// @Summary     Record on-page suggestion
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       request body CreateOnPageRequest true "Suggestion details"
// @Success     201 {object} models.OnPageOptimization
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id}/on-page-optimizations [post]
func (h *OnPageHandler) CreateOnPageOptimization(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateOnPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	optimization, err := h.onPageService.CreateOptimization(websiteID, services.OnPageInput{
		PageURL:        req.PageURL,
		Element:        req.Element,
		CurrentValue:   req.CurrentValue,
		SuggestedValue: req.SuggestedValue,
		Impact:         req.Impact,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, optimization)
}

// UpdateOnPageStatus moves a suggestion between statuses
// @Summary     Update suggestion status
// @Description Apply or dismiss a suggestion. Applying stamps appliedAt; any other status clears it.
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Suggestion ID"
// @Param       request body UpdateOnPageStatusRequest true "New status"
// @Success     200 {object} models.OnPageOptimization
// @Failure     404 {object} ErrorResponse "Suggestion not found"
// @Router      /on-page-optimizations/{id}/status [patch]
func (h *OnPageHandler) UpdateOnPageStatus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOnPageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	optimization, err := h.onPageService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, optimization)
}
