package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// KeywordHandler handles tracked keyword requests.
type KeywordHandler struct {
	keywordService services.KeywordServicer
}

// NewKeywordHandler creates a new KeywordHandler.
func NewKeywordHandler(keywordService services.KeywordServicer) *KeywordHandler {
	return &KeywordHandler{keywordService: keywordService}
}

// CreateKeywordRequest represents the payload for tracking a keyword.
type CreateKeywordRequest struct {
	Keyword        string `json:"keyword" binding:"required,min=1,max=200"`
	SearchVolume   int    `json:"searchVolume" binding:"gte=0"`
	Difficulty     int    `json:"difficulty" binding:"gte=0,lte=100"`
	CurrentRanking int    `json:"currentRanking" binding:"gte=0"`
}

// UpdateKeywordRequest represents the keyword update payload.
type UpdateKeywordRequest struct {
	SearchVolume   *int `json:"searchVolume" binding:"omitempty,gte=0"`
	Difficulty     *int `json:"difficulty" binding:"omitempty,gte=0,lte=100"`
	CurrentRanking *int `json:"currentRanking" binding:"omitempty,gte=0"`
}

// ListKeywords returns a page of a website's keywords
// @Summary     List keywords
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       query query string false "Search by keyword"
// @Success     200 {object} pagination.PageResponse[models.Keyword]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /websites/{id}/keywords [get]
func (h *KeywordHandler) ListKeywords(c *gin.Context) {
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

	result, err := h.keywordService.ListKeywords(websiteID, c.Query("query"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetKeyword returns one keyword
// @Summary     Get keyword
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Keyword ID"
// @Success     200 {object} models.Keyword
// @Failure     404 {object} ErrorResponse "Keyword not found"
// @Router      /keywords/{id} [get]
func (h *KeywordHandler) GetKeyword(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	keyword, err := h.keywordService.GetKeyword(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, keyword)
}

// CreateKeyword starts tracking a keyword
// @Summary     Track keyword
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       request body CreateKeywordRequest true "Keyword details"
// @Success     201 {object} models.Keyword
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id}/keywords [post]
func (h *KeywordHandler) CreateKeyword(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	keyword, err := h.keywordService.CreateKeyword(websiteID, services.KeywordInput{
		Keyword:        req.Keyword,
		SearchVolume:   req.SearchVolume,
		Difficulty:     req.Difficulty,
		CurrentRanking: req.CurrentRanking,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, keyword)
}

// UpdateKeyword applies a partial keyword update
// @Summary     Update keyword
// @Description Update keyword metrics. A ranking change moves the old ranking into previousRanking.
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Keyword ID"
// @Param       request body UpdateKeywordRequest true "Fields to update"
// @Success     200 {object} models.Keyword
// @Failure     404 {object} ErrorResponse "Keyword not found"
// @Router      /keywords/{id} [patch]
func (h *KeywordHandler) UpdateKeyword(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	keyword, err := h.keywordService.UpdateKeyword(id, services.KeywordUpdate{
		SearchVolume:   req.SearchVolume,
		Difficulty:     req.Difficulty,
		CurrentRanking: req.CurrentRanking,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, keyword)
}

// DeleteKeyword stops tracking a keyword
// @Summary     Delete keyword
// @Tags        seo
// @Security    BearerAuth
// @Param       id path int true "Keyword ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Keyword not found"
// @Router      /keywords/{id} [delete]
func (h *KeywordHandler) DeleteKeyword(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.keywordService.DeleteKeyword(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
