package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// ContentHandler handles content optimizations and AI generation.
type ContentHandler struct {
	contentService services.ContentServicer
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService services.ContentServicer) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// CreateContentRequest represents the payload for storing an optimization.
type CreateContentRequest struct {
	PageURL          string          `json:"pageUrl" binding:"max=500"`
	TargetKeyword    string          `json:"targetKeyword" binding:"required,min=1,max=200"`
	OriginalContent  string          `json:"originalContent"`
	OptimizedContent string          `json:"optimizedContent" binding:"required"`
	SEOScore         int             `json:"seoScore" binding:"gte=0,lte=100"`
	ReadabilityScore int             `json:"readabilityScore" binding:"gte=0,lte=100"`
	Settings         json.RawMessage `json:"settings"`
}

// GenerateContentRequest represents the AI generation payload.
type GenerateContentRequest struct {
	WebsiteID        uint   `json:"websiteId" binding:"required"`
	PageURL          string `json:"pageUrl" binding:"max=500"`
	Content          string `json:"content" binding:"required"`
	TargetKeyword    string `json:"targetKeyword" binding:"required,min=1,max=200"`
	ContentLength    int    `json:"contentLength" binding:"gte=0,lte=5"`
	SEOOptimization  int    `json:"seoOptimization" binding:"gte=0,lte=100"`
	ReadabilityLevel int    `json:"readabilityLevel" binding:"gte=0,lte=5"`
}

// ListContentOptimizations returns a page of a website's optimizations
// @Summary     List content optimizations
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Success     200 {object} pagination.PageResponse[models.ContentOptimization]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /websites/{id}/content-optimizations [get]
func (h *ContentHandler) ListContentOptimizations(c *gin.Context) {
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

	result, err := h.contentService.ListOptimizations(websiteID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetContentOptimization returns one optimization
// @Summary     Get content optimization
// @Tags        seo
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Optimization ID"
// @Success     200 {object} models.ContentOptimization
// @Failure     404 {object} ErrorResponse "Optimization not found"
// @Router      /content-optimizations/{id} [get]
func (h *ContentHandler) GetContentOptimization(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	optimization, err := h.contentService.GetOptimization(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, optimization)
}

// CreateContentOptimization stores an externally produced optimization
// @Summary     Store content optimization
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Website ID"
// @Param       request body CreateContentRequest true "Optimization details"
// @Success     201 {object} models.ContentOptimization
// @Failure     404 {object} ErrorResponse "Website not found"
// @Router      /websites/{id}/content-optimizations [post]
func (h *ContentHandler) CreateContentOptimization(c *gin.Context) {
	websiteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	optimization, err := h.contentService.CreateOptimization(websiteID, services.ContentInput{
		PageURL:          req.PageURL,
		TargetKeyword:    req.TargetKeyword,
		OriginalContent:  req.OriginalContent,
		OptimizedContent: req.OptimizedContent,
		SEOScore:         req.SEOScore,
		ReadabilityScore: req.ReadabilityScore,
		Settings:         req.Settings,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, optimization)
}

// GenerateContent rewrites content through the AI client
// @Summary     Generate optimized content
// @Description Generate SEO-optimized content for a target keyword. Without an API key configured, responds 400 with a demo payload.
// @Tags        seo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GenerateContentRequest true "Generation request"
// @Success     201 {object} models.ContentOptimization
// @Failure     400 {object} ErrorResponse "Invalid input or AI not configured"
// @Failure     500 {object} ErrorResponse "Upstream AI error"
// @Router      /ai/generate-content [post]
func (h *ContentHandler) GenerateContent(c *gin.Context) {
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	optimization, err := h.contentService.GenerateContent(c.Request.Context(), services.GenerateContentRequest{
		WebsiteID:        req.WebsiteID,
		PageURL:          req.PageURL,
		Content:          req.Content,
		TargetKeyword:    req.TargetKeyword,
		ContentLength:    req.ContentLength,
		SEOOptimization:  req.SEOOptimization,
		ReadabilityLevel: req.ReadabilityLevel,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAINotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":     "AI content generation is not configured",
				"demoMode":    true,
				"demoContent": demoContent(req),
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, optimization)
}

// demoContent renders the placeholder served when no AI key is configured.
func demoContent(req GenerateContentRequest) string {
	contentLength := "Medium"
	if req.ContentLength > 0 {
		contentLength = fmt.Sprintf("Level %d", req.ContentLength)
	}
	seoOptimization := "70%"
	if req.SEOOptimization > 0 {
		seoOptimization = fmt.Sprintf("%d%%", req.SEOOptimization)
	}
	readability := "Intermediate"
	if req.ReadabilityLevel > 0 {
		readability = fmt.Sprintf("Level %d", req.ReadabilityLevel)
	}

	return fmt.Sprintf(`# Optimized Content for: %s

## Introduction
This is a sample of AI-optimized content for the keyword %q. In a production environment, this would be generated by the configured AI provider.

## Main Content
The content would be optimized based on your settings:
- Content Length: %s
- SEO Optimization: %s
- Readability Level: %s

## Conclusion
This demonstrates how the content optimization would work. To get real AI-powered optimization, please configure the AI provider API key.`,
		req.TargetKeyword, req.TargetKeyword, contentLength, seoOptimization, readability)
}
