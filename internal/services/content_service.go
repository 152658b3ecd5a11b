package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/GiaHeplBro/SEO/internal/ai"
	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// contentService handles content optimizations and AI generation.
type contentService struct {
	db *gorm.DB
	ai *ai.PerplexityClient
}

// NewContentService creates a new ContentServicer.
func NewContentService(db *gorm.DB, client *ai.PerplexityClient) ContentServicer {
	return &contentService{db: db, ai: client}
}

// ListOptimizations returns a page of a website's content optimizations,
// newest first.
func (s *contentService) ListOptimizations(websiteID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ContentOptimization], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.ContentOptimization{}).Where("website_id = ?", websiteID)

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var optimizations []models.ContentOptimization
	err := scoped.Order("optimization_date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&optimizations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(optimizations, page, total)
	return &resp, nil
}

// GetOptimization fetches one content optimization.
func (s *contentService) GetOptimization(id uint) (*models.ContentOptimization, error) {
	var optimization models.ContentOptimization
	if err := s.db.First(&optimization, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOptimizationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &optimization, nil
}

// CreateOptimization stores an externally produced optimization.
func (s *contentService) CreateOptimization(websiteID uint, in ContentInput) (*models.ContentOptimization, error) {
	if in.TargetKeyword == "" || in.OptimizedContent == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target keyword and optimized content are required")
	}
	if err := s.requireWebsite(websiteID); err != nil {
		return nil, err
	}

	optimization := &models.ContentOptimization{
		WebsiteID:        websiteID,
		PageURL:          in.PageURL,
		TargetKeyword:    in.TargetKeyword,
		OriginalContent:  in.OriginalContent,
		OptimizedContent: in.OptimizedContent,
		SEOScore:         in.SEOScore,
		ReadabilityScore: in.ReadabilityScore,
		OptimizationDate: time.Now(),
		Settings:         string(in.Settings),
	}
	if err := s.db.Create(optimization).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return optimization, nil
}

// GenerateContent rewrites the given content for the target keyword
// through the AI client and stores the result. Returns ErrAINotConfigured
// when no API key is set so the handler can serve its demo payload.
func (s *contentService) GenerateContent(ctx context.Context, req GenerateContentRequest) (*models.ContentOptimization, error) {
	if req.TargetKeyword == "" || req.Content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "content and target keyword are required")
	}
	if !s.ai.Configured() {
		return nil, apperrors.ErrAINotConfigured
	}
	if err := s.requireWebsite(req.WebsiteID); err != nil {
		return nil, err
	}

	opts := ai.GenerationOptions{
		ContentLength:    req.ContentLength,
		SEOOptimization:  req.SEOOptimization,
		ReadabilityLevel: req.ReadabilityLevel,
	}
	optimized, err := s.ai.GenerateContent(ctx, req.Content, req.TargetKeyword, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAIUpstream, err)
	}

	settings, err := json.Marshal(opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	optimization := &models.ContentOptimization{
		WebsiteID:          req.WebsiteID,
		PageURL:            req.PageURL,
		TargetKeyword:      req.TargetKeyword,
		OriginalContent:    req.Content,
		OptimizedContent:   optimized,
		SEOScore:           keywordScore(optimized, req.TargetKeyword),
		ReadabilityScore:   readabilityScore(optimized),
		OptimizationDate:   time.Now(),
		Settings:           string(settings),
		AIGenerationPrompt: req.TargetKeyword,
	}
	if err := s.db.Create(optimization).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return optimization, nil
}

// requireWebsite returns ErrWebsiteNotFound when the website does not
// exist.
func (s *contentService) requireWebsite(id uint) error {
	var count int64
	if err := s.db.Model(&models.Website{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrWebsiteNotFound
	}
	return nil
}

// keywordScore grades generated content by keyword presence: a base score
// plus a small bonus per occurrence, capped at 100.
func keywordScore(content, keyword string) int {
	occurrences := strings.Count(strings.ToLower(content), strings.ToLower(keyword))
	score := 60 + occurrences*5
	if score > 100 {
		score = 100
	}
	return score
}

// readabilityScore grades generated content by average sentence length,
// favoring shorter sentences.
func readabilityScore(content string) int {
	sentences := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	words := len(strings.Fields(content))
	if len(sentences) == 0 || words == 0 {
		return 0
	}

	avg := words / len(sentences)
	score := 100 - avg*2
	if score < 20 {
		score = 20
	}
	return score
}
