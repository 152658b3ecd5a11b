package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// onPageService handles on-page optimization suggestions.
type onPageService struct {
	db *gorm.DB
}

// NewOnPageService creates a new OnPageServicer.
func NewOnPageService(db *gorm.DB) OnPageServicer {
	return &onPageService{db: db}
}

// ListOptimizations returns a page of a website's suggestions, optionally
// narrowed to one page URL, pending first and then newest first.
func (s *onPageService) ListOptimizations(websiteID uint, pageURL string, page pagination.PageRequest) (*pagination.PageResponse[models.OnPageOptimization], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.OnPageOptimization{}).Where("website_id = ?", websiteID)
	if pageURL != "" {
		scoped = scoped.Where("page_url = ?", pageURL)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var optimizations []models.OnPageOptimization
	err := scoped.
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&optimizations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(optimizations, page, total)
	return &resp, nil
}

// CreateOptimization records a suggestion for a page element.
func (s *onPageService) CreateOptimization(websiteID uint, in OnPageInput) (*models.OnPageOptimization, error) {
	if in.PageURL == "" || in.Element == "" || in.SuggestedValue == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "page url, element, and suggested value are required")
	}

	var count int64
	if err := s.db.Model(&models.Website{}).Where("id = ?", websiteID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrWebsiteNotFound
	}

	optimization := &models.OnPageOptimization{
		WebsiteID:      websiteID,
		PageURL:        in.PageURL,
		Element:        in.Element,
		CurrentValue:   in.CurrentValue,
		SuggestedValue: in.SuggestedValue,
		Impact:         in.Impact,
		Status:         models.OptimizationStatusPending,
	}
	if err := s.db.Create(optimization).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return optimization, nil
}

// UpdateStatus moves a suggestion between statuses. Applying stamps
// AppliedAt; any other status clears it.
func (s *onPageService) UpdateStatus(id uint, status string) (*models.OnPageOptimization, error) {
	var optimization models.OnPageOptimization
	if err := s.db.First(&optimization, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOptimizationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	optimization.Status = status
	if status == models.OptimizationStatusApplied {
		now := time.Now()
		optimization.AppliedAt = &now
	} else {
		optimization.AppliedAt = nil
	}

	err := s.db.Model(&optimization).
		Select("status", "applied_at").
		Updates(map[string]interface{}{"status": optimization.Status, "applied_at": optimization.AppliedAt}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &optimization, nil
}
