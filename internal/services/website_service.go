package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

const recentAuditLimit = 5

// websiteService handles website-related business logic. Every operation
// is scoped to the owning user.
type websiteService struct {
	db *gorm.DB
}

// NewWebsiteService creates a new WebsiteServicer.
func NewWebsiteService(db *gorm.DB) WebsiteServicer {
	return &websiteService{db: db}
}

// ListWebsites returns a page of the user's websites matching the query.
func (s *websiteService) ListWebsites(userID uint, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Website], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.Website{}).
		Where("user_id = ?", userID).
		Scopes(searchScope(query, "name", "url"))

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var websites []models.Website
	if err := scoped.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&websites).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(websites, page, total)
	return &resp, nil
}

// GetWebsite fetches one of the user's websites.
func (s *websiteService) GetWebsite(userID, id uint) (*models.Website, error) {
	var website models.Website
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&website).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWebsiteNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &website, nil
}

// CreateWebsite registers a website for the user.
func (s *websiteService) CreateWebsite(userID uint, in WebsiteInput) (*models.Website, error) {
	if in.Name == "" || in.URL == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "website name and url are required")
	}

	website := &models.Website{
		UserID: userID,
		Name:   in.Name,
		URL:    in.URL,
	}
	if err := s.db.Create(website).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return website, nil
}

// UpdateWebsite replaces a website's name and URL.
func (s *websiteService) UpdateWebsite(userID, id uint, in WebsiteInput) (*models.Website, error) {
	if in.Name == "" || in.URL == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "website name and url are required")
	}

	website, err := s.GetWebsite(userID, id)
	if err != nil {
		return nil, err
	}

	website.Name = in.Name
	website.URL = in.URL

	if err := s.db.Save(website).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return website, nil
}

// DeleteWebsite removes one of the user's websites. Audits, keywords,
// backlinks, and optimizations go with it via cascading foreign keys.
func (s *websiteService) DeleteWebsite(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Website{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrWebsiteNotFound
	}
	return nil
}

// GetDashboard aggregates the user's SEO position: site and keyword
// counts, backlink health, open suggestions, and the latest audits.
func (s *websiteService) GetDashboard(userID uint) (*SEODashboard, error) {
	dashboard := &SEODashboard{}

	websites := s.db.Model(&models.Website{}).Where("user_id = ?", userID)
	if err := websites.Count(&dashboard.TotalWebsites).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if dashboard.TotalWebsites > 0 {
		type avgRow struct{ Avg float64 }
		var avg avgRow
		err := s.db.Model(&models.Website{}).
			Where("user_id = ?", userID).
			Select("COALESCE(AVG(seo_score), 0) AS avg").
			Find(&avg).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		dashboard.AverageSEOScore = avg.Avg
	}

	siteIDs := s.db.Model(&models.Website{}).Select("id").Where("user_id = ?", userID)

	err := s.db.Model(&models.Keyword{}).
		Where("website_id IN (?)", siteIDs).
		Count(&dashboard.TotalKeywords).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Keyword{}).
		Where("website_id IN (?)", siteIDs).
		Where("current_ranking > 0").
		Count(&dashboard.RankingKeywords).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Backlink{}).
		Where("website_id IN (?)", siteIDs).
		Count(&dashboard.TotalBacklinks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Backlink{}).
		Where("website_id IN (?)", siteIDs).
		Where("toxicity_score > ?", models.ToxicityThreshold).
		Count(&dashboard.ToxicBacklinks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.OnPageOptimization{}).
		Where("website_id IN (?)", siteIDs).
		Where("status = ?", models.OptimizationStatusPending).
		Count(&dashboard.PendingSuggestions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.SEOAudit{}).
		Where("website_id IN (?)", siteIDs).
		Order("audit_date DESC").
		Limit(recentAuditLimit).
		Find(&dashboard.RecentAudits).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return dashboard, nil
}
