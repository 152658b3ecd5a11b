package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// seoAuditService handles SEO audits.
type seoAuditService struct {
	db *gorm.DB
}

// NewSEOAuditService creates a new SEOAuditServicer.
func NewSEOAuditService(db *gorm.DB) SEOAuditServicer {
	return &seoAuditService{db: db}
}

// ListAudits returns a page of audits, newest first, optionally scoped to
// one website.
func (s *seoAuditService) ListAudits(websiteID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.SEOAudit], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.SEOAudit{})
	if websiteID != nil {
		scoped = scoped.Where("website_id = ?", *websiteID)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var audits []models.SEOAudit
	if err := scoped.Order("audit_date DESC").Scopes(pagination.Paginate(page)).Find(&audits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(audits, page, total)
	return &resp, nil
}

// GetAudit fetches one audit.
func (s *seoAuditService) GetAudit(id uint) (*models.SEOAudit, error) {
	var audit models.SEOAudit
	if err := s.db.First(&audit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuditNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &audit, nil
}

// CreateAudit records an audit and refreshes the website's score and
// analysis timestamp in the same transaction.
func (s *seoAuditService) CreateAudit(websiteID uint, in SEOAuditInput) (*models.SEOAudit, error) {
	findings := string(in.Findings)
	if findings == "" {
		findings = "{}"
	}

	now := time.Now()
	audit := &models.SEOAudit{
		WebsiteID:    websiteID,
		OverallScore: in.OverallScore,
		Findings:     findings,
		AuditDate:    now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var website models.Website
		if err := tx.First(&website, websiteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWebsiteNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Create(audit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := map[string]interface{}{
			"seo_score":        in.OverallScore,
			"last_analyzed_at": now,
		}
		if err := tx.Model(&website).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return audit, nil
}
