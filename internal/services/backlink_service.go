package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// backlinkService handles backlinks.
type backlinkService struct {
	db *gorm.DB
}

// NewBacklinkService creates a new BacklinkServicer.
func NewBacklinkService(db *gorm.DB) BacklinkServicer {
	return &backlinkService{db: db}
}

// ListBacklinks returns a page of a website's backlinks, strongest domains
// first. With toxicOnly only links above the toxicity threshold are
// returned.
func (s *backlinkService) ListBacklinks(websiteID uint, toxicOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Backlink], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.Backlink{}).Where("website_id = ?", websiteID)
	if toxicOnly {
		scoped = scoped.Where("toxicity_score > ?", models.ToxicityThreshold)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var backlinks []models.Backlink
	err := scoped.Order("domain_authority DESC").
		Scopes(pagination.Paginate(page)).
		Find(&backlinks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(backlinks, page, total)
	return &resp, nil
}

// CreateBacklink records a newly discovered backlink.
func (s *backlinkService) CreateBacklink(websiteID uint, in BacklinkInput) (*models.Backlink, error) {
	if in.SourceURL == "" || in.TargetURL == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source and target urls are required")
	}

	var count int64
	if err := s.db.Model(&models.Website{}).Where("id = ?", websiteID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrWebsiteNotFound
	}

	now := time.Now()
	backlink := &models.Backlink{
		WebsiteID:       websiteID,
		SourceURL:       in.SourceURL,
		TargetURL:       in.TargetURL,
		AnchorText:      in.AnchorText,
		DomainAuthority: in.DomainAuthority,
		ToxicityScore:   in.ToxicityScore,
		Status:          models.BacklinkStatusActive,
		FirstDiscovered: now,
		LastChecked:     now,
	}
	if err := s.db.Create(backlink).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return backlink, nil
}

// UpdateStatus moves a backlink to a new status and stamps the check time.
func (s *backlinkService) UpdateStatus(id uint, status string) (*models.Backlink, error) {
	var backlink models.Backlink
	if err := s.db.First(&backlink, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBacklinkNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	backlink.Status = status
	backlink.LastChecked = time.Now()

	if err := s.db.Save(&backlink).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &backlink, nil
}

// DeleteBacklink removes a backlink.
func (s *backlinkService) DeleteBacklink(id uint) error {
	result := s.db.Delete(&models.Backlink{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBacklinkNotFound
	}
	return nil
}
