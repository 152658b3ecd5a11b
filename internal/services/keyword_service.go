package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// keywordService handles tracked keywords.
type keywordService struct {
	db *gorm.DB
}

// NewKeywordService creates a new KeywordServicer.
func NewKeywordService(db *gorm.DB) KeywordServicer {
	return &keywordService{db: db}
}

// ListKeywords returns a page of a website's keywords matching the query,
// best-ranked first with unranked keywords last.
func (s *keywordService) ListKeywords(websiteID uint, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Keyword], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.Keyword{}).
		Where("website_id = ?", websiteID).
		Scopes(searchScope(query, "keyword"))

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var keywords []models.Keyword
	err := scoped.
		Order("CASE WHEN current_ranking = 0 THEN 1 ELSE 0 END, current_ranking ASC").
		Scopes(pagination.Paginate(page)).
		Find(&keywords).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(keywords, page, total)
	return &resp, nil
}

// GetKeyword fetches one keyword.
func (s *keywordService) GetKeyword(id uint) (*models.Keyword, error) {
	var keyword models.Keyword
	if err := s.db.First(&keyword, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrKeywordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &keyword, nil
}

// CreateKeyword starts tracking a keyword for a website.
func (s *keywordService) CreateKeyword(websiteID uint, in KeywordInput) (*models.Keyword, error) {
	if in.Keyword == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "keyword is required")
	}

	var count int64
	if err := s.db.Model(&models.Website{}).Where("id = ?", websiteID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrWebsiteNotFound
	}

	keyword := &models.Keyword{
		WebsiteID:      websiteID,
		Keyword:        in.Keyword,
		SearchVolume:   in.SearchVolume,
		Difficulty:     in.Difficulty,
		CurrentRanking: in.CurrentRanking,
	}
	if err := s.db.Create(keyword).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return keyword, nil
}

// UpdateKeyword applies the non-nil fields of the update. A ranking change
// moves the old ranking into PreviousRanking.
func (s *keywordService) UpdateKeyword(id uint, in KeywordUpdate) (*models.Keyword, error) {
	keyword, err := s.GetKeyword(id)
	if err != nil {
		return nil, err
	}

	if in.SearchVolume != nil {
		keyword.SearchVolume = *in.SearchVolume
	}
	if in.Difficulty != nil {
		keyword.Difficulty = *in.Difficulty
	}
	if in.CurrentRanking != nil && *in.CurrentRanking != keyword.CurrentRanking {
		keyword.PreviousRanking = keyword.CurrentRanking
		keyword.CurrentRanking = *in.CurrentRanking
	}

	if err := s.db.Save(keyword).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return keyword, nil
}

// DeleteKeyword stops tracking a keyword.
func (s *keywordService) DeleteKeyword(id uint) error {
	result := s.db.Delete(&models.Keyword{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrKeywordNotFound
	}
	return nil
}
