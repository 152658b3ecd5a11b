package services

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
)

// settingsService handles application settings stored as (category, key)
// JSON values.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns every stored setting grouped by category.
func (s *settingsService) GetSettings() (map[string]map[string]json.RawMessage, error) {
	var settings []models.Setting
	if err := s.db.Order("category ASC, key ASC").Find(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	grouped := make(map[string]map[string]json.RawMessage)
	for _, setting := range settings {
		if grouped[setting.Category] == nil {
			grouped[setting.Category] = make(map[string]json.RawMessage)
		}
		grouped[setting.Category][setting.Key] = json.RawMessage(setting.Value)
	}
	return grouped, nil
}

// GetCategory returns all stored settings in one category.
func (s *settingsService) GetCategory(category string) (map[string]json.RawMessage, error) {
	var settings []models.Setting
	if err := s.db.Where("category = ?", category).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	values := make(map[string]json.RawMessage, len(settings))
	for _, setting := range settings {
		values[setting.Key] = json.RawMessage(setting.Value)
	}
	return values, nil
}

// UpdateCategory upserts each provided key in the category and returns the
// category's full contents afterwards. Keys not present in values are left
// untouched.
func (s *settingsService) UpdateCategory(category string, values map[string]json.RawMessage, userID uint) (map[string]json.RawMessage, error) {
	if len(values) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no settings provided")
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := models.Setting{
				Category:    category,
				Key:         key,
				Value:       string(value),
				UpdatedAt:   now,
				UpdatedByID: userID,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "category"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "updated_by_id"}),
			}).Create(&setting).Error
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCategory(category)
}
