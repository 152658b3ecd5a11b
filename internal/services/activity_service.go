package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// activityService handles the activity feed.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// ListActivities returns a page of activities joined with their users and
// clients, newest first.
func (s *activityService) ListActivities(filter ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[ActivityView], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.Activity{}).
		Joins("JOIN users ON users.id = activities.user_id").
		Joins("JOIN clients ON clients.id = activities.client_id")

	if filter.ClientID != nil {
		scoped = scoped.Where("activities.client_id = ?", *filter.ClientID)
	}
	if filter.Type != "" {
		scoped = scoped.Where("activities.type = ?", filter.Type)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type row struct {
		models.Activity
		UserFullName string
		UserAvatar   string
		ClientName   string
	}
	var rows []row
	err := scoped.
		Select("activities.*, users.full_name AS user_full_name, users.avatar AS user_avatar, clients.name AS client_name").
		Order("activities.timestamp DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]ActivityView, len(rows))
	for i, r := range rows {
		views[i] = ActivityView{
			Activity: r.Activity,
			User:     ActivityUser{ID: r.UserID, FullName: r.UserFullName, Avatar: r.UserAvatar},
			Client:   ActivityClient{ID: r.ClientID, Name: r.ClientName},
		}
	}

	resp := pagination.NewPageResponse(views, page, total)
	return &resp, nil
}

// AddActivity appends one activity to a client's feed.
func (s *activityService) AddActivity(clientID, userID uint, activityType, message, metadata string) (*models.Activity, error) {
	if message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "activity message is required")
	}

	var count int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrClientNotFound
	}

	activity := &models.Activity{
		ClientID:  clientID,
		UserID:    userID,
		Type:      activityType,
		Message:   message,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
	if err := s.db.Create(activity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return activity, nil
}
