package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

const recentActivityLimit = 10

// clientService handles client-related business logic.
type clientService struct {
	db *gorm.DB
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB) ClientServicer {
	return &clientService{db: db}
}

// initialsFor derives up-to-two uppercase initials from a display name.
func initialsFor(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, []rune(strings.ToUpper(word))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// searchScope applies a case-insensitive substring match over the given
// columns.
func searchScope(query string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if query == "" {
			return db
		}
		pattern := "%" + strings.ToLower(query) + "%"
		clause := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clause[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clause, " OR "), args...)
	}
}

// ListClients returns a page of clients matching the query, enriched with
// pending task counts and last activity timestamps. The enrichment runs as
// two grouped queries over the page's IDs, not per row.
func (s *clientService) ListClients(query string, page pagination.PageRequest) (*pagination.PageResponse[ClientSummary], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.Client{}).
		Scopes(searchScope(query, "name", "industry", "contact_name"))

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var clients []models.Client
	if err := scoped.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ids := make([]uint, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}

	pendingByClient, err := s.pendingTaskCounts(ids)
	if err != nil {
		return nil, err
	}
	lastActivityByClient, err := s.lastActivityTimes(ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClientSummary, len(clients))
	for i, c := range clients {
		summary := ClientSummary{
			Client:       c,
			Initials:     initialsFor(c.Name),
			PendingTasks: pendingByClient[c.ID],
		}
		if ts, ok := lastActivityByClient[c.ID]; ok {
			t := ts
			summary.LastActivity = &t
		}
		summaries[i] = summary
	}

	resp := pagination.NewPageResponse(summaries, page, total)
	return &resp, nil
}

// pendingTaskCounts returns non-completed, non-cancelled task counts
// grouped by client ID.
func (s *clientService) pendingTaskCounts(clientIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(clientIDs))
	if len(clientIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ClientID uint
		Count    int64
	}
	var rows []row
	err := s.db.Model(&models.Task{}).
		Select("client_id, COUNT(*) AS count").
		Where("client_id IN ?", clientIDs).
		Where("status NOT IN ?", []string{models.TaskStatusCompleted, models.TaskStatusCancelled}).
		Group("client_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, r := range rows {
		counts[r.ClientID] = r.Count
	}
	return counts, nil
}

// lastActivityTimes returns the newest activity timestamp grouped by
// client ID.
func (s *clientService) lastActivityTimes(clientIDs []uint) (map[uint]time.Time, error) {
	times := make(map[uint]time.Time, len(clientIDs))
	if len(clientIDs) == 0 {
		return times, nil
	}

	type row struct {
		ClientID uint
		Last     time.Time
	}
	var rows []row
	err := s.db.Model(&models.Activity{}).
		Select("client_id, MAX(timestamp) AS last").
		Where("client_id IN ?", clientIDs).
		Group("client_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, r := range rows {
		times[r.ClientID] = r.Last
	}
	return times, nil
}

// ListClientOptions returns all clients as id/name pairs for pickers.
func (s *clientService) ListClientOptions() ([]ClientOption, error) {
	var options []ClientOption
	err := s.db.Model(&models.Client{}).
		Select("id, name").
		Order("name ASC").
		Find(&options).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return options, nil
}

// GetClient fetches one client with its task counts and recent activity.
func (s *clientService) GetClient(id uint) (*ClientDetail, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	detail := ClientDetail{
		Client:   client,
		Initials: initialsFor(client.Name),
	}

	if err := s.db.Model(&models.Task{}).Where("client_id = ?", id).Count(&detail.TotalTasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	err := s.db.Model(&models.Task{}).
		Where("client_id = ?", id).
		Where("status NOT IN ?", []string{models.TaskStatusCompleted, models.TaskStatusCancelled}).
		Count(&detail.PendingTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	activities, err := s.recentActivities(id)
	if err != nil {
		return nil, err
	}
	detail.RecentActivities = activities

	return &detail, nil
}

// recentActivities loads the newest activities for a client with user and
// client names attached.
func (s *clientService) recentActivities(clientID uint) ([]ActivityView, error) {
	type row struct {
		models.Activity
		UserFullName string
		UserAvatar   string
		ClientName   string
	}
	var rows []row
	err := s.db.Model(&models.Activity{}).
		Select("activities.*, users.full_name AS user_full_name, users.avatar AS user_avatar, clients.name AS client_name").
		Joins("JOIN users ON users.id = activities.user_id").
		Joins("JOIN clients ON clients.id = activities.client_id").
		Where("activities.client_id = ?", clientID).
		Order("activities.timestamp DESC").
		Limit(recentActivityLimit).
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
	return views, nil
}

// CreateClient creates a new client.
func (s *clientService) CreateClient(in ClientInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	client := &models.Client{
		Name:         in.Name,
		Industry:     in.Industry,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Address:      in.Address,
		Notes:        in.Notes,
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return client, nil
}

// UpdateClient replaces a client's writable fields.
func (s *clientService) UpdateClient(id uint, in ClientInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	client.Name = in.Name
	client.Industry = in.Industry
	client.ContactName = in.ContactName
	client.ContactEmail = in.ContactEmail
	client.ContactPhone = in.ContactPhone
	client.Address = in.Address
	client.Notes = in.Notes

	if err := s.db.Save(&client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &client, nil
}

// DeleteClient removes a client. Tasks, activities, and interactions are
// removed by the database's cascading foreign keys.
func (s *clientService) DeleteClient(id uint) error {
	result := s.db.Delete(&models.Client{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrClientNotFound
	}
	return nil
}

// ListInteractions returns a page of a client's interactions, newest first.
func (s *clientService) ListInteractions(clientID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ClientInteraction], error) {
	page = page.Defaults()

	if err := s.requireClient(clientID); err != nil {
		return nil, err
	}

	scoped := s.db.Model(&models.ClientInteraction{}).Where("client_id = ?", clientID)

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var interactions []models.ClientInteraction
	err := scoped.Order("interaction_date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&interactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(interactions, page, total)
	return &resp, nil
}

// CreateInteraction records a touchpoint against a client.
func (s *clientService) CreateInteraction(clientID, userID uint, in InteractionInput) (*models.ClientInteraction, error) {
	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interaction title is required")
	}
	if err := s.requireClient(clientID); err != nil {
		return nil, err
	}

	if in.InteractionDate.IsZero() {
		in.InteractionDate = time.Now()
	}

	interaction := &models.ClientInteraction{
		ClientID:        clientID,
		UserID:          userID,
		Type:            in.Type,
		Title:           in.Title,
		Description:     in.Description,
		InteractionDate: in.InteractionDate,
		FollowUpTaskID:  in.FollowUpTaskID,
	}
	if err := s.db.Create(interaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return interaction, nil
}

// requireClient returns ErrClientNotFound when the client does not exist.
func (s *clientService) requireClient(id uint) error {
	var count int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrClientNotFound
	}
	return nil
}
