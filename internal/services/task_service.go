package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// taskService handles task-related business logic.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// taskRow is the scan target for task queries joined with clients.
type taskRow struct {
	models.Task
	ClientName     string
	ClientIndustry string
}

func (r taskRow) view() TaskView {
	return TaskView{
		Task: r.Task,
		Client: TaskClient{
			ID:       r.ClientID,
			Name:     r.ClientName,
			Industry: r.ClientIndustry,
			Initials: initialsFor(r.ClientName),
		},
	}
}

// ListTasks returns a page of tasks joined with their clients, soonest due
// first. The query matches task descriptions and client names.
func (s *taskService) ListTasks(filter TaskFilter, page pagination.PageRequest) (*pagination.PageResponse[TaskView], error) {
	page = page.Defaults()

	scoped := s.db.Model(&models.Task{}).
		Joins("JOIN clients ON clients.id = tasks.client_id").
		Scopes(searchScope(filter.Query, "tasks.description", "clients.name"))

	if filter.Priority != "" {
		scoped = scoped.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.Status != "" {
		scoped = scoped.Where("tasks.status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		scoped = scoped.Where("tasks.client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []taskRow
	err := scoped.
		Select("tasks.*, clients.name AS client_name, clients.industry AS client_industry").
		Order("tasks.due_date ASC").
		Scopes(pagination.Paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]TaskView, len(rows))
	for i, r := range rows {
		views[i] = r.view()
	}

	resp := pagination.NewPageResponse(views, page, total)
	return &resp, nil
}

// GetTask fetches one task joined with its client.
func (s *taskService) GetTask(id uint) (*TaskView, error) {
	var row taskRow
	err := s.db.Model(&models.Task{}).
		Select("tasks.*, clients.name AS client_name, clients.industry AS client_industry").
		Joins("JOIN clients ON clients.id = tasks.client_id").
		Where("tasks.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	view := row.view()
	return &view, nil
}

// CreateTask creates a task and records a scheduling activity against the
// client.
func (s *taskService) CreateTask(userID uint, in TaskInput) (*models.Task, error) {
	if in.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task description is required")
	}
	if in.DueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task due date is required")
	}

	var clientCount int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", in.ClientID).Count(&clientCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if clientCount == 0 {
		return nil, apperrors.ErrClientNotFound
	}

	if in.AssignedToID == 0 {
		in.AssignedToID = userID
	}

	task := &models.Task{
		ClientID:     in.ClientID,
		AssignedToID: in.AssignedToID,
		Description:  in.Description,
		DueDate:      in.DueDate,
		Priority:     in.Priority,
		Status:       models.TaskStatusPending,
		Notes:        in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		activity := &models.Activity{
			ClientID:  in.ClientID,
			UserID:    userID,
			Type:      models.ActivityMeetingScheduled,
			Message:   "New task scheduled: " + in.Description,
			Timestamp: time.Now(),
		}
		if err := tx.Create(activity).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies the non-nil fields of the update. Setting the status
// to completed is rejected; completion goes through CompleteTask so the
// completion stamp stays consistent.
func (s *taskService) UpdateTask(id uint, in TaskUpdate) (*models.Task, error) {
	if in.Status != nil && *in.Status == models.TaskStatusCompleted {
		return nil, apperrors.ErrTaskStatusReserved
	}

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = *in.DueDate
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Notes != nil {
		task.Notes = *in.Notes
	}

	if err := s.db.Save(&task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &task, nil
}

// CompleteTask marks a task completed, stamping who completed it and when,
// and records an approval activity. Completing an already-completed task
// is a conflict.
func (s *taskService) CompleteTask(id, userID uint) (*models.Task, error) {
	var task models.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if task.Status == models.TaskStatusCompleted {
			return apperrors.ErrTaskAlreadyCompleted
		}

		now := time.Now()
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &now
		task.CompletedByID = &userID

		if err := tx.Save(&task).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		activity := &models.Activity{
			ClientID:  task.ClientID,
			UserID:    userID,
			Type:      models.ActivityApproval,
			Message:   "Task completed: " + task.Description,
			Timestamp: now,
		}
		if err := tx.Create(activity).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask removes a task.
func (s *taskService) DeleteTask(id uint) error {
	result := s.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
