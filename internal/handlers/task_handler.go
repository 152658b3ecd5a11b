package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// TaskHandler handles task-related requests.
type TaskHandler struct {
	taskService  services.TaskServicer
	auditService services.AuditServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService services.TaskServicer, auditService services.AuditServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService, auditService: auditService}
}

// CreateTaskRequest represents the task creation payload.
type CreateTaskRequest struct {
	ClientID     uint      `json:"clientId" binding:"required"`
	AssignedToID uint      `json:"assignedToId"`
	Description  string    `json:"description" binding:"required,min=1,max=500"`
	DueDate      time.Time `json:"dueDate" binding:"required"`
	Priority     string    `json:"priority" binding:"required,task_priority"`
	Notes        string    `json:"notes" binding:"max=2000"`
}

// UpdateTaskRequest represents the task update payload. Nil fields are
// left unchanged.
type UpdateTaskRequest struct {
	Description *string    `json:"description" binding:"omitempty,min=1,max=500"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority" binding:"omitempty,task_priority"`
	Status      *string    `json:"status" binding:"omitempty,task_status"`
	Notes       *string    `json:"notes" binding:"omitempty,max=2000"`
}

// taskListQuery binds the task list's query parameters.
type taskListQuery struct {
	pagination.PageRequest
	Query    string `form:"query"`
	Priority string `form:"priority" binding:"omitempty,task_priority"`
	Status   string `form:"status" binding:"omitempty,task_status"`
	ClientID *uint  `form:"clientId"`
}

// ListTasks returns a page of tasks
// @Summary     List tasks
// @Description List tasks with filters and pagination, soonest due first
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       query query string false "Search by description or client name"
// @Param       priority query string false "Filter by priority"
// @Param       status query string false "Filter by status"
// @Param       clientId query int false "Filter by client"
// @Param       page query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.TaskView]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q taskListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TaskFilter{
		Query:    q.Query,
		Priority: q.Priority,
		Status:   q.Status,
		ClientID: q.ClientID,
	}

	result, err := h.taskService.ListTasks(filter, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)

	h.auditService.Log(auditEntry(c, userID, "VIEW", "task", "", "Viewed task list"))
}

// GetTask returns one task
// @Summary     Get task
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     200 {object} services.TaskView
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)

	entry := auditEntry(c, userID, "VIEW", "task", strconv.FormatUint(uint64(id), 10), "Viewed task: "+task.Description)
	entry.ClientID = &task.ClientID
	h.auditService.Log(entry)
}

// CreateTask creates a task
// @Summary     Create task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTaskRequest true "Task details"
// @Success     201 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	task, err := h.taskService.CreateTask(userID, services.TaskInput{
		ClientID:     req.ClientID,
		AssignedToID: req.AssignedToID,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)

	entry := auditEntry(c, userID, "CREATE", "task", strconv.FormatUint(uint64(task.ID), 10), "Created task: "+task.Description)
	entry.ClientID = &task.ClientID
	h.auditService.Log(entry)
}

// UpdateTask applies a partial task update
// @Summary     Update task
// @Description Update task fields. Setting status to completed is rejected; use the complete endpoint.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Param       request body UpdateTaskRequest true "Fields to update"
// @Success     200 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input or reserved status"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	task, err := h.taskService.UpdateTask(id, services.TaskUpdate{
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)

	entry := auditEntry(c, userID, "UPDATE", "task", strconv.FormatUint(uint64(id), 10), "Updated task: "+task.Description)
	entry.ClientID = &task.ClientID
	h.auditService.Log(entry)
}

// CompleteTask marks a task completed
// @Summary     Complete task
// @Description Mark a task completed, stamping completion time and user
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     200 {object} models.Task
// @Failure     404 {object} ErrorResponse "Task not found"
// @Failure     409 {object} ErrorResponse "Task already completed"
// @Router      /tasks/{id}/complete [patch]
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.CompleteTask(id, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)

	entry := auditEntry(c, userID, "COMPLETE", "task", strconv.FormatUint(uint64(id), 10), "Completed task: "+task.Description)
	entry.ClientID = &task.ClientID
	h.auditService.Log(entry)
}

// DeleteTask removes a task
// @Summary     Delete task
// @Tags        tasks
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)

	h.auditService.Log(auditEntry(c, userID, "DELETE", "task", strconv.FormatUint(uint64(id), 10), "Deleted task"))
}
