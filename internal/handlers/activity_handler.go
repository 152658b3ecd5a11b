package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// ActivityHandler handles the activity feed.
type ActivityHandler struct {
	activityService services.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CreateActivityRequest represents the payload for appending an activity.
type CreateActivityRequest struct {
	ClientID uint   `json:"clientId" binding:"required"`
	Type     string `json:"type" binding:"required,activity_type"`
	Message  string `json:"message" binding:"required,min=1,max=500"`
	Metadata string `json:"metadata" binding:"max=2000"`
}

// activityListQuery binds the activity list's query parameters.
type activityListQuery struct {
	pagination.PageRequest
	ClientID *uint  `form:"clientId"`
	Type     string `form:"type" binding:"omitempty,activity_type"`
}

// ListActivities returns a page of activities
// @Summary     List activities
// @Description List activities with user and client names, newest first
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Param       clientId query int false "Filter by client"
// @Param       type query string false "Filter by activity type"
// @Param       page query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.ActivityView]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var q activityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.activityService.ListActivities(services.ActivityFilter{
		ClientID: q.ClientID,
		Type:     q.Type,
	}, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateActivity appends an activity to a client's feed
// @Summary     Record activity
// @Tags        activities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateActivityRequest true "Activity details"
// @Success     201 {object} models.Activity
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /activities [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	activity, err := h.activityService.AddActivity(req.ClientID, userID, req.Type, req.Message, req.Metadata)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}
