package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// Default settings served when a category has never been written.
var defaultSettings = map[string]map[string]json.RawMessage{
	"general": {
		"companyName":             json.RawMessage(`"Your Company"`),
		"emailAddress":            json.RawMessage(`"contact@example.com"`),
		"notificationPreferences": json.RawMessage(`{"email":true,"inApp":true}`),
		"defaultTaskReminder":     json.RawMessage(`"1day"`),
	},
	"audit": {
		"retentionPeriod":       json.RawMessage(`"90days"`),
		"logTaskCompletions":    json.RawMessage(`true`),
		"logClientInteractions": json.RawMessage(`true`),
		"logDataExports":        json.RawMessage(`true`),
		"enableDetailedLogs":    json.RawMessage(`true`),
	},
}

// SettingsHandler handles application settings.
type SettingsHandler struct {
	settingsService services.SettingsServicer
	auditService    services.AuditServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer, auditService services.AuditServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auditService: auditService}
}

// categoryParam validates the settings category path parameter.
type categoryParam struct {
	Category string `uri:"category" binding:"required,setting_category"`
}

// GetSettings returns all settings grouped by category
// @Summary     Get settings
// @Description Get all settings grouped by category, with defaults for categories never written
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]map[string]json.RawMessage
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	for category, defaults := range defaultSettings {
		if len(settings[category]) == 0 {
			settings[category] = defaults
		}
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings upserts the keys of one settings category
// @Summary     Update settings category
// @Description Upsert the provided keys in one category; other keys are untouched
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Settings category" Enums(general, audit, notification)
// @Param       request body map[string]json.RawMessage true "Settings to upsert"
// @Success     200 {object} map[string]json.RawMessage
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings/{category} [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var param categoryParam
	if err := c.ShouldBindUri(&param); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var values map[string]json.RawMessage
	if err := c.ShouldBindJSON(&values); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.settingsService.UpdateCategory(param.Category, values, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)

	h.auditService.Log(auditEntry(c, userID, "UPDATE", "settings", param.Category, "Updated "+param.Category+" settings"))
}
