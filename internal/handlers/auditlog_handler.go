package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// exportPageSize caps how many rows a CSV export pulls.
const exportPageSize = 1000

// AuditLogHandler handles audit log queries and exports.
type AuditLogHandler struct {
	auditService services.AuditServicer
}

// NewAuditLogHandler creates a new AuditLogHandler.
func NewAuditLogHandler(auditService services.AuditServicer) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// auditLogQuery binds the audit log list's query parameters.
type auditLogQuery struct {
	pagination.PageRequest
	Query        string     `form:"query"`
	Action       string     `form:"action"`
	ResourceType string     `form:"resourceType"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
}

func (q auditLogQuery) filter() services.AuditLogFilter {
	return services.AuditLogFilter{
		Query:        q.Query,
		Action:       q.Action,
		ResourceType: q.ResourceType,
		From:         q.From,
		To:           q.To,
	}
}

// ListAuditLogs returns a page of audit logs
// @Summary     List audit logs
// @Description List audit logs with search and pagination, newest first. Viewing audit logs is not itself audited.
// @Tags        audit-logs
// @Produce     json
// @Security    BearerAuth
// @Param       query query string false "Search by action, details, or user name"
// @Param       action query string false "Filter by action"
// @Param       resourceType query string false "Filter by resource type"
// @Param       page query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.AuditLogView]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /audit-logs [get]
func (h *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	var q auditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.List(q.filter(), q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportAuditLogs streams the newest audit logs as CSV
// @Summary     Export audit logs
// @Description Export the newest audit logs as a CSV attachment
// @Tags        audit-logs
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV content"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /audit-logs/export [get]
func (h *AuditLogHandler) ExportAuditLogs(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q auditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	page := pagination.PageRequest{Page: 1, PageSize: exportPageSize}
	result, err := h.auditService.List(q.filter(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=audit-logs.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "Action", "Resource Type", "Resource ID", "Details", "User", "Client", "Timestamp"})
	for _, log := range result.Data {
		clientName := ""
		if log.Client != nil {
			clientName = log.Client.Name
		}
		_ = w.Write([]string{
			strconv.FormatUint(uint64(log.ID), 10),
			log.Action,
			log.ResourceType,
			log.ResourceID,
			log.Details,
			log.User.FullName,
			clientName,
			log.Timestamp.Format(time.RFC3339),
		})
	}
	w.Flush()

	h.auditService.Log(auditEntry(c, userID, "EXPORT", "audit_log", "", "Exported audit logs to CSV"))
}
