package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// ReportHandler handles report generation and export.
type ReportHandler struct {
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, auditService services.AuditServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

// reportQuery binds the report endpoints' query parameters.
type reportQuery struct {
	Type      string `form:"type" binding:"required"`
	TimeRange string `form:"timeRange"`
}

// GetReport generates a report
// @Summary     Generate report
// @Description Generate one of the supported reports over the given time range
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       type query string true "Report type" Enums(client-activity, task-completion, client-distribution, compliance-score)
// @Param       timeRange query string false "Time range" Enums(last7, last30, last90, thisYear)
// @Success     200 {object} services.Report
// @Failure     400 {object} ErrorResponse "Unsupported report type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.reportService.GenerateReport(q.Type, q.TimeRange)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)

	h.auditService.Log(auditEntry(c, userID, "VIEW", "report", q.Type, "Viewed "+q.Type+" report"))
}

// ExportReport streams a report as CSV
// @Summary     Export report
// @Description Generate a report and stream it as a CSV attachment
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       type query string true "Report type"
// @Param       timeRange query string false "Time range"
// @Success     200 {string} string "CSV content"
// @Failure     400 {object} ErrorResponse "Unsupported report type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/export [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.reportService.GenerateReport(q.Type, q.TimeRange)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+q.Type+"-report.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Name", "Value"})
	for _, point := range report.Data {
		_ = w.Write([]string{point.Name, strconv.FormatInt(point.Value, 10)})
	}
	w.Flush()

	h.auditService.Log(auditEntry(c, userID, "EXPORT", "report", q.Type, "Exported "+q.Type+" report to CSV"))
}
