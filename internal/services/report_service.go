package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
)

// Report types.
const (
	ReportClientActivity     = "client-activity"
	ReportTaskCompletion     = "task-completion"
	ReportClientDistribution = "client-distribution"
	ReportComplianceScore    = "compliance-score"
)

// Time ranges for bucketed reports.
const (
	RangeLast7   = "last7"
	RangeLast30  = "last30"
	RangeLast90  = "last90"
	RangeAllYear = "thisYear"
)

// reportService generates the dashboard report series.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// dateRange resolves a time range name to its window and bucket format.
// Day ranges bucket by date, thisYear buckets by month. Unknown ranges
// fall back to the last 30 days.
func dateRange(timeRange string, now time.Time) (start, end time.Time, bucketFormat string) {
	end = now
	bucketFormat = "2006-01-02"

	switch timeRange {
	case RangeLast7:
		start = now.AddDate(0, 0, -7)
	case RangeLast30:
		start = now.AddDate(0, 0, -30)
	case RangeLast90:
		start = now.AddDate(0, 0, -90)
	case RangeAllYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		bucketFormat = "2006-01"
	default:
		start = now.AddDate(0, 0, -30)
	}
	return start, end, bucketFormat
}

// bucketCounts groups timestamps into formatted buckets and returns the
// series sorted by bucket name. Bucketing runs in Go so the same query
// works on every supported database.
func bucketCounts(timestamps []time.Time, bucketFormat string) []ReportPoint {
	counts := make(map[string]int64)
	for _, ts := range timestamps {
		counts[ts.Format(bucketFormat)]++
	}

	points := make([]ReportPoint, 0, len(counts))
	for name, value := range counts {
		points = append(points, ReportPoint{Name: name, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points
}

// GenerateReport dispatches to the named report type. Distribution and
// compliance reports ignore the time range.
func (s *reportService) GenerateReport(reportType, timeRange string) (*Report, error) {
	switch reportType {
	case ReportClientActivity:
		return s.clientActivityReport(timeRange)
	case ReportTaskCompletion:
		return s.taskCompletionReport(timeRange)
	case ReportClientDistribution:
		return s.clientDistributionReport()
	case ReportComplianceScore:
		return s.complianceScoreReport()
	default:
		return nil, apperrors.WithMessage(apperrors.ErrReportTypeNotSupported, "report type '"+reportType+"' is not supported")
	}
}

// clientActivityReport counts activities per bucket over the range.
func (s *reportService) clientActivityReport(timeRange string) (*Report, error) {
	start, end, bucketFormat := dateRange(timeRange, time.Now())

	var timestamps []time.Time
	err := s.db.Model(&models.Activity{}).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Pluck("timestamp", &timestamps).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &Report{
		Title: "Client Activity",
		Type:  ReportClientActivity,
		Data:  bucketCounts(timestamps, bucketFormat),
	}, nil
}

// taskCompletionReport counts completed tasks per bucket over the range
// and reports the completion rate: tasks completed in the window over
// tasks created in the window, which can exceed 100% when backlog tasks
// are closed.
func (s *reportService) taskCompletionReport(timeRange string) (*Report, error) {
	start, end, bucketFormat := dateRange(timeRange, time.Now())

	var completions []time.Time
	err := s.db.Model(&models.Task{}).
		Where("completed_at IS NOT NULL").
		Where("completed_at >= ? AND completed_at <= ?", start, end).
		Pluck("completed_at", &completions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var created int64
	err = s.db.Model(&models.Task{}).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Count(&created).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	completionRate := 0
	if created > 0 {
		completionRate = ratioPercent(int64(len(completions)), created)
	}

	return &Report{
		Title: "Task Completion",
		Type:  ReportTaskCompletion,
		Data:  bucketCounts(completions, bucketFormat),
		Metadata: map[string]interface{}{
			"completionRate": completionRate,
		},
	}, nil
}

// clientDistributionReport counts clients per industry, largest first.
func (s *reportService) clientDistributionReport() (*Report, error) {
	type row struct {
		Industry string
		Count    int64
	}
	var rows []row
	err := s.db.Model(&models.Client{}).
		Select("industry, COUNT(*) AS count").
		Group("industry").
		Order("count DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	points := make([]ReportPoint, len(rows))
	for i, r := range rows {
		points[i] = ReportPoint{Name: r.Industry, Value: r.Count}
	}

	return &Report{
		Title: "Client Distribution",
		Type:  ReportClientDistribution,
		Data:  points,
	}, nil
}

// complianceScoreReport reports each compliance metric's percentage of
// its target.
func (s *reportService) complianceScoreReport() (*Report, error) {
	var metrics []models.ComplianceMetric
	if err := s.db.Order("name ASC").Find(&metrics).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	points := make([]ReportPoint, len(metrics))
	for i, metric := range metrics {
		points[i] = ReportPoint{
			Name:  metric.Name,
			Value: int64(compliancePercentage(metric.Score, metric.TargetScore)),
		}
	}

	return &Report{
		Title: "Compliance Score",
		Type:  ReportComplianceScore,
		Data:  points,
	}, nil
}
