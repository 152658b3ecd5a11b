package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
)

// metricsService computes the main dashboard counters.
type metricsService struct {
	db *gorm.DB
}

// NewMetricsService creates a new MetricsServicer.
func NewMetricsService(db *gorm.DB) MetricsServicer {
	return &metricsService{db: db}
}

// ratioPercent is numerator over denominator as a rounded whole percent.
func ratioPercent(numerator, denominator int64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// GetDashboardMetrics computes the four dashboard counters and their
// trends: total clients with the share added in the last 30 days, pending
// tasks with the share created in the last 7 days, tasks due today with
// the high-priority count, and the weighted compliance score.
func (s *metricsService) GetDashboardMetrics() (*DashboardMetrics, error) {
	now := time.Now()

	var activeClients int64
	if err := s.db.Model(&models.Client{}).Count(&activeClients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var newClients int64
	lastMonth := now.AddDate(0, -1, 0)
	err := s.db.Model(&models.Client{}).
		Where("created_at >= ?", lastMonth).
		Count(&newClients).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	clientDirection := "neutral"
	if newClients > 0 {
		clientDirection = "up"
	}

	var pendingTasks int64
	err = s.db.Model(&models.Task{}).
		Where("status = ? AND completed_at IS NULL", models.TaskStatusPending).
		Count(&pendingTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var newPendingTasks int64
	lastWeek := now.AddDate(0, 0, -7)
	err = s.db.Model(&models.Task{}).
		Where("status = ? AND created_at >= ?", models.TaskStatusPending, lastWeek).
		Count(&newPendingTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	pendingBase := pendingTasks
	if pendingBase == 0 {
		pendingBase = 1
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	dueToday := s.db.Model(&models.Task{}).
		Where("due_date >= ? AND due_date < ?", today, tomorrow).
		Where("completed_at IS NULL")

	var followUpsToday int64
	if err := dueToday.Count(&followUpsToday).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var highPriorityToday int64
	err = s.db.Model(&models.Task{}).
		Where("due_date >= ? AND due_date < ?", today, tomorrow).
		Where("completed_at IS NULL").
		Where("priority = ?", models.TaskPriorityHigh).
		Count(&highPriorityToday).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type complianceSums struct {
		TotalScore  int64
		TotalTarget int64
	}
	var sums complianceSums
	err = s.db.Model(&models.ComplianceMetric{}).
		Select("COALESCE(SUM(score), 0) AS total_score, COALESCE(SUM(target_score), 0) AS total_target").
		Find(&sums).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &DashboardMetrics{
		ActiveClients: CountMetric{
			Value: activeClients,
			Trend: MetricTrend{
				Value:     fmt.Sprintf("%d%%", ratioPercent(newClients, activeClients)),
				Direction: clientDirection,
				Label:     "from last month",
			},
		},
		PendingTasks: CountMetric{
			Value: pendingTasks,
			Trend: MetricTrend{
				Value:     fmt.Sprintf("%d%%", ratioPercent(newPendingTasks, pendingBase)),
				Direction: "up",
				Label:     "from last week",
			},
		},
		FollowUpsToday: CountMetric{
			Value: followUpsToday,
			Trend: MetricTrend{
				Value:     fmt.Sprintf("%d", highPriorityToday),
				Direction: "neutral",
				Label:     "high priority",
			},
		},
		ComplianceScore: ScoreMetric{
			Value: fmt.Sprintf("%d%%", ratioPercent(sums.TotalScore, sums.TotalTarget)),
			Trend: MetricTrend{
				Value:     "All audit logs complete",
				Direction: "up",
			},
		},
	}, nil
}
