package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/models"
)

// Compliance percentage tiers.
const (
	complianceSuccessFloor = 90
	complianceWarningFloor = 80
)

// complianceService computes compliance scores from stored metrics.
type complianceService struct {
	db *gorm.DB
}

// NewComplianceService creates a new ComplianceServicer.
func NewComplianceService(db *gorm.DB) ComplianceServicer {
	return &complianceService{db: db}
}

// compliancePercentage is score over target, rounded to a whole percent.
// A zero target counts as fully met.
func compliancePercentage(score, target int) int {
	if target == 0 {
		return 100
	}
	return int(math.Round(float64(score) / float64(target) * 100))
}

// complianceTier buckets a percentage: success at 90 and above, warning at
// 80 and above, error below that.
func complianceTier(percentage int) string {
	switch {
	case percentage >= complianceSuccessFloor:
		return "success"
	case percentage >= complianceWarningFloor:
		return "warning"
	default:
		return "error"
	}
}

// GetOverview returns every compliance metric with its tier, the overall
// weighted score, and an alert pointing at the weakest metric when any
// metric is below the warning floor.
func (s *complianceService) GetOverview() (*ComplianceOverview, error) {
	var metrics []models.ComplianceMetric
	if err := s.db.Order("category ASC, name ASC").Find(&metrics).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overview := &ComplianceOverview{
		Metrics: make([]ComplianceMetricView, len(metrics)),
	}

	var scoreSum, targetSum int
	var weakest *ComplianceMetricView

	for i, metric := range metrics {
		pct := compliancePercentage(metric.Score, metric.TargetScore)
		view := ComplianceMetricView{
			ComplianceMetric: metric,
			Percentage:       pct,
			Tier:             complianceTier(pct),
		}
		overview.Metrics[i] = view

		scoreSum += metric.Score
		targetSum += metric.TargetScore

		if weakest == nil || pct < weakest.Percentage {
			weakest = &overview.Metrics[i]
		}
	}

	overview.OverallScore = compliancePercentage(scoreSum, targetSum)

	if weakest != nil && weakest.Percentage < complianceWarningFloor {
		overview.Alert = &ComplianceAlert{
			MetricName: weakest.Name,
			Percentage: weakest.Percentage,
			Message:    fmt.Sprintf("%s is below target at %d%%", weakest.Name, weakest.Percentage),
		}
	}

	return overview, nil
}
