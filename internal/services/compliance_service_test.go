package services

import (
	"testing"

	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/testutil"
)

func TestComplianceOverview(t *testing.T) {
	t.Run("computes_tiers_and_overall_score", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComplianceService(db)

		testutil.CreateTestComplianceMetric(t, db, models.ComplianceCategoryAudit, 95)
		testutil.CreateTestComplianceMetric(t, db, models.ComplianceCategoryDocumentation, 85)
		testutil.CreateTestComplianceMetric(t, db, models.ComplianceCategoryRegulatory, 90)

		overview, err := svc.GetOverview()
		testutil.AssertNoError(t, err)

		if len(overview.Metrics) != 3 {
			t.Fatalf("expected 3 metrics, got %d", len(overview.Metrics))
		}
		// (95 + 85 + 90) / 300 = 90%
		if overview.OverallScore != 90 {
			t.Errorf("expected overall score 90, got %d", overview.OverallScore)
		}

		tiers := make(map[int]string)
		for _, m := range overview.Metrics {
			tiers[m.Score] = m.Tier
		}
		if tiers[95] != "success" {
			t.Errorf("expected 95 to be success, got %s", tiers[95])
		}
		if tiers[85] != "warning" {
			t.Errorf("expected 85 to be warning, got %s", tiers[85])
		}
		if tiers[90] != "success" {
			t.Errorf("expected 90 to be success, got %s", tiers[90])
		}
		if overview.Alert != nil {
			t.Errorf("expected no alert above the warning floor, got %+v", overview.Alert)
		}
	})

	t.Run("alerts_on_weakest_metric_below_warning_floor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComplianceService(db)

		testutil.CreateTestComplianceMetric(t, db, models.ComplianceCategoryAudit, 95)
		weakest := testutil.CreateTestComplianceMetric(t, db, models.ComplianceCategoryRegulatory, 60)

		overview, err := svc.GetOverview()
		testutil.AssertNoError(t, err)

		if overview.Alert == nil {
			t.Fatal("expected an alert for a metric below 80%")
		}
		if overview.Alert.MetricName != weakest.Name {
			t.Errorf("expected alert on %s, got %s", weakest.Name, overview.Alert.MetricName)
		}
		if overview.Alert.Percentage != 60 {
			t.Errorf("expected alert percentage 60, got %d", overview.Alert.Percentage)
		}
	})

	t.Run("empty_metrics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComplianceService(db)

		overview, err := svc.GetOverview()
		testutil.AssertNoError(t, err)

		if len(overview.Metrics) != 0 {
			t.Errorf("expected no metrics, got %d", len(overview.Metrics))
		}
		// Zero target counts as fully met.
		if overview.OverallScore != 100 {
			t.Errorf("expected overall score 100 with no metrics, got %d", overview.OverallScore)
		}
		if overview.Alert != nil {
			t.Error("expected no alert with no metrics")
		}
	})
}

func TestComplianceTier(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{100, "success"},
		{90, "success"},
		{89, "warning"},
		{80, "warning"},
		{79, "error"},
		{0, "error"},
	}
	for _, tc := range cases {
		if got := complianceTier(tc.pct); got != tc.want {
			t.Errorf("complianceTier(%d) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}
