package services

import (
	"testing"

	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/testutil"
)

func TestCreateWebsite(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)

		website, err := svc.CreateWebsite(user.ID, WebsiteInput{
			Name: "Acme Site",
			URL:  "https://www.acme.test",
		})
		testutil.AssertNoError(t, err)

		if website.ID == 0 {
			t.Fatal("expected non-zero website ID")
		}
		if website.UserID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, website.UserID)
		}
		if website.SEOScore != 0 {
			t.Errorf("expected initial SEO score 0, got %d", website.SEOScore)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateWebsite(user.ID, WebsiteInput{Name: "No URL"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListWebsites(t *testing.T) {
	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)

		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestWebsite(t, db, owner.ID)
		testutil.CreateTestWebsite(t, db, owner.ID)
		testutil.CreateTestWebsite(t, db, other.ID)

		result, err := svc.ListWebsites(owner.ID, "", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 websites for owner, got %d", result.TotalItems)
		}
	})

	t.Run("search_matches_url", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)

		user := testutil.CreateTestUser(t, db)
		match := testutil.CreateTestWebsite(t, db, user.ID)
		db.Model(match).Update("url", "https://www.acme.test")
		testutil.CreateTestWebsite(t, db, user.ID)

		result, err := svc.ListWebsites(user.ID, "acme", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 match, got %d", result.TotalItems)
		}
		if result.Data[0].ID != match.ID {
			t.Errorf("expected website %d, got %d", match.ID, result.Data[0].ID)
		}
	})
}

func TestGetWebsite(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestWebsite(t, db, user.ID)

		website, err := svc.GetWebsite(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if website.ID != created.ID {
			t.Errorf("expected website %d, got %d", created.ID, website.ID)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		website := testutil.CreateTestWebsite(t, db, owner.ID)

		_, err := svc.GetWebsite(intruder.ID, website.ID)
		testutil.AssertAppError(t, err, "WEBSITE_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetWebsite(user.ID, 99999)
		testutil.AssertAppError(t, err, "WEBSITE_NOT_FOUND")
	})
}

func TestUpdateWebsite(t *testing.T) {
	t.Run("replaces_name_and_url", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)
		website := testutil.CreateTestWebsite(t, db, user.ID)

		updated, err := svc.UpdateWebsite(user.ID, website.ID, WebsiteInput{
			Name: "Renamed Site",
			URL:  "https://renamed.test",
		})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed Site" || updated.URL != "https://renamed.test" {
			t.Errorf("unexpected update result: %s %s", updated.Name, updated.URL)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		website := testutil.CreateTestWebsite(t, db, owner.ID)

		_, err := svc.UpdateWebsite(intruder.ID, website.ID, WebsiteInput{Name: "Hacked", URL: "https://x.test"})
		testutil.AssertAppError(t, err, "WEBSITE_NOT_FOUND")
	})
}

func TestDeleteWebsite(t *testing.T) {
	t.Run("deletes_own_site", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)
		website := testutil.CreateTestWebsite(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteWebsite(user.ID, website.ID))

		var count int64
		db.Model(&models.Website{}).Where("id = ?", website.ID).Count(&count)
		if count != 0 {
			t.Error("expected website to be deleted")
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		website := testutil.CreateTestWebsite(t, db, owner.ID)

		err := svc.DeleteWebsite(intruder.ID, website.ID)
		testutil.AssertAppError(t, err, "WEBSITE_NOT_FOUND")
	})
}

func TestGetDashboard(t *testing.T) {
	t.Run("aggregates_user_scope_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		site := testutil.CreateTestWebsite(t, db, user.ID)
		db.Model(site).Update("seo_score", 80)
		site2 := testutil.CreateTestWebsite(t, db, user.ID)
		db.Model(site2).Update("seo_score", 60)
		foreign := testutil.CreateTestWebsite(t, db, other.ID)

		testutil.CreateTestKeyword(t, db, site.ID, 5)
		testutil.CreateTestKeyword(t, db, site.ID, 0)
		testutil.CreateTestKeyword(t, db, foreign.ID, 1)

		testutil.CreateTestBacklink(t, db, site.ID, 10)
		testutil.CreateTestBacklink(t, db, site.ID, 80)

		testutil.CreateTestOnPageOptimization(t, db, site.ID, "https://site.test/page")
		applied := testutil.CreateTestOnPageOptimization(t, db, site.ID, "https://site.test/other")
		db.Model(applied).Update("status", models.OptimizationStatusApplied)

		testutil.CreateTestSEOAudit(t, db, site.ID, 80)

		dashboard, err := svc.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)

		if dashboard.TotalWebsites != 2 {
			t.Errorf("expected 2 websites, got %d", dashboard.TotalWebsites)
		}
		if dashboard.AverageSEOScore != 70 {
			t.Errorf("expected average score 70, got %f", dashboard.AverageSEOScore)
		}
		if dashboard.TotalKeywords != 2 {
			t.Errorf("expected 2 keywords, got %d", dashboard.TotalKeywords)
		}
		if dashboard.RankingKeywords != 1 {
			t.Errorf("expected 1 ranking keyword, got %d", dashboard.RankingKeywords)
		}
		if dashboard.TotalBacklinks != 2 {
			t.Errorf("expected 2 backlinks, got %d", dashboard.TotalBacklinks)
		}
		if dashboard.ToxicBacklinks != 1 {
			t.Errorf("expected 1 toxic backlink, got %d", dashboard.ToxicBacklinks)
		}
		if dashboard.PendingSuggestions != 1 {
			t.Errorf("expected 1 pending suggestion, got %d", dashboard.PendingSuggestions)
		}
		if len(dashboard.RecentAudits) != 1 {
			t.Errorf("expected 1 recent audit, got %d", len(dashboard.RecentAudits))
		}
	})

	t.Run("empty_dashboard", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWebsiteService(db)
		user := testutil.CreateTestUser(t, db)

		dashboard, err := svc.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)

		if dashboard.TotalWebsites != 0 || dashboard.AverageSEOScore != 0 {
			t.Errorf("expected empty dashboard, got %+v", dashboard)
		}
	})
}
