package services

import (
	"testing"
	"time"

	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("log_then_flush_persists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		defer svc.Close()

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClient(t, db)

		svc.Log(AuditEntry{
			UserID:       user.ID,
			ClientID:     &client.ID,
			Action:       "CREATE",
			ResourceType: "client",
			ResourceID:   "1",
			Details:      "Created client",
			IPAddress:    "127.0.0.1",
		})
		svc.Flush()

		var logs []models.AuditLog
		testutil.AssertNoError(t, db.Find(&logs).Error)
		if len(logs) != 1 {
			t.Fatalf("expected 1 audit log, got %d", len(logs))
		}
		if logs[0].Action != "CREATE" {
			t.Errorf("expected action CREATE, got %s", logs[0].Action)
		}
		if logs[0].ClientID == nil || *logs[0].ClientID != client.ID {
			t.Errorf("expected client ID %d, got %v", client.ID, logs[0].ClientID)
		}
		if logs[0].Timestamp.IsZero() {
			t.Error("expected timestamp to be stamped")
		}
	})

	t.Run("close_drains_queue", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		user := testutil.CreateTestUser(t, db)
		for i := 0; i < 20; i++ {
			svc.Log(AuditEntry{
				UserID:       user.ID,
				Action:       "VIEW",
				ResourceType: "report",
				Details:      "Viewed report",
			})
		}
		svc.Close()

		var count int64
		db.Model(&models.AuditLog{}).Count(&count)
		if count != 20 {
			t.Errorf("expected 20 audit logs after close, got %d", count)
		}
	})
}

func TestAuditList(t *testing.T) {
	t.Run("joins_user_and_client_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		defer svc.Close()

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClientWithName(t, db, "Acme Corp")

		old := models.AuditLog{
			UserID: user.ID, ClientID: &client.ID,
			Action: "CREATE", ResourceType: "client", Details: "Created client",
			Timestamp: time.Now().Add(-2 * time.Hour),
		}
		recent := models.AuditLog{
			UserID: user.ID,
			Action: "EXPORT", ResourceType: "audit_logs", Details: "Exported logs",
			Timestamp: time.Now(),
		}
		testutil.AssertNoError(t, db.Create(&old).Error)
		testutil.AssertNoError(t, db.Create(&recent).Error)

		result, err := svc.List(AuditLogFilter{}, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 logs, got %d", result.TotalItems)
		}
		if result.Data[0].ID != recent.ID {
			t.Error("expected logs ordered newest first")
		}
		if result.Data[0].User.FullName != user.FullName {
			t.Errorf("expected joined user name %s, got %s", user.FullName, result.Data[0].User.FullName)
		}
		if result.Data[0].Client != nil {
			t.Error("expected nil client on log without client")
		}
		if result.Data[1].Client == nil || result.Data[1].Client.Name != "Acme Corp" {
			t.Errorf("expected joined client Acme Corp, got %v", result.Data[1].Client)
		}
	})

	t.Run("filters_by_action_and_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		defer svc.Close()

		user := testutil.CreateTestUser(t, db)

		inWindow := models.AuditLog{
			UserID: user.ID, Action: "UPDATE", ResourceType: "task",
			Details: "Updated task", Timestamp: time.Now().Add(-time.Hour),
		}
		outOfWindow := models.AuditLog{
			UserID: user.ID, Action: "UPDATE", ResourceType: "task",
			Details: "Updated task", Timestamp: time.Now().Add(-72 * time.Hour),
		}
		otherAction := models.AuditLog{
			UserID: user.ID, Action: "DELETE", ResourceType: "task",
			Details: "Deleted task", Timestamp: time.Now().Add(-time.Hour),
		}
		testutil.AssertNoError(t, db.Create(&inWindow).Error)
		testutil.AssertNoError(t, db.Create(&outOfWindow).Error)
		testutil.AssertNoError(t, db.Create(&otherAction).Error)

		from := time.Now().Add(-24 * time.Hour)
		to := time.Now()
		result, err := svc.List(AuditLogFilter{
			Action: "UPDATE",
			From:   &from,
			To:     &to,
		}, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 log, got %d", result.TotalItems)
		}
		if result.Data[0].ID != inWindow.ID {
			t.Errorf("expected log %d, got %d", inWindow.ID, result.Data[0].ID)
		}
	})

	t.Run("search_matches_details_and_user_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		defer svc.Close()

		user := testutil.CreateTestUser(t, db)

		match := models.AuditLog{
			UserID: user.ID, Action: "EXPORT", ResourceType: "report",
			Details: "Exported compliance report", Timestamp: time.Now(),
		}
		other := models.AuditLog{
			UserID: user.ID, Action: "VIEW", ResourceType: "client",
			Details: "Viewed client", Timestamp: time.Now(),
		}
		testutil.AssertNoError(t, db.Create(&match).Error)
		testutil.AssertNoError(t, db.Create(&other).Error)

		result, err := svc.List(AuditLogFilter{Query: "compliance"}, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 match, got %d", result.TotalItems)
		}
		if result.Data[0].ID != match.ID {
			t.Errorf("expected log %d, got %d", match.ID, result.Data[0].ID)
		}
	})

	t.Run("search_matches_client_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		defer svc.Close()

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClientWithName(t, db, "Acme Rockets")

		match := models.AuditLog{
			UserID: user.ID, ClientID: &client.ID,
			Action: "UPDATE", ResourceType: "client",
			Details: "Updated contact details", Timestamp: time.Now(),
		}
		noClient := models.AuditLog{
			UserID: user.ID, Action: "EXPORT", ResourceType: "report",
			Details: "Exported task report", Timestamp: time.Now(),
		}
		testutil.AssertNoError(t, db.Create(&match).Error)
		testutil.AssertNoError(t, db.Create(&noClient).Error)

		result, err := svc.List(AuditLogFilter{Query: "acme"}, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 match on client name, got %d", result.TotalItems)
		}
		if result.Data[0].ID != match.ID {
			t.Errorf("expected log %d, got %d", match.ID, result.Data[0].ID)
		}
	})
}
