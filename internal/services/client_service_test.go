package services

import (
	"testing"
	"time"

	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/testutil"
)

func TestCreateClient(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		client, err := svc.CreateClient(ClientInput{
			Name:         "Acme Corp",
			Industry:     "Manufacturing",
			ContactName:  "Jane Doe",
			ContactEmail: "jane@acme.test",
		})
		testutil.AssertNoError(t, err)

		if client.ID == 0 {
			t.Fatal("expected non-zero client ID")
		}
		if client.Name != "Acme Corp" {
			t.Errorf("expected name Acme Corp, got %s", client.Name)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		_, err := svc.CreateClient(ClientInput{Industry: "Finance"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListClients(t *testing.T) {
	t.Run("enriches_with_pending_tasks_and_last_activity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClientWithName(t, db, "Acme Corp")

		testutil.CreateTestTask(t, db, client.ID, user.ID)
		completed := testutil.CreateTestTask(t, db, client.ID, user.ID)
		now := time.Now()
		db.Model(completed).Updates(map[string]interface{}{
			"status":          models.TaskStatusCompleted,
			"completed_at":    now,
			"completed_by_id": user.ID,
		})

		latest := testutil.CreateTestActivityAt(t, db, client.ID, user.ID, models.ActivityClientReply, now)
		testutil.CreateTestActivityAt(t, db, client.ID, user.ID, models.ActivityApproval, now.Add(-time.Hour))

		result, err := svc.ListClients("", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 client, got %d", result.TotalItems)
		}
		summary := result.Data[0]
		if summary.Initials != "AC" {
			t.Errorf("expected initials AC, got %s", summary.Initials)
		}
		if summary.PendingTasks != 1 {
			t.Errorf("expected 1 pending task, got %d", summary.PendingTasks)
		}
		if summary.LastActivity == nil {
			t.Fatal("expected last activity to be set")
		}
		if summary.LastActivity.Unix() != latest.Timestamp.Unix() {
			t.Errorf("expected last activity %v, got %v", latest.Timestamp, summary.LastActivity)
		}
	})

	t.Run("search_matches_name_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		testutil.CreateTestClientWithName(t, db, "Acme Corp")
		testutil.CreateTestClientWithName(t, db, "Globex Financial")

		result, err := svc.ListClients("ACME", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 match, got %d", result.TotalItems)
		}
		if result.Data[0].Name != "Acme Corp" {
			t.Errorf("expected Acme Corp, got %s", result.Data[0].Name)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		for i := 0; i < 15; i++ {
			testutil.CreateTestClient(t, db)
		}

		result, err := svc.ListClients("", pagination.PageRequest{Page: 2, PageSize: 10})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 15 {
			t.Errorf("expected 15 total, got %d", result.TotalItems)
		}
		if len(result.Data) != 5 {
			t.Errorf("expected 5 on page 2, got %d", len(result.Data))
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
	})
}

func TestListClientOptions(t *testing.T) {
	t.Run("returns_id_name_pairs_sorted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		testutil.CreateTestClientWithName(t, db, "Zenith Ltd")
		testutil.CreateTestClientWithName(t, db, "Acme Corp")

		options, err := svc.ListClientOptions()
		testutil.AssertNoError(t, err)

		if len(options) != 2 {
			t.Fatalf("expected 2 options, got %d", len(options))
		}
		if options[0].Name != "Acme Corp" || options[1].Name != "Zenith Ltd" {
			t.Errorf("expected options sorted by name, got %v", options)
		}
	})
}

func TestGetClient(t *testing.T) {
	t.Run("found_with_counts_and_recent_activity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClientWithName(t, db, "Acme Corp")
		testutil.CreateTestTask(t, db, client.ID, user.ID)
		testutil.CreateTestActivity(t, db, client.ID, user.ID, models.ActivityClientReply)

		detail, err := svc.GetClient(client.ID)
		testutil.AssertNoError(t, err)

		if detail.TotalTasks != 1 {
			t.Errorf("expected 1 total task, got %d", detail.TotalTasks)
		}
		if detail.PendingTasks != 1 {
			t.Errorf("expected 1 pending task, got %d", detail.PendingTasks)
		}
		if len(detail.RecentActivities) != 1 {
			t.Fatalf("expected 1 recent activity, got %d", len(detail.RecentActivities))
		}
		if detail.RecentActivities[0].User.FullName == "" {
			t.Error("expected activity user name to be joined")
		}
		if detail.RecentActivities[0].Client.Name != "Acme Corp" {
			t.Errorf("expected activity client name Acme Corp, got %s", detail.RecentActivities[0].Client.Name)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		_, err := svc.GetClient(99999)
		testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
	})
}

func TestUpdateClient(t *testing.T) {
	t.Run("replaces_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)
		client := testutil.CreateTestClient(t, db)

		updated, err := svc.UpdateClient(client.ID, ClientInput{
			Name:     "Renamed Inc",
			Industry: "Retail",
		})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed Inc" {
			t.Errorf("expected name Renamed Inc, got %s", updated.Name)
		}
		if updated.Industry != "Retail" {
			t.Errorf("expected industry Retail, got %s", updated.Industry)
		}
		// Replacement semantics: omitted fields are cleared.
		if updated.ContactName != "" {
			t.Errorf("expected contact name cleared, got %s", updated.ContactName)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		_, err := svc.UpdateClient(99999, ClientInput{Name: "Ghost"})
		testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)
		client := testutil.CreateTestClient(t, db)

		_, err := svc.UpdateClient(client.ID, ClientInput{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteClient(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)
		client := testutil.CreateTestClient(t, db)

		testutil.AssertNoError(t, svc.DeleteClient(client.ID))

		var count int64
		db.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count)
		if count != 0 {
			t.Error("expected client to be deleted")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		err := svc.DeleteClient(99999)
		testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
	})
}

func TestClientInteractions(t *testing.T) {
	t.Run("create_and_list_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClient(t, db)

		older, err := svc.CreateInteraction(client.ID, user.ID, InteractionInput{
			Type:            "call",
			Title:           "Intro call",
			InteractionDate: time.Now().Add(-48 * time.Hour),
		})
		testutil.AssertNoError(t, err)

		newer, err := svc.CreateInteraction(client.ID, user.ID, InteractionInput{
			Type:            "email",
			Title:           "Follow-up email",
			InteractionDate: time.Now(),
		})
		testutil.AssertNoError(t, err)

		result, err := svc.ListInteractions(client.ID, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 interactions, got %d", result.TotalItems)
		}
		if result.Data[0].ID != newer.ID || result.Data[1].ID != older.ID {
			t.Error("expected interactions ordered newest first")
		}
	})

	t.Run("defaults_interaction_date_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClient(t, db)

		interaction, err := svc.CreateInteraction(client.ID, user.ID, InteractionInput{
			Type:  "note",
			Title: "Quick note",
		})
		testutil.AssertNoError(t, err)

		if interaction.InteractionDate.IsZero() {
			t.Error("expected interaction date to default to now")
		}
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)

		user := testutil.CreateTestUser(t, db)
		client := testutil.CreateTestClient(t, db)

		_, err := svc.CreateInteraction(client.ID, user.ID, InteractionInput{Type: "call"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewClientService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateInteraction(99999, user.ID, InteractionInput{Type: "call", Title: "Ghost"})
		testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
	})
}

func TestInitialsFor(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Corp", "AC"},
		{"Globex Financial Holdings", "GF"},
		{"solo", "S"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := initialsFor(tc.name); got != tc.want {
			t.Errorf("initialsFor(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
