package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GiaHeplBro/SEO/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		FullName: fmt.Sprintf("Test User %s", username),
		Email:    username + "@test.com",
		Role:     "user",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestClient creates a client with a unique name.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	return CreateTestClientWithName(t, db, fmt.Sprintf("Test Client %d", nextID()))
}

// CreateTestClientWithName creates a client with the given name.
func CreateTestClientWithName(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()

	client := &models.Client{
		Name:         name,
		Industry:     "Technology",
		ContactName:  "Test Contact",
		ContactEmail: fmt.Sprintf("contact%d@test.com", nextID()),
		ContactPhone: "+1-555-0100",
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestTask creates a pending task due in 24 hours.
func CreateTestTask(t *testing.T, db *gorm.DB, clientID, userID uint) *models.Task {
	t.Helper()
	return CreateTestTaskDue(t, db, clientID, userID, time.Now().Add(24*time.Hour))
}

// CreateTestTaskDue creates a pending medium-priority task with the given due date.
func CreateTestTaskDue(t *testing.T, db *gorm.DB, clientID, userID uint, dueDate time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		ClientID:     clientID,
		AssignedToID: userID,
		Description:  fmt.Sprintf("Test task %d", nextID()),
		DueDate:      dueDate,
		Priority:     models.TaskPriorityMedium,
		Status:       models.TaskStatusPending,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestActivity creates an activity of the given type stamped now.
func CreateTestActivity(t *testing.T, db *gorm.DB, clientID, userID uint, activityType string) *models.Activity {
	t.Helper()
	return CreateTestActivityAt(t, db, clientID, userID, activityType, time.Now())
}

// CreateTestActivityAt creates an activity with the given timestamp.
func CreateTestActivityAt(t *testing.T, db *gorm.DB, clientID, userID uint, activityType string, timestamp time.Time) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		ClientID:  clientID,
		UserID:    userID,
		Type:      activityType,
		Message:   fmt.Sprintf("Test activity %d", nextID()),
		Timestamp: timestamp,
	}
	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("failed to create test activity: %v", err)
	}
	return activity
}

// CreateTestComplianceMetric creates a metric in the given category with the given score.
func CreateTestComplianceMetric(t *testing.T, db *gorm.DB, category string, score int) *models.ComplianceMetric {
	t.Helper()

	metric := &models.ComplianceMetric{
		Name:        fmt.Sprintf("Test Metric %d", nextID()),
		Category:    category,
		Score:       score,
		TargetScore: 100,
		LastUpdated: time.Now(),
	}
	if err := db.Create(metric).Error; err != nil {
		t.Fatalf("failed to create test compliance metric: %v", err)
	}
	return metric
}

// CreateTestWebsite creates a website owned by the given user.
func CreateTestWebsite(t *testing.T, db *gorm.DB, userID uint) *models.Website {
	t.Helper()

	n := nextID()
	website := &models.Website{
		UserID: userID,
		Name:   fmt.Sprintf("Test Site %d", n),
		URL:    fmt.Sprintf("https://site%d.test.com", n),
	}
	if err := db.Create(website).Error; err != nil {
		t.Fatalf("failed to create test website: %v", err)
	}
	return website
}

// CreateTestKeyword creates a keyword with the given current ranking.
func CreateTestKeyword(t *testing.T, db *gorm.DB, websiteID uint, ranking int) *models.Keyword {
	t.Helper()

	keyword := &models.Keyword{
		WebsiteID:      websiteID,
		Keyword:        fmt.Sprintf("test keyword %d", nextID()),
		SearchVolume:   1000,
		Difficulty:     40,
		CurrentRanking: ranking,
	}
	if err := db.Create(keyword).Error; err != nil {
		t.Fatalf("failed to create test keyword: %v", err)
	}
	return keyword
}

// CreateTestBacklink creates an active backlink with the given toxicity score.
func CreateTestBacklink(t *testing.T, db *gorm.DB, websiteID uint, toxicityScore int) *models.Backlink {
	t.Helper()

	n := nextID()
	backlink := &models.Backlink{
		WebsiteID:       websiteID,
		SourceURL:       fmt.Sprintf("https://source%d.test.com/page", n),
		TargetURL:       fmt.Sprintf("https://site.test.com/target%d", n),
		AnchorText:      "test anchor",
		DomainAuthority: 40,
		ToxicityScore:   toxicityScore,
		Status:          models.BacklinkStatusActive,
		FirstDiscovered: time.Now().AddDate(0, -1, 0),
		LastChecked:     time.Now(),
	}
	if err := db.Create(backlink).Error; err != nil {
		t.Fatalf("failed to create test backlink: %v", err)
	}
	return backlink
}

// CreateTestSEOAudit creates an audit with the given score stamped now.
func CreateTestSEOAudit(t *testing.T, db *gorm.DB, websiteID uint, score int) *models.SEOAudit {
	t.Helper()

	audit := &models.SEOAudit{
		WebsiteID:    websiteID,
		OverallScore: score,
		Findings:     `{"issues":[]}`,
		AuditDate:    time.Now(),
	}
	if err := db.Create(audit).Error; err != nil {
		t.Fatalf("failed to create test SEO audit: %v", err)
	}
	return audit
}

// CreateTestOnPageOptimization creates a pending suggestion for the given page.
func CreateTestOnPageOptimization(t *testing.T, db *gorm.DB, websiteID uint, pageURL string) *models.OnPageOptimization {
	t.Helper()

	suggestion := &models.OnPageOptimization{
		WebsiteID:      websiteID,
		PageURL:        pageURL,
		Element:        "title",
		SuggestedValue: fmt.Sprintf("Suggested title %d", nextID()),
		Impact:         "high",
		Status:         models.OptimizationStatusPending,
	}
	if err := db.Create(suggestion).Error; err != nil {
		t.Fatalf("failed to create test on-page optimization: %v", err)
	}
	return suggestion
}

// CreateTestContentOptimization creates a stored content optimization.
func CreateTestContentOptimization(t *testing.T, db *gorm.DB, websiteID uint) *models.ContentOptimization {
	t.Helper()

	optimization := &models.ContentOptimization{
		WebsiteID:        websiteID,
		PageURL:          "https://site.test.com/page",
		TargetKeyword:    fmt.Sprintf("keyword %d", nextID()),
		OriginalContent:  "original content",
		OptimizedContent: "optimized content",
		SEOScore:         70,
		ReadabilityScore: 80,
		OptimizationDate: time.Now(),
	}
	if err := db.Create(optimization).Error; err != nil {
		t.Fatalf("failed to create test content optimization: %v", err)
	}
	return optimization
}
