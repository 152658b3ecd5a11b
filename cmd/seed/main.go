package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/GiaHeplBro/SEO/internal/database"
	"github.com/GiaHeplBro/SEO/internal/logger"
	"github.com/GiaHeplBro/SEO/internal/models"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		logger.Get().Info("Database already seeded, nothing to do")
		return nil
	}

	if err := db.Transaction(seed); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Get().Info("Database seeded successfully")
	return nil
}

func seed(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Password: string(hash),
		FullName: "Sarah Johnson",
		Email:    "sarah.johnson@example.com",
		Role:     "admin",
	}
	agent := models.User{
		Username: "mchen",
		Password: string(hash),
		FullName: "Michael Chen",
		Email:    "michael.chen@example.com",
		Role:     "user",
	}
	if err := tx.Create(&admin).Error; err != nil {
		return err
	}
	if err := tx.Create(&agent).Error; err != nil {
		return err
	}

	clients := []models.Client{
		{
			Name:         "Acme Corp",
			Industry:     "Manufacturing",
			ContactName:  "Jane Doe",
			ContactEmail: "jane.doe@acme.example.com",
			ContactPhone: "+1-555-0101",
			Address:      "100 Industrial Way, Springfield",
		},
		{
			Name:         "Globex Financial",
			Industry:     "Finance",
			ContactName:  "Hank Scorpio",
			ContactEmail: "hank@globex.example.com",
			ContactPhone: "+1-555-0102",
		},
		{
			Name:         "Initech Solutions",
			Industry:     "Technology",
			ContactName:  "Bill Lumbergh",
			ContactEmail: "bill@initech.example.com",
			ContactPhone: "+1-555-0103",
			Notes:        "Prefers email over calls.",
		},
	}
	if err := tx.Create(&clients).Error; err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 17, 0, 0, 0, now.Location())

	tasks := []models.Task{
		{
			ClientID:     clients[0].ID,
			AssignedToID: admin.ID,
			Description:  "Quarterly portfolio review call",
			DueDate:      today,
			Priority:     models.TaskPriorityHigh,
			Status:       models.TaskStatusPending,
		},
		{
			ClientID:     clients[1].ID,
			AssignedToID: agent.ID,
			Description:  "Send updated compliance documentation",
			DueDate:      now.AddDate(0, 0, 3),
			Priority:     models.TaskPriorityMedium,
			Status:       models.TaskStatusPending,
		},
		{
			ClientID:     clients[2].ID,
			AssignedToID: agent.ID,
			Description:  "Schedule onboarding workshop",
			DueDate:      now.AddDate(0, 0, 7),
			Priority:     models.TaskPriorityNormal,
			Status:       models.TaskStatusScheduled,
		},
	}
	if err := tx.Create(&tasks).Error; err != nil {
		return err
	}

	activities := []models.Activity{
		{
			ClientID:  clients[0].ID,
			UserID:    admin.ID,
			Type:      models.ActivityMeetingScheduled,
			Message:   "New task scheduled: Quarterly portfolio review call",
			Timestamp: now.Add(-48 * time.Hour),
		},
		{
			ClientID:  clients[1].ID,
			UserID:    agent.ID,
			Type:      models.ActivityClientReply,
			Message:   "Client confirmed receipt of onboarding pack",
			Timestamp: now.Add(-24 * time.Hour),
		},
		{
			ClientID:  clients[2].ID,
			UserID:    agent.ID,
			Type:      models.ActivityInformationRequest,
			Message:   "Requested updated contact list from client",
			Timestamp: now.Add(-2 * time.Hour),
		},
	}
	if err := tx.Create(&activities).Error; err != nil {
		return err
	}

	metrics := []models.ComplianceMetric{
		{Name: "Audit Trail Completeness", Category: models.ComplianceCategoryAudit, Score: 95, TargetScore: 100, LastUpdated: now, UpdatedByID: &admin.ID},
		{Name: "Client Documentation", Category: models.ComplianceCategoryDocumentation, Score: 88, TargetScore: 100, LastUpdated: now, UpdatedByID: &admin.ID},
		{Name: "Regulatory Filings", Category: models.ComplianceCategoryRegulatory, Score: 92, TargetScore: 100, LastUpdated: now, UpdatedByID: &admin.ID},
	}
	if err := tx.Create(&metrics).Error; err != nil {
		return err
	}

	settings := []models.Setting{
		{Category: "general", Key: "companyName", Value: `"Your Company"`, UpdatedByID: admin.ID},
		{Category: "general", Key: "emailAddress", Value: `"contact@example.com"`, UpdatedByID: admin.ID},
		{Category: "audit", Key: "retentionPeriod", Value: `"90days"`, UpdatedByID: admin.ID},
	}
	if err := tx.Create(&settings).Error; err != nil {
		return err
	}

	website := models.Website{
		UserID:   admin.ID,
		Name:     "Acme Corp Site",
		URL:      "https://www.acme.example.com",
		SEOScore: 72,
	}
	if err := tx.Create(&website).Error; err != nil {
		return err
	}

	keywords := []models.Keyword{
		{WebsiteID: website.ID, Keyword: "industrial widgets", SearchVolume: 5400, Difficulty: 42, CurrentRanking: 8, PreviousRanking: 12},
		{WebsiteID: website.ID, Keyword: "widget manufacturing", SearchVolume: 2900, Difficulty: 35, CurrentRanking: 15, PreviousRanking: 14},
		{WebsiteID: website.ID, Keyword: "custom widget supplier", SearchVolume: 880, Difficulty: 28, CurrentRanking: 0, PreviousRanking: 0},
	}
	if err := tx.Create(&keywords).Error; err != nil {
		return err
	}

	backlinks := []models.Backlink{
		{
			WebsiteID:       website.ID,
			SourceURL:       "https://industry-news.example.com/acme-feature",
			TargetURL:       "https://www.acme.example.com/products",
			AnchorText:      "leading widget maker",
			DomainAuthority: 65,
			ToxicityScore:   5,
			Status:          models.BacklinkStatusActive,
			FirstDiscovered: now.AddDate(0, -2, 0),
			LastChecked:     now,
		},
		{
			WebsiteID:       website.ID,
			SourceURL:       "https://spam-directory.example.net/links",
			TargetURL:       "https://www.acme.example.com",
			AnchorText:      "click here",
			DomainAuthority: 8,
			ToxicityScore:   82,
			Status:          models.BacklinkStatusToxic,
			FirstDiscovered: now.AddDate(0, -1, 0),
			LastChecked:     now,
		},
	}
	if err := tx.Create(&backlinks).Error; err != nil {
		return err
	}

	suggestions := []models.OnPageOptimization{
		{
			WebsiteID:      website.ID,
			PageURL:        "https://www.acme.example.com/products",
			Element:        "title",
			CurrentValue:   "Products",
			SuggestedValue: "Industrial Widgets & Custom Manufacturing | Acme Corp",
			Impact:         "high",
			Status:         models.OptimizationStatusPending,
		},
		{
			WebsiteID:      website.ID,
			PageURL:        "https://www.acme.example.com",
			Element:        "meta-description",
			SuggestedValue: "Acme Corp manufactures industrial widgets with custom specifications and fast turnaround.",
			Impact:         "medium",
			Status:         models.OptimizationStatusPending,
		},
	}
	if err := tx.Create(&suggestions).Error; err != nil {
		return err
	}

	auditLogs := []models.AuditLog{
		{
			UserID:       admin.ID,
			ClientID:     &clients[0].ID,
			Action:       "CREATE",
			ResourceType: "client",
			ResourceID:   fmt.Sprint(clients[0].ID),
			Details:      "Created client: Acme Corp",
			Timestamp:    now.Add(-72 * time.Hour),
		},
		{
			UserID:       agent.ID,
			ClientID:     &clients[1].ID,
			Action:       "UPDATE",
			ResourceType: "client",
			ResourceID:   fmt.Sprint(clients[1].ID),
			Details:      "Updated client: Globex Financial",
			Timestamp:    now.Add(-24 * time.Hour),
		},
	}
	return tx.Create(&auditLogs).Error
}
