package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GiaHeplBro/SEO/internal/ai"
	"github.com/GiaHeplBro/SEO/internal/handlers"
	"github.com/GiaHeplBro/SEO/internal/logger"
	"github.com/GiaHeplBro/SEO/internal/middleware"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/services"
	"github.com/GiaHeplBro/SEO/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Audit  services.AuditServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Client{},
		&models.Task{},
		&models.Activity{},
		&models.ClientInteraction{},
		&models.AuditLog{},
		&models.Setting{},
		&models.ComplianceMetric{},
		&models.Website{},
		&models.SEOAudit{},
		&models.Keyword{},
		&models.ContentOptimization{},
		&models.Backlink{},
		&models.OnPageOptimization{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. AI generation runs unconfigured, so the demo-mode path is live.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	aiClient := ai.NewPerplexityClient(http.DefaultClient, "", "")

	// Services
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)
	taskService := services.NewTaskService(db)
	activityService := services.NewActivityService(db)
	auditService := services.NewAuditService(db)
	t.Cleanup(auditService.Close)
	settingsService := services.NewSettingsService(db)
	complianceService := services.NewComplianceService(db)
	metricsService := services.NewMetricsService(db)
	reportService := services.NewReportService(db)
	websiteService := services.NewWebsiteService(db)
	seoAuditService := services.NewSEOAuditService(db)
	keywordService := services.NewKeywordService(db)
	backlinkService := services.NewBacklinkService(db)
	contentService := services.NewContentService(db, aiClient)
	onPageService := services.NewOnPageService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, nil)
	clientHandler := handlers.NewClientHandler(clientService, auditService)
	taskHandler := handlers.NewTaskHandler(taskService, auditService)
	activityHandler := handlers.NewActivityHandler(activityService)
	auditLogHandler := handlers.NewAuditLogHandler(auditService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, auditService)
	complianceHandler := handlers.NewComplianceHandler(complianceService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)
	websiteHandler := handlers.NewWebsiteHandler(websiteService, auditService)
	seoAuditHandler := handlers.NewSEOAuditHandler(seoAuditService, auditService)
	keywordHandler := handlers.NewKeywordHandler(keywordService)
	backlinkHandler := handlers.NewBacklinkHandler(backlinkService)
	contentHandler := handlers.NewContentHandler(contentService)
	onPageHandler := handlers.NewOnPageHandler(onPageService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.GoogleLogin)
	auth.POST("/refresh", authHandler.Refresh)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/metrics", metricsHandler.GetMetrics)

	clients := protected.Group("/clients")
	clients.GET("", clientHandler.ListClients)
	clients.GET("/list", clientHandler.ListClientOptions)
	clients.POST("", clientHandler.CreateClient)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)
	clients.GET("/:id/interactions", clientHandler.ListInteractions)
	clients.POST("/:id/interactions", clientHandler.CreateInteraction)

	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PATCH("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	activities := protected.Group("/activities")
	activities.GET("", activityHandler.ListActivities)
	activities.POST("", activityHandler.CreateActivity)

	auditLogs := protected.Group("/audit-logs")
	auditLogs.GET("", auditLogHandler.ListAuditLogs)
	auditLogs.GET("/export", auditLogHandler.ExportAuditLogs)

	settings := protected.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PATCH("/:category", settingsHandler.UpdateSettings)

	protected.GET("/compliance", complianceHandler.GetCompliance)
	protected.GET("/reports", reportHandler.GetReport)
	protected.GET("/reports/export", reportHandler.ExportReport)

	websites := protected.Group("/websites")
	websites.GET("", websiteHandler.ListWebsites)
	websites.POST("", websiteHandler.CreateWebsite)
	websites.GET("/:id", websiteHandler.GetWebsite)
	websites.PUT("/:id", websiteHandler.UpdateWebsite)
	websites.DELETE("/:id", websiteHandler.DeleteWebsite)
	websites.GET("/:id/audits", seoAuditHandler.ListWebsiteAudits)
	websites.POST("/:id/audits", seoAuditHandler.CreateAudit)
	websites.GET("/:id/keywords", keywordHandler.ListKeywords)
	websites.POST("/:id/keywords", keywordHandler.CreateKeyword)
	websites.GET("/:id/backlinks", backlinkHandler.ListBacklinks)
	websites.POST("/:id/backlinks", backlinkHandler.CreateBacklink)
	websites.GET("/:id/content-optimizations", contentHandler.ListContentOptimizations)
	websites.POST("/:id/content-optimizations", contentHandler.CreateContentOptimization)
	websites.GET("/:id/on-page-optimizations", onPageHandler.ListOnPageOptimizations)
	websites.POST("/:id/on-page-optimizations", onPageHandler.CreateOnPageOptimization)

	protected.GET("/audits", seoAuditHandler.ListAllAudits)
	protected.GET("/audits/:id", seoAuditHandler.GetAudit)
	protected.GET("/keywords/:id", keywordHandler.GetKeyword)
	protected.PATCH("/keywords/:id", keywordHandler.UpdateKeyword)
	protected.DELETE("/keywords/:id", keywordHandler.DeleteKeyword)
	protected.PATCH("/backlinks/:id/status", backlinkHandler.UpdateBacklinkStatus)
	protected.DELETE("/backlinks/:id", backlinkHandler.DeleteBacklink)
	protected.GET("/content-optimizations/:id", contentHandler.GetContentOptimization)
	protected.PATCH("/on-page-optimizations/:id/status", onPageHandler.UpdateOnPageStatus)
	protected.POST("/ai/generate-content", contentHandler.GenerateContent)
	protected.GET("/seo/dashboard", websiteHandler.GetSEODashboard)

	return &testApp{DB: db, Router: router, Audit: auditService}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh
// token, and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q,"fullName":"Test User"}`, username, password)
	rec := app.request("POST", "/api/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["accessToken"].(string), result["refreshToken"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["accessToken"].(string), result["refreshToken"].(string)
}

// createClient creates a client and returns its ID.
func (app *testApp) createClient(t *testing.T, token, name string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"industry":"Manufacturing","contactName":"Pat Doe","contactEmail":"pat@example.com"}`, name)
	rec := app.request("POST", "/api/clients", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}

// createWebsite registers a website and returns its ID.
func (app *testApp) createWebsite(t *testing.T, token, name, url string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"url":%q}`, name, url)
	rec := app.request("POST", "/api/websites", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create website failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}

// assertErrorCode checks the error envelope of a failed response.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %s, got %v", code, errObj["code"])
	}
}
