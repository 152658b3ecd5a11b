package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/GiaHeplBro/SEO/internal/ai"
	"github.com/GiaHeplBro/SEO/internal/auth"
	"github.com/GiaHeplBro/SEO/internal/config"
	"github.com/GiaHeplBro/SEO/internal/database"
	"github.com/GiaHeplBro/SEO/internal/handlers"
	"github.com/GiaHeplBro/SEO/internal/logger"
	"github.com/GiaHeplBro/SEO/internal/middleware"
	"github.com/GiaHeplBro/SEO/internal/services"
	"github.com/GiaHeplBro/SEO/internal/validator"
)

// @title           SEO-Boost API
// @version         1.0
// @description     Client tracking and SEO optimization platform: client and task management with compliance auditing, plus website keyword, backlink, and AI content tooling.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Google sign-in is optional; a missing client ID leaves it disabled.
	googleAuth, err := auth.New(context.Background(), appConfig.GoogleClientID, appConfig.GoogleClientSecret, appConfig.GoogleRedirectURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google sign-in: %w", err)
	}
	if googleAuth == nil {
		log.Info("Google sign-in disabled: GOOGLE_CLIENT_ID not set")
	}

	aiClient := ai.NewPerplexityClient(http.DefaultClient, appConfig.PerplexityAPIKey, appConfig.PerplexityBaseURL)
	if !aiClient.Configured() {
		log.Info("AI content generation in demo mode: PERPLEXITY_API_KEY not set")
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)
	taskService := services.NewTaskService(db)
	activityService := services.NewActivityService(db)
	auditService := services.NewAuditService(db)
	defer auditService.Close()
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

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, googleAuth)
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

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/google", authHandler.GoogleLogin)
	authRoutes.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	// Dashboard
	protected.GET("/metrics", metricsHandler.GetMetrics)

	// Client routes
	clients := protected.Group("/clients")
	clients.GET("", clientHandler.ListClients)
	clients.GET("/list", clientHandler.ListClientOptions)
	clients.POST("", clientHandler.CreateClient)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)
	clients.GET("/:id/interactions", clientHandler.ListInteractions)
	clients.POST("/:id/interactions", clientHandler.CreateInteraction)

	// Task routes
	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PATCH("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	// Activity routes
	activities := protected.Group("/activities")
	activities.GET("", activityHandler.ListActivities)
	activities.POST("", activityHandler.CreateActivity)

	// Audit log routes
	auditLogs := protected.Group("/audit-logs")
	auditLogs.GET("", auditLogHandler.ListAuditLogs)
	auditLogs.GET("/export", auditLogHandler.ExportAuditLogs)

	// Settings routes
	settings := protected.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PATCH("/:category", settingsHandler.UpdateSettings)

	// Compliance and reports
	protected.GET("/compliance", complianceHandler.GetCompliance)
	protected.GET("/reports", reportHandler.GetReport)
	protected.GET("/reports/export", reportHandler.ExportReport)

	// Website routes
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

	// SEO flat routes
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

	log.Infof("Starting SEO-Boost API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
