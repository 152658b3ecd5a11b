package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password, fullName, email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetOrCreateGoogleUser(email, fullName, avatar string) (*models.User, error)
}

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	Name         string
	Industry     string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Address      string
	Notes        string
}

// ClientSummary is a client row enriched with list-view data.
type ClientSummary struct {
	models.Client
	Initials     string     `json:"initials"`
	PendingTasks int64      `json:"pendingTasks"`
	LastActivity *time.Time `json:"lastActivity"`
}

// ClientDetail is a single client with its recent history.
type ClientDetail struct {
	models.Client
	Initials         string         `json:"initials"`
	TotalTasks       int64          `json:"totalTasks"`
	PendingTasks     int64          `json:"pendingTasks"`
	RecentActivities []ActivityView `json:"recentActivities"`
}

// ClientOption is the minimal client shape for dropdowns.
type ClientOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// InteractionInput carries the writable fields of a client interaction.
type InteractionInput struct {
	Type            string
	Title           string
	Description     string
	InteractionDate time.Time
	FollowUpTaskID  *uint
}

// ClientServicer defines the contract for client-related business logic.
type ClientServicer interface {
	ListClients(query string, page pagination.PageRequest) (*pagination.PageResponse[ClientSummary], error)
	ListClientOptions() ([]ClientOption, error)
	GetClient(id uint) (*ClientDetail, error)
	CreateClient(in ClientInput) (*models.Client, error)
	UpdateClient(id uint, in ClientInput) (*models.Client, error)
	DeleteClient(id uint) error
	ListInteractions(clientID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ClientInteraction], error)
	CreateInteraction(clientID, userID uint, in InteractionInput) (*models.ClientInteraction, error)
}

// TaskFilter holds optional filter parameters for listing tasks.
type TaskFilter struct {
	Query    string
	Priority string
	Status   string
	ClientID *uint
}

// TaskInput carries the writable fields of a task.
type TaskInput struct {
	ClientID     uint
	AssignedToID uint
	Description  string
	DueDate      time.Time
	Priority     string
	Notes        string
}

// TaskUpdate carries the optional fields of a task update. Nil fields
// are left unchanged.
type TaskUpdate struct {
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
	Notes       *string
}

// TaskClient is the embedded client shape on a task view.
type TaskClient struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Initials string `json:"initials"`
}

// TaskView is a task row joined with its client.
type TaskView struct {
	models.Task
	Client TaskClient `json:"client"`
}

// TaskServicer defines the contract for task-related business logic.
type TaskServicer interface {
	ListTasks(filter TaskFilter, page pagination.PageRequest) (*pagination.PageResponse[TaskView], error)
	GetTask(id uint) (*TaskView, error)
	CreateTask(userID uint, in TaskInput) (*models.Task, error)
	UpdateTask(id uint, in TaskUpdate) (*models.Task, error)
	CompleteTask(id, userID uint) (*models.Task, error)
	DeleteTask(id uint) error
}

// ActivityFilter holds optional filter parameters for listing activities.
type ActivityFilter struct {
	ClientID *uint
	Type     string
}

// ActivityUser is the embedded user shape on an activity view.
type ActivityUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar,omitempty"`
}

// ActivityClient is the embedded client shape on an activity view.
type ActivityClient struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ActivityView is an activity row joined with its user and client.
type ActivityView struct {
	models.Activity
	User   ActivityUser   `json:"user"`
	Client ActivityClient `json:"client"`
}

// ActivityServicer defines the contract for the activity feed.
type ActivityServicer interface {
	ListActivities(filter ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[ActivityView], error)
	AddActivity(clientID, userID uint, activityType, message, metadata string) (*models.Activity, error)
}

// AuditEntry is one audit log record to be written asynchronously.
type AuditEntry struct {
	UserID       uint
	ClientID     *uint
	Action       string
	ResourceType string
	ResourceID   string
	Details      string
	IPAddress    string
	UserAgent    string
	Metadata     string
}

// AuditLogFilter holds optional filter parameters for listing audit logs.
type AuditLogFilter struct {
	Query        string
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
}

// AuditLogView is an audit log row joined with its user and client.
type AuditLogView struct {
	models.AuditLog
	User   ActivityUser    `json:"user"`
	Client *ActivityClient `json:"client,omitempty"`
}

// AuditServicer defines the contract for compliance audit logging.
type AuditServicer interface {
	Log(entry AuditEntry)
	List(filter AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[AuditLogView], error)
	Flush()
	Close()
}

// SettingsServicer defines the contract for application settings.
type SettingsServicer interface {
	GetSettings() (map[string]map[string]json.RawMessage, error)
	GetCategory(category string) (map[string]json.RawMessage, error)
	UpdateCategory(category string, values map[string]json.RawMessage, userID uint) (map[string]json.RawMessage, error)
}

// ComplianceMetricView is a compliance metric with its derived state.
type ComplianceMetricView struct {
	models.ComplianceMetric
	Percentage int    `json:"percentage"`
	Tier       string `json:"tier"`
}

// ComplianceAlert flags the weakest compliance area when any metric
// falls below its warning tier.
type ComplianceAlert struct {
	MetricName string `json:"metricName"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// ComplianceOverview is the full compliance dashboard payload.
type ComplianceOverview struct {
	Metrics      []ComplianceMetricView `json:"metrics"`
	OverallScore int                    `json:"overallScore"`
	Alert        *ComplianceAlert       `json:"alert,omitempty"`
}

// ComplianceServicer defines the contract for compliance scoring.
type ComplianceServicer interface {
	GetOverview() (*ComplianceOverview, error)
}

// MetricTrend annotates a dashboard counter with its movement.
type MetricTrend struct {
	Value     string `json:"value"`
	Direction string `json:"direction"`
	Label     string `json:"label"`
}

// CountMetric is a numeric dashboard counter with its trend.
type CountMetric struct {
	Value int64       `json:"value"`
	Trend MetricTrend `json:"trend"`
}

// ScoreMetric is a percentage dashboard value with its trend.
type ScoreMetric struct {
	Value string      `json:"value"`
	Trend MetricTrend `json:"trend"`
}

// DashboardMetrics is the main dashboard payload.
type DashboardMetrics struct {
	ActiveClients   CountMetric `json:"activeClients"`
	PendingTasks    CountMetric `json:"pendingTasks"`
	FollowUpsToday  CountMetric `json:"followUpsToday"`
	ComplianceScore ScoreMetric `json:"complianceScore"`
}

// MetricsServicer defines the contract for dashboard metrics.
type MetricsServicer interface {
	GetDashboardMetrics() (*DashboardMetrics, error)
}

// ReportPoint is a single named value in a report series.
type ReportPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Report is a generated report: a titled series plus type-specific
// metadata.
type Report struct {
	Title    string                 `json:"title"`
	Type     string                 `json:"type"`
	Data     []ReportPoint          `json:"data"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ReportServicer defines the contract for time-bucketed reports.
type ReportServicer interface {
	GenerateReport(reportType, timeRange string) (*Report, error)
}

// WebsiteInput carries the writable fields of a website.
type WebsiteInput struct {
	Name string
	URL  string
}

// SEODashboard is the aggregated SEO dashboard payload for one user.
type SEODashboard struct {
	TotalWebsites      int64             `json:"totalWebsites"`
	AverageSEOScore    float64           `json:"averageSeoScore"`
	TotalKeywords      int64             `json:"totalKeywords"`
	RankingKeywords    int64             `json:"rankingKeywords"`
	TotalBacklinks     int64             `json:"totalBacklinks"`
	ToxicBacklinks     int64             `json:"toxicBacklinks"`
	PendingSuggestions int64             `json:"pendingSuggestions"`
	RecentAudits       []models.SEOAudit `json:"recentAudits"`
}

// WebsiteServicer defines the contract for website-related business logic.
type WebsiteServicer interface {
	ListWebsites(userID uint, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Website], error)
	GetWebsite(userID, id uint) (*models.Website, error)
	CreateWebsite(userID uint, in WebsiteInput) (*models.Website, error)
	UpdateWebsite(userID, id uint, in WebsiteInput) (*models.Website, error)
	DeleteWebsite(userID, id uint) error
	GetDashboard(userID uint) (*SEODashboard, error)
}

// SEOAuditInput carries the writable fields of an audit.
type SEOAuditInput struct {
	OverallScore int
	Findings     json.RawMessage
}

// SEOAuditServicer defines the contract for SEO audits.
type SEOAuditServicer interface {
	ListAudits(websiteID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.SEOAudit], error)
	GetAudit(id uint) (*models.SEOAudit, error)
	CreateAudit(websiteID uint, in SEOAuditInput) (*models.SEOAudit, error)
}

// KeywordInput carries the writable fields of a keyword.
type KeywordInput struct {
	Keyword        string
	SearchVolume   int
	Difficulty     int
	CurrentRanking int
}

// KeywordUpdate carries the optional fields of a keyword update. Nil
// fields are left unchanged.
type KeywordUpdate struct {
	SearchVolume   *int
	Difficulty     *int
	CurrentRanking *int
}

// KeywordServicer defines the contract for tracked keywords.
type KeywordServicer interface {
	ListKeywords(websiteID uint, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Keyword], error)
	GetKeyword(id uint) (*models.Keyword, error)
	CreateKeyword(websiteID uint, in KeywordInput) (*models.Keyword, error)
	UpdateKeyword(id uint, in KeywordUpdate) (*models.Keyword, error)
	DeleteKeyword(id uint) error
}

// BacklinkInput carries the writable fields of a backlink.
type BacklinkInput struct {
	SourceURL       string
	TargetURL       string
	AnchorText      string
	DomainAuthority int
	ToxicityScore   int
}

// BacklinkServicer defines the contract for backlinks.
type BacklinkServicer interface {
	ListBacklinks(websiteID uint, toxicOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Backlink], error)
	CreateBacklink(websiteID uint, in BacklinkInput) (*models.Backlink, error)
	UpdateStatus(id uint, status string) (*models.Backlink, error)
	DeleteBacklink(id uint) error
}

// ContentInput carries the writable fields of a content optimization.
type ContentInput struct {
	PageURL          string
	TargetKeyword    string
	OriginalContent  string
	OptimizedContent string
	SEOScore         int
	ReadabilityScore int
	Settings         json.RawMessage
}

// GenerateContentRequest is one AI content generation request.
type GenerateContentRequest struct {
	WebsiteID        uint
	PageURL          string
	Content          string
	TargetKeyword    string
	ContentLength    int
	SEOOptimization  int
	ReadabilityLevel int
}

// ContentServicer defines the contract for content optimizations.
type ContentServicer interface {
	ListOptimizations(websiteID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ContentOptimization], error)
	GetOptimization(id uint) (*models.ContentOptimization, error)
	CreateOptimization(websiteID uint, in ContentInput) (*models.ContentOptimization, error)
	GenerateContent(ctx context.Context, req GenerateContentRequest) (*models.ContentOptimization, error)
}

// OnPageInput carries the writable fields of an on-page suggestion.
type OnPageInput struct {
	PageURL        string
	Element        string
	CurrentValue   string
	SuggestedValue string
	Impact         string
}

// OnPageServicer defines the contract for on-page optimizations.
type OnPageServicer interface {
	ListOptimizations(websiteID uint, pageURL string, page pagination.PageRequest) (*pagination.PageResponse[models.OnPageOptimization], error)
	CreateOptimization(websiteID uint, in OnPageInput) (*models.OnPageOptimization, error)
	UpdateStatus(id uint, status string) (*models.OnPageOptimization, error)
}
