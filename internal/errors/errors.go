// Package errors provides custom error types for the API. All service-layer
// errors should use AppError to ensure consistent error responses that never
// leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized        = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials  = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden           = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrGoogleNotConfigured = &AppError{Code: "GOOGLE_NOT_CONFIGURED", Message: "Google sign-in is not configured", StatusCode: http.StatusBadRequest}
	ErrInvalidGoogleToken  = &AppError{Code: "INVALID_GOOGLE_TOKEN", Message: "Google credential could not be verified", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Client errors.
var (
	ErrClientNotFound = &AppError{Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound}
)

// Task errors.
var (
	ErrTaskNotFound         = &AppError{Code: "TASK_NOT_FOUND", Message: "Task not found", StatusCode: http.StatusNotFound}
	ErrTaskAlreadyCompleted = &AppError{Code: "TASK_ALREADY_COMPLETED", Message: "Task is already completed", StatusCode: http.StatusConflict}
	ErrTaskStatusReserved   = &AppError{Code: "TASK_STATUS_RESERVED", Message: "Task completion must go through the complete endpoint", StatusCode: http.StatusBadRequest}
)

// Report errors.
var (
	ErrReportTypeNotSupported = &AppError{Code: "REPORT_TYPE_NOT_SUPPORTED", Message: "Report type not supported", StatusCode: http.StatusBadRequest}
)

// AI content errors.
var (
	ErrAINotConfigured = &AppError{Code: "AI_NOT_CONFIGURED", Message: "Perplexity API key is not configured", StatusCode: http.StatusBadRequest}
	ErrAIUpstream      = &AppError{Code: "AI_UPSTREAM_ERROR", Message: "Failed to generate AI content", StatusCode: http.StatusInternalServerError}
)

// SEO entity errors.
var (
	ErrWebsiteNotFound      = &AppError{Code: "WEBSITE_NOT_FOUND", Message: "Website not found", StatusCode: http.StatusNotFound}
	ErrAuditNotFound        = &AppError{Code: "AUDIT_NOT_FOUND", Message: "Audit not found", StatusCode: http.StatusNotFound}
	ErrKeywordNotFound      = &AppError{Code: "KEYWORD_NOT_FOUND", Message: "Keyword not found", StatusCode: http.StatusNotFound}
	ErrBacklinkNotFound     = &AppError{Code: "BACKLINK_NOT_FOUND", Message: "Backlink not found", StatusCode: http.StatusNotFound}
	ErrOptimizationNotFound = &AppError{Code: "OPTIMIZATION_NOT_FOUND", Message: "Optimization not found", StatusCode: http.StatusNotFound}
)
