package models

import "time"

// On-page optimization statuses. AppliedAt is stamped when a suggestion
// transitions to applied and cleared on any other status.
const (
	OptimizationStatusPending   = "pending"
	OptimizationStatusApplied   = "applied"
	OptimizationStatusDismissed = "dismissed"
)

// OnPageOptimization is a single actionable suggestion for a page element
// (title, meta description, heading, image alt, and so on).
type OnPageOptimization struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	WebsiteID      uint       `gorm:"not null;index" json:"websiteId"`
	PageURL        string     `gorm:"not null" json:"pageUrl"`
	Element        string     `gorm:"not null" json:"element"`
	CurrentValue   string     `json:"currentValue,omitempty"`
	SuggestedValue string     `gorm:"not null" json:"suggestedValue"`
	Impact         string     `gorm:"not null" json:"impact"`
	Status         string     `gorm:"not null;default:pending" json:"status"`
	AppliedAt      *time.Time `json:"appliedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}
