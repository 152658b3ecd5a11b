package models

import "time"

// Compliance metric categories.
const (
	ComplianceCategoryAudit         = "audit"
	ComplianceCategoryDocumentation = "documentation"
	ComplianceCategoryRegulatory    = "regulatory"
)

// ComplianceMetric tracks a scored compliance area against its target.
type ComplianceMetric struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"not null;index" json:"category"`
	Score       int       `gorm:"not null" json:"score"`
	TargetScore int       `gorm:"not null;default:100" json:"targetScore"`
	LastUpdated time.Time `gorm:"not null" json:"lastUpdated"`
	UpdatedByID *uint     `json:"updatedById"`
	Notes       string    `json:"notes,omitempty"`
}
