package models

import "time"

// SEOAudit is a point-in-time analysis of a website. Findings holds the
// raw JSON report produced by the analysis.
type SEOAudit struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	WebsiteID    uint      `gorm:"not null;index" json:"websiteId"`
	OverallScore int       `gorm:"not null" json:"overallScore"`
	Findings     string    `gorm:"not null" json:"findings"`
	AuditDate    time.Time `gorm:"not null;index" json:"auditDate"`
}
