package models

import "time"

// AuditLog records who did what to which resource when, for compliance
// traceability. Rows are append-only.
type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	ClientID     *uint     `gorm:"index" json:"clientId"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resourceType"`
	ResourceID   string    `json:"resourceId,omitempty"`
	Details      string    `gorm:"not null" json:"details"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
	Metadata     string    `json:"metadata,omitempty"`
}
