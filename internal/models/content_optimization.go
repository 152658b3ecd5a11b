package models

import "time"

// ContentOptimization stores an AI-assisted rewrite of a page's content
// for a target keyword. Settings holds the JSON generation options used.
type ContentOptimization struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	WebsiteID          uint      `gorm:"not null;index" json:"websiteId"`
	PageURL            string    `gorm:"not null" json:"pageUrl"`
	TargetKeyword      string    `gorm:"not null" json:"targetKeyword"`
	OriginalContent    string    `json:"originalContent,omitempty"`
	OptimizedContent   string    `gorm:"not null" json:"optimizedContent"`
	SEOScore           int       `gorm:"not null;default:0" json:"seoScore"`
	ReadabilityScore   int       `gorm:"not null;default:0" json:"readabilityScore"`
	OptimizationDate   time.Time `gorm:"not null" json:"optimizationDate"`
	Settings           string    `json:"settings,omitempty"`
	AIGenerationPrompt string    `json:"aiGenerationPrompt,omitempty"`
}
