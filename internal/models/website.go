package models

import "time"

// Website is a site registered by a user for SEO tracking. SEOScore is
// refreshed whenever a new audit completes for the site.
type Website struct {
	Base
	UserID         uint       `gorm:"not null;index" json:"userId"`
	Name           string     `gorm:"not null" json:"name"`
	URL            string     `gorm:"not null" json:"url"`
	SEOScore       int        `gorm:"not null;default:0" json:"seoScore"`
	LastAnalyzedAt *time.Time `json:"lastAnalyzedAt"`
}
