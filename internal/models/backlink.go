package models

import "time"

// Backlink statuses.
const (
	BacklinkStatusActive    = "active"
	BacklinkStatusLost      = "lost"
	BacklinkStatusToxic     = "toxic"
	BacklinkStatusDisavowed = "disavowed"
)

// ToxicityThreshold is the toxicity score above which a backlink is
// surfaced by the toxic filter.
const ToxicityThreshold = 50

// Backlink is an inbound link pointing at one of a website's pages.
type Backlink struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	WebsiteID       uint      `gorm:"not null;index" json:"websiteId"`
	SourceURL       string    `gorm:"not null" json:"sourceUrl"`
	TargetURL       string    `gorm:"not null" json:"targetUrl"`
	AnchorText      string    `json:"anchorText,omitempty"`
	DomainAuthority int       `gorm:"not null;default:0" json:"domainAuthority"`
	ToxicityScore   int       `gorm:"not null;default:0" json:"toxicityScore"`
	Status          string    `gorm:"not null;default:active" json:"status"`
	FirstDiscovered time.Time `gorm:"not null" json:"firstDiscovered"`
	LastChecked     time.Time `gorm:"not null" json:"lastChecked"`
}
