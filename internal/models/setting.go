package models

import "time"

// Setting is a (category, key) -> JSON value pair with last-updater
// attribution. Value holds the raw JSON encoding of the setting.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    string    `gorm:"not null;uniqueIndex:idx_settings_category_key" json:"category"`
	Key         string    `gorm:"not null;uniqueIndex:idx_settings_category_key" json:"key"`
	Value       string    `gorm:"not null" json:"value"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedByID uint      `gorm:"not null" json:"updatedById"`
}
