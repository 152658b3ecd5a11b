package models

import "time"

// ClientInteraction records a single touchpoint with a client
// (email, call, meeting, or note), optionally linked to a follow-up task.
type ClientInteraction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ClientID        uint      `gorm:"not null;index" json:"clientId"`
	UserID          uint      `gorm:"not null" json:"userId"`
	Type            string    `gorm:"not null" json:"type"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description,omitempty"`
	InteractionDate time.Time `gorm:"not null" json:"interactionDate"`
	FollowUpTaskID  *uint     `json:"followUpTaskId"`
	CreatedAt       time.Time `json:"createdAt"`
}
