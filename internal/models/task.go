package models

import "time"

// Task priority levels.
const (
	TaskPriorityHigh   = "high"
	TaskPriorityMedium = "medium"
	TaskPriorityNormal = "normal"
	TaskPriorityLow    = "low"
)

// Task statuses. Completed is only ever set by the complete write path,
// which stamps CompletedAt and CompletedByID in the same update.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in progress"
	TaskStatusScheduled  = "scheduled"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task is a unit of follow-up work tied to one client and one assigned user.
// CompletedAt and CompletedByID are both set or both null.
type Task struct {
	Base
	ClientID      uint       `gorm:"not null;index" json:"clientId"`
	AssignedToID  uint       `gorm:"not null" json:"assignedToId"`
	Description   string     `gorm:"not null" json:"description"`
	DueDate       time.Time  `gorm:"not null;index" json:"dueDate"`
	Priority      string     `gorm:"not null" json:"priority"`
	Status        string     `gorm:"not null" json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CompletedAt   *time.Time `json:"completedAt"`
	CompletedByID *uint      `json:"completedById"`
}
