package models

import "time"

// Activity types.
const (
	ActivityClientReply        = "client-reply"
	ActivityApproval           = "approval"
	ActivityMeetingScheduled   = "meeting-scheduled"
	ActivityInformationRequest = "information-request"
	ActivityIssueFlagged       = "issue-flagged"
)

// Activity is an immutable timestamped event tied to a client and a user.
// Rows are append-only; there is no update or delete path.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"clientId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	Type      string    `gorm:"not null" json:"type"`
	Message   string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Metadata  string    `json:"metadata,omitempty"`
}
