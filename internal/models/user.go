package models

// User represents an application user.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"not null" json:"fullName"`
	Email    string `gorm:"not null" json:"email"`
	Role     string `gorm:"not null;default:'user'" json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}
