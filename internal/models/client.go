package models

// Client is a business contact record tracked by the dashboard.
type Client struct {
	Base
	Name         string `gorm:"not null;index" json:"name"`
	Industry     string `gorm:"not null" json:"industry"`
	ContactName  string `gorm:"not null" json:"contactName"`
	ContactEmail string `gorm:"not null" json:"contactEmail"`
	ContactPhone string `gorm:"not null" json:"contactPhone"`
	Address      string `json:"address,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
