package models

// Keyword is a search term tracked for a website. CurrentRanking and
// PreviousRanking are SERP positions; zero means not ranked.
type Keyword struct {
	Base
	WebsiteID       uint   `gorm:"not null;index" json:"websiteId"`
	Keyword         string `gorm:"not null" json:"keyword"`
	SearchVolume    int    `gorm:"not null;default:0" json:"searchVolume"`
	Difficulty      int    `gorm:"not null;default:0" json:"difficulty"`
	CurrentRanking  int    `gorm:"not null;default:0" json:"currentRanking"`
	PreviousRanking int    `gorm:"not null;default:0" json:"previousRanking"`
}
