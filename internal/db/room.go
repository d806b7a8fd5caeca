package db

import "time"

type Room struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Code      string    `gorm:"size:6;uniqueIndex;not null"`
	HostToken string    `gorm:"size:32;not null"`
	Status    string    `gorm:"size:16;not null;default:waiting"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Players   []Player  `gorm:"constraint:OnDelete:CASCADE"`
	Events    []Event
}
