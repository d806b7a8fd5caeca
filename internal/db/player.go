package db

import "time"

type Player struct {
	ID        string    `gorm:"primaryKey;size:36"`
	RoomID    string    `gorm:"size:36;index;not null;uniqueIndex:idx_players_room_name"`
	Name      string    `gorm:"size:30;not null;uniqueIndex:idx_players_room_name"`
	Number    *int      `gorm:"check:number BETWEEN 1 AND 100"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Events    []Event
}
