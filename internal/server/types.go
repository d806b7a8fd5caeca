package server

import "time"

const (
	statusWaiting  = "waiting"
	statusRevealed = "revealed"
)

// Room is one game session. The code is what players share; the host token
// is the creator's only credential and never leaves the create response.
type Room struct {
	ID        string
	Code      string
	HostToken string
	Status    string
	CreatedAt time.Time
}

// Player belongs to exactly one room. Number stays nil until the player
// submits and is write-once for the round.
type Player struct {
	ID        string
	RoomID    string
	Name      string
	Number    *int
	CreatedAt time.Time
}
