package server

import (
	"encoding/json"
	"log"

	"two-thirds/internal/db"

	"gorm.io/datatypes"
)

type EventPayload struct {
	Code       string   `json:"code,omitempty"`
	PlayerName string   `json:"player,omitempty"`
	Players    int      `json:"players,omitempty"`
	Average    float64  `json:"average,omitempty"`
	TwoThirds  float64  `json:"two_thirds,omitempty"`
	Winners    []string `json:"winners,omitempty"`
}

// recordEvent appends an audit row for a lifecycle transition. The audit
// trail is best-effort: a failed insert is logged and never fails the
// operation it describes.
func (s *Server) recordEvent(roomID string, playerID *string, eventType string, payload EventPayload) {
	if s.db == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event := db.Event{
		RoomID:   roomID,
		PlayerID: playerID,
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("audit event failed type=%s room_id=%s error=%v", eventType, roomID, err)
	}
}
