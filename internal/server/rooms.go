package server

import (
	"errors"
	"log"

	"two-thirds/internal/game"

	"github.com/google/uuid"
)

// CreateRoom allocates a room with a fresh code and host token. Code
// generation retries on collision and gives up with ErrCodeExhausted
// instead of reusing a possibly-taken code.
func (s *Server) CreateRoom() (*Room, error) {
	for attempt := 0; attempt < s.cfg.CodeAttempts; attempt++ {
		room := &Room{
			ID:        uuid.NewString(),
			Code:      newRoomCode(),
			HostToken: newHostToken(),
			Status:    statusWaiting,
			CreatedAt: timeNowUTC(),
		}
		err := s.store.InsertRoom(room)
		if err == nil {
			s.recordEvent(room.ID, nil, "room_created", EventPayload{Code: room.Code})
			return room, nil
		}
		if !errors.Is(err, errCodeTaken) {
			return nil, err
		}
		log.Printf("room code collision attempt=%d", attempt+1)
	}
	return nil, ErrCodeExhausted
}

// JoinRoom adds a named player to a waiting room. Name uniqueness within
// the room is enforced by the store insert, not a prior read.
func (s *Server) JoinRoom(code, name string) (*Player, error) {
	room, err := s.store.FindRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.Status == statusRevealed {
		return nil, ErrGameEnded
	}
	player := &Player{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		Name:      name,
		CreatedAt: timeNowUTC(),
	}
	if err := s.store.InsertPlayer(player); err != nil {
		return nil, err
	}
	s.recordEvent(room.ID, &player.ID, "player_joined", EventPayload{Code: room.Code, PlayerName: name})
	return player, nil
}

// SubmitNumber stores a player's guess. The write only lands while the
// stored number is still null, so the first of two racing submissions wins
// and the other observes ErrAlreadySubmitted.
func (s *Server) SubmitNumber(playerID string, number int) (*Player, error) {
	if number < 1 || number > 100 {
		return nil, ErrInvalidNumber
	}
	player, err := s.store.FindPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetPlayerNumber(playerID, number); err != nil {
		return nil, err
	}
	s.recordEvent(player.RoomID, &player.ID, "number_submitted", EventPayload{PlayerName: player.Name})
	return player, nil
}

// RevealResults flips the room to revealed once every gate passes. The
// status flip itself is conditional on the room still waiting, so two
// racing reveals resolve to one winner.
func (s *Server) RevealResults(code, hostToken string) (*Room, error) {
	room, err := s.store.FindRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.HostToken != hostToken {
		return nil, ErrUnauthorized
	}
	if room.Status == statusRevealed {
		return nil, ErrAlreadyRevealed
	}
	players, err := s.store.PlayersByRoom(room.ID)
	if err != nil {
		return nil, err
	}
	if len(players) < s.cfg.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	for _, player := range players {
		if player.Number == nil {
			return nil, ErrMissingNumbers
		}
	}
	if err := s.store.MarkRevealed(room.ID); err != nil {
		return nil, err
	}
	room.Status = statusRevealed

	result := game.Compute(entriesFor(players))
	winners := make([]string, 0, len(result.Winners))
	for _, winner := range result.Winners {
		winners = append(winners, winner.Name)
	}
	s.recordEvent(room.ID, nil, "results_revealed", EventPayload{
		Code:      room.Code,
		Players:   len(players),
		Average:   result.Average,
		TwoThirds: result.TwoThirds,
		Winners:   winners,
	})
	return room, nil
}

// RestartGame clears the room's players and returns it to waiting. Code
// and host token survive so the same group can play another round.
func (s *Server) RestartGame(code, hostToken string) (*Room, error) {
	room, err := s.store.FindRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.HostToken != hostToken {
		return nil, ErrUnauthorized
	}
	if err := s.store.ResetRoom(room.ID); err != nil {
		return nil, err
	}
	room.Status = statusWaiting
	s.recordEvent(room.ID, nil, "game_restarted", EventPayload{Code: room.Code})
	return room, nil
}

// RoomData returns the room and its players ordered by join time.
func (s *Server) RoomData(code string) (*Room, []Player, error) {
	room, err := s.store.FindRoomByCode(code)
	if err != nil {
		return nil, nil, err
	}
	players, err := s.store.PlayersByRoom(room.ID)
	if err != nil {
		return nil, nil, err
	}
	return room, players, nil
}

func entriesFor(players []Player) []game.Entry {
	entries := make([]game.Entry, 0, len(players))
	for _, player := range players {
		if player.Number == nil {
			continue
		}
		entries = append(entries, game.Entry{
			PlayerID: player.ID,
			Name:     player.Name,
			Number:   *player.Number,
		})
	}
	return entries
}
