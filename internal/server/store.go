package server

import (
	"sort"
	"sync"
)

// RoomStore is the durable table of rooms and players. Every method is
// atomic at the row level: uniqueness of room codes and of player names
// within a room is enforced by the store, and the two conditional writes
// (SetPlayerNumber, MarkRevealed) only apply when the row still matches
// the expected state. The engine holds no shared state of its own, so
// multiple instances can safely point at the same store.
type RoomStore interface {
	InsertRoom(room *Room) error
	FindRoom(id string) (*Room, error)
	FindRoomByCode(code string) (*Room, error)
	// InsertPlayer adds a player to a room that is still waiting; a join
	// that races a reveal fails with ErrGameEnded instead of landing in
	// the revealed round.
	InsertPlayer(player *Player) error
	FindPlayer(id string) (*Player, error)
	PlayersByRoom(roomID string) ([]Player, error)
	// SetPlayerNumber writes the number only if none is stored yet and
	// the owning room is still waiting.
	SetPlayerNumber(playerID string, number int) error
	// MarkRevealed flips status to revealed only while it is waiting.
	MarkRevealed(roomID string) error
	// ResetRoom deletes the room's players and returns it to waiting as
	// one logical transaction.
	ResetRoom(roomID string) error
}

// memoryStore keeps everything behind one mutex. It backs the server when
// no database is configured and is what the tests run against.
type memoryStore struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	byCode  map[string]string
	players map[string]*Player
	seq     map[string]int
	nextSeq int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		rooms:   make(map[string]*Room),
		byCode:  make(map[string]string),
		players: make(map[string]*Player),
		seq:     make(map[string]int),
	}
}

func (s *memoryStore) InsertRoom(room *Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byCode[room.Code]; exists {
		return errCodeTaken
	}
	stored := *room
	s.rooms[room.ID] = &stored
	s.byCode[room.Code] = room.ID
	return nil
}

func (s *memoryStore) FindRoom(id string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	found := *room
	return &found, nil
}

func (s *memoryStore) FindRoomByCode(code string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room := *s.rooms[id]
	return &room, nil
}

func (s *memoryStore) InsertPlayer(player *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[player.RoomID]
	if !ok {
		return ErrRoomNotFound
	}
	if room.Status != statusWaiting {
		return ErrGameEnded
	}
	for _, existing := range s.players {
		if existing.RoomID == player.RoomID && existing.Name == player.Name {
			return ErrNameTaken
		}
	}
	stored := clonePlayer(player)
	s.players[player.ID] = &stored
	s.nextSeq++
	s.seq[player.ID] = s.nextSeq
	return nil
}

func (s *memoryStore) FindPlayer(id string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	found := clonePlayer(player)
	return &found, nil
}

func (s *memoryStore) PlayersByRoom(roomID string) ([]Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Player, 0)
	for _, player := range s.players {
		if player.RoomID == roomID {
			list = append(list, clonePlayer(player))
		}
	}
	// Insertion order stands in for created_at so same-instant joins
	// still list deterministically.
	sort.Slice(list, func(i, j int) bool {
		return s.seq[list[i].ID] < s.seq[list[j].ID]
	})
	return list, nil
}

func (s *memoryStore) SetPlayerNumber(playerID string, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if room, ok := s.rooms[player.RoomID]; ok && room.Status != statusWaiting {
		return ErrGameEnded
	}
	if player.Number != nil {
		return ErrAlreadySubmitted
	}
	value := number
	player.Number = &value
	return nil
}

func (s *memoryStore) MarkRevealed(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if room.Status != statusWaiting {
		return ErrAlreadyRevealed
	}
	room.Status = statusRevealed
	return nil
}

func (s *memoryStore) ResetRoom(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	for id, player := range s.players {
		if player.RoomID == roomID {
			delete(s.players, id)
			delete(s.seq, id)
		}
	}
	room.Status = statusWaiting
	return nil
}

func clonePlayer(player *Player) Player {
	copied := *player
	if player.Number != nil {
		value := *player.Number
		copied.Number = &value
	}
	return copied
}
