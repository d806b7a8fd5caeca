package server

import (
	"errors"

	"two-thirds/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// dbStore delegates atomicity to Postgres: unique indexes close the
// join-name and room-code races, and the two conditional updates are plain
// UPDATE ... WHERE guards checked via RowsAffected.
type dbStore struct {
	conn *gorm.DB
}

func newDBStore(conn *gorm.DB) *dbStore {
	return &dbStore{conn: conn}
}

func (s *dbStore) InsertRoom(room *Room) error {
	record := db.Room{
		ID:        room.ID,
		Code:      room.Code,
		HostToken: room.HostToken,
		Status:    room.Status,
		CreatedAt: room.CreatedAt,
	}
	if err := s.conn.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return errCodeTaken
		}
		return err
	}
	return nil
}

func (s *dbStore) FindRoom(id string) (*Room, error) {
	var record db.Room
	if err := s.conn.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return roomFromRecord(record), nil
}

func (s *dbStore) FindRoomByCode(code string) (*Room, error) {
	var record db.Room
	if err := s.conn.Where("code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return roomFromRecord(record), nil
}

// InsertPlayer guards the insert on the room still waiting inside one
// statement, so a join racing a reveal cannot land in the revealed round.
func (s *dbStore) InsertPlayer(player *Player) error {
	result := s.conn.Exec(
		"INSERT INTO players (id, room_id, name, created_at, updated_at) SELECT ?, ?, ?, ?, ? FROM rooms WHERE id = ? AND status = ?",
		player.ID, player.RoomID, player.Name, player.CreatedAt, player.CreatedAt,
		player.RoomID, statusWaiting,
	)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrNameTaken
		}
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	// No row means the guard failed: the room is gone or already revealed.
	var record db.Room
	if err := s.conn.Where("id = ?", player.RoomID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return ErrGameEnded
}

func (s *dbStore) FindPlayer(id string) (*Player, error) {
	var record db.Player
	if err := s.conn.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return playerFromRecord(record), nil
}

func (s *dbStore) PlayersByRoom(roomID string) ([]Player, error) {
	var records []db.Player
	if err := s.conn.Where("room_id = ?", roomID).Order("created_at asc, id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	players := make([]Player, 0, len(records))
	for _, record := range records {
		players = append(players, *playerFromRecord(record))
	}
	return players, nil
}

func (s *dbStore) SetPlayerNumber(playerID string, number int) error {
	result := s.conn.Model(&db.Player{}).
		Where("id = ? AND number IS NULL AND room_id IN (?)",
			playerID,
			s.conn.Model(&db.Room{}).Select("id").Where("status = ?", statusWaiting),
		).
		Update("number", number)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	// Lost the conditional write: the player is gone, the round was
	// revealed first, or a number landed first.
	var record db.Player
	if err := s.conn.Where("id = ?", playerID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	var room db.Room
	if err := s.conn.Where("id = ?", record.RoomID).First(&room).Error; err != nil {
		return err
	}
	if room.Status != statusWaiting {
		return ErrGameEnded
	}
	return ErrAlreadySubmitted
}

func (s *dbStore) MarkRevealed(roomID string) error {
	result := s.conn.Model(&db.Room{}).
		Where("id = ? AND status = ?", roomID, statusWaiting).
		Update("status", statusRevealed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var record db.Room
	if err := s.conn.Where("id = ?", roomID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return ErrAlreadyRevealed
}

func (s *dbStore) ResetRoom(roomID string) error {
	return s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&db.Player{}).Error; err != nil {
			return err
		}
		result := tx.Model(&db.Room{}).Where("id = ?", roomID).Update("status", statusWaiting)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
}

func roomFromRecord(record db.Room) *Room {
	return &Room{
		ID:        record.ID,
		Code:      record.Code,
		HostToken: record.HostToken,
		Status:    record.Status,
		CreatedAt: record.CreatedAt,
	}
}

func playerFromRecord(record db.Player) *Player {
	return &Player{
		ID:        record.ID,
		RoomID:    record.RoomID,
		Name:      record.Name,
		Number:    record.Number,
		CreatedAt: record.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
