package server

import (
	"errors"
	"net/http"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameEnded        = errors.New("game already ended")
	ErrNameTaken        = errors.New("name already taken in this room")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadySubmitted = errors.New("already submitted")
	ErrInvalidNumber    = errors.New("number must be between 1 and 100")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrAlreadyRevealed  = errors.New("already revealed")
	ErrNotEnoughPlayers = errors.New("need at least 3 players")
	ErrMissingNumbers   = errors.New("not all players have submitted")
	ErrCodeExhausted    = errors.New("could not allocate a unique room code")
)

// errCodeTaken stays internal: create retries on it and callers only ever
// see ErrCodeExhausted.
var errCodeTaken = errors.New("room code already in use")

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidNumber):
		return http.StatusBadRequest
	case errors.Is(err, ErrGameEnded),
		errors.Is(err, ErrNameTaken),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrAlreadyRevealed),
		errors.Is(err, ErrNotEnoughPlayers),
		errors.Is(err, ErrMissingNumbers):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
