package server

import (
	"errors"
	"log"
	"net/http"
)

type joinRequest struct {
	Name string `json:"name"`
}

type numberRequest struct {
	Number *int `json:"number"`
}

type hostRequest struct {
	HostToken string `json:"host_token"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.CreateRoom()
	if err != nil {
		log.Printf("create room failed error=%v", err)
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}
	log.Printf("room created code=%s", room.Code)
	writeJSON(w, http.StatusCreated, map[string]string{
		"code":       room.Code,
		"host_token": room.HostToken,
	})
}

func (s *Server) handleRoomSubroutes(w http.ResponseWriter, r *http.Request) {
	rawCode, action, ok := parseRoomPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	code, err := validateCode(rawCode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		switch action {
		case "":
			s.handleGetRoom(w, r, code)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "join":
			s.handleJoinRoom(w, r, code)
		case "reveal":
			s.handleReveal(w, r, code)
		case "restart":
			s.handleRestart(w, r, code)
		default:
			http.NotFound(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request, code string) {
	room, players, err := s.RoomData(code)
	if err != nil {
		s.writeOperationError(w, err, "failed to load room")
		return
	}
	writeJSON(w, http.StatusOK, snapshot(room, players))
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request, code string) {
	var req joinRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := s.JoinRoom(code, name)
	if err != nil {
		s.writeOperationError(w, err, "failed to join room")
		return
	}
	log.Printf("player joined code=%s player_id=%s player_name=%s", code, player.ID, name)
	writeJSON(w, http.StatusOK, map[string]string{
		"player_id": player.ID,
	})

	if s.sessions != nil {
		s.sessions.SetName(w, r, name)
	}
	s.broadcastRoomUpdate(code)
}

func (s *Server) handleSubmitNumber(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayerNumberPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req numberRequest
	if err := readJSON(r, &req); err != nil || req.Number == nil {
		writeError(w, http.StatusBadRequest, ErrInvalidNumber.Error())
		return
	}

	player, err := s.SubmitNumber(playerID, *req.Number)
	if err != nil {
		s.writeOperationError(w, err, "failed to submit")
		return
	}
	log.Printf("number submitted player_id=%s", player.ID)
	writeJSON(w, http.StatusOK, map[string]any{})
	s.broadcastRoomUpdateByID(player.RoomID)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request, code string) {
	var req hostRequest
	if err := readJSON(r, &req); err != nil || req.HostToken == "" {
		writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
		return
	}

	room, err := s.RevealResults(code, req.HostToken)
	if err != nil {
		s.writeOperationError(w, err, "failed to reveal")
		return
	}
	log.Printf("results revealed code=%s", room.Code)
	writeJSON(w, http.StatusOK, map[string]any{})
	s.broadcastRoomUpdate(code)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, code string) {
	var req hostRequest
	if err := readJSON(r, &req); err != nil || req.HostToken == "" {
		writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
		return
	}

	room, err := s.RestartGame(code, req.HostToken)
	if err != nil {
		s.writeOperationError(w, err, "failed to restart")
		return
	}
	log.Printf("game restarted code=%s", room.Code)
	writeJSON(w, http.StatusOK, map[string]any{})
	s.broadcastRoomUpdate(code)
}

// writeOperationError maps engine errors onto HTTP statuses. Infrastructure
// failures are logged and replaced with a generic message so internals stay
// internal.
func (s *Server) writeOperationError(w http.ResponseWriter, err error, generic string) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("operation failed error=%v", err)
		writeError(w, status, generic)
		return
	}
	if errors.Is(err, ErrUnauthorized) {
		writeError(w, status, ErrUnauthorized.Error())
		return
	}
	writeError(w, status, err.Error())
}
