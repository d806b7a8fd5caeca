package server

import (
	"log"
	"net/http"
	"strings"

	"two-thirds/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	flash := ""
	name := ""
	if s.sessions != nil {
		flash = s.sessions.PopFlash(w, r)
		name = s.sessions.GetName(w, r)
	}
	templ.Handler(web.Home(flash, name)).ServeHTTP(w, r)
}

func (s *Server) handleJoinView(w http.ResponseWriter, r *http.Request) {
	code := ""
	name := ""
	if strings.HasPrefix(r.URL.Path, "/join/") {
		code = strings.TrimPrefix(r.URL.Path, "/join/")
		code = strings.Trim(code, "/")
		if code != "" && strings.Contains(code, "/") {
			http.NotFound(w, r)
			return
		}
		if normalized, err := validateCode(code); err == nil {
			code = normalized
		} else {
			code = ""
		}
	}
	if s.sessions != nil {
		name = s.sessions.GetName(w, r)
	}
	templ.Handler(web.JoinView(code, name)).ServeHTTP(w, r)
}

func (s *Server) handleRoomView(w http.ResponseWriter, r *http.Request) {
	rawCode, ok := parseRoomViewPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	code, err := validateCode(rawCode)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := s.store.FindRoomByCode(code); err != nil {
		if s.sessions != nil {
			s.sessions.SetFlash(w, r, "Room not found. Create a new one or join with a fresh code.")
		}
		log.Printf("room view missing code=%s", code)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.RoomView(code)).ServeHTTP(w, r)
}
