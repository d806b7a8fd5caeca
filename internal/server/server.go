package server

import (
	"net/http"

	"two-thirds/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    RoomStore
	db       *gorm.DB
	ws       *wsHub
	notifier Notifier
	cfg      config.Config
	sessions *sessionStore
}

// New wires a server around the given database connection. With a nil
// connection the server runs entirely in memory, which is how the tests
// exercise it.
func New(conn *gorm.DB, cfg config.Config) *Server {
	var store RoomStore = newMemoryStore()
	if conn != nil {
		store = newDBStore(conn)
	}
	hub := newWSHub()
	return &Server{
		store:    store,
		db:       conn,
		ws:       hub,
		notifier: hub,
		cfg:      cfg,
		sessions: newSessionStore(conn),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /join", s.handleJoinView)
	mux.HandleFunc("GET /join/", s.handleJoinView)
	mux.HandleFunc("GET /rooms/", s.handleRoomView)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/players/", s.handleSubmitNumber)
	mux.HandleFunc("GET /ws/rooms/", s.handleWebsocket)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
