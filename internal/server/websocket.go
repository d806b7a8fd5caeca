package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Notifier delivers a room's fresh state to everyone watching it. Delivery
// is best-effort and at-least-once; the payload is the authoritative
// snapshot, so a subscriber that misses a frame catches up on the next one.
type Notifier interface {
	RoomChanged(code string, state map[string]any)
}

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[code] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, code)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) RoomChanged(code string, state map[string]any) {
	h.mu.Lock()
	group := h.groups[code]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(code, conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	rawCode, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	code, err := validateCode(rawCode)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	room, players, err := s.RoomData(code)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected code=%s remote=%s", code, r.RemoteAddr)
	s.ws.Add(code, conn)
	s.ws.Send(conn, snapshot(room, players))
	go s.readWS(code, conn)
}

func (s *Server) readWS(code string, conn *websocket.Conn) {
	defer s.ws.Remove(code, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected code=%s error=%v", code, err)
			return
		}
	}
}

// broadcastRoomUpdate pushes a fresh snapshot to the room's subscribers
// after a state transition. Failures here never fail the operation that
// triggered them.
func (s *Server) broadcastRoomUpdate(code string) {
	room, players, err := s.RoomData(code)
	if err != nil {
		return
	}
	s.notifier.RoomChanged(code, snapshot(room, players))
}

func (s *Server) broadcastRoomUpdateByID(roomID string) {
	room, err := s.store.FindRoom(roomID)
	if err != nil {
		return
	}
	s.broadcastRoomUpdate(room.Code)
}
