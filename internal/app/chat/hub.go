package chat

import (
	"sync"

	"github.com/gorilla/websocket"

	"ktchat/internal/pkg/logx"
)

// Hub fans newly posted messages out to the WebSocket connections subscribed
// to each room. It carries no message history; clients catch up over the
// REST message list.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Subscribe registers a connection for a room's message stream.
func (h *Hub) Subscribe(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[roomID][conn] = struct{}{}
}

// Unsubscribe removes a connection. Empty rooms are pruned.
func (h *Hub) Unsubscribe(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Broadcast sends the payload as JSON to every connection subscribed to the
// room. Write failures are logged; the failed connection is left for its
// read loop to tear down.
func (h *Hub) Broadcast(roomID string, payload any) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[roomID]))
	for conn := range h.rooms[roomID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			logx.Warn("Failed to broadcast message to subscriber", "room_id", roomID, "error", err.Error())
		}
	}
}

// Shutdown closes every subscribed connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomID, conns := range h.rooms {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.rooms, roomID)
	}
}
