package notifyhub

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/opensite-ai/page-speed-social-share/types"
)

// Hub holds WebSocket connections and broadcasts share notifications to all
// attached UI clients.
type Hub struct {
	mu sync.RWMutex
	// each connection carries its own write mutex: gorilla/websocket allows
	// at most one concurrent writer per connection
	conns map[*websocket.Conn]*sync.Mutex
}

// New creates a new notify hub.
func New() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &sync.Mutex{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// ClientCount returns the number of attached UI clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the notification as JSON to all registered connections.
func (h *Hub) Broadcast(notification *types.Notification) {
	if notification == nil {
		return
	}
	payload, err := sonic.Marshal(notification)
	if err != nil {
		return
	}

	type target struct {
		conn *websocket.Conn
		wmu  *sync.Mutex
	}
	h.mu.RLock()
	targets := make([]target, 0, len(h.conns))
	for c, wmu := range h.conns {
		targets = append(targets, target{conn: c, wmu: wmu})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		t.wmu.Lock()
		_ = t.conn.WriteMessage(websocket.TextMessage, payload)
		t.wmu.Unlock()
	}
}
