package http

import (
	"net/http"
	"sync"
	"time"

	"signage_server/pkg/colors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Displays are unattended kiosks connecting from arbitrary origins
		return true
	},
}

// SyncEvent is the only message shape on the display push channel:
// {"type":"connected"} on attach and {"type":"sync"} on broadcast.
type SyncEvent struct {
	Type string `json:"type"`
}

// syncConn is the subset of *websocket.Conn the hub needs. Tests register
// fakes through it.
type syncConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// syncCooldown is the process-wide minimum interval between successful
// sync broadcasts.
const syncCooldown = 500 * time.Millisecond

// SyncHub tracks every connected display and pushes sync notifications to
// all of them. It is owned by the Server and holds no persistent state: a
// restart drops all subscriptions and displays reconnect.
type SyncHub struct {
	mu       sync.Mutex
	clients  map[syncConn]bool
	lastSync time.Time
	now      func() time.Time
}

// NewSyncHub creates a new sync hub
func NewSyncHub() *SyncHub {
	return &SyncHub{
		clients: make(map[syncConn]bool),
		now:     time.Now,
	}
}

// Register adds a display connection and immediately acknowledges it.
// The acknowledgment carries no sync semantics: a reconnecting display
// must not treat it as a content change.
func (h *SyncHub) Register(conn syncConn) {
	if err := conn.WriteJSON(SyncEvent{Type: "connected"}); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	total := len(h.clients)
	h.mu.Unlock()

	colors.PrintConnection("🖥️", "Display connected. Total displays: %d", total)
}

// Unregister removes a display connection
func (h *SyncHub) Unregister(conn syncConn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	total := len(h.clients)
	h.mu.Unlock()

	colors.PrintConnection("🖥️", "Display disconnected. Total displays: %d", total)
}

// ClientCount returns the number of currently connected displays
func (h *SyncHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastSync pushes a sync event to every connected display. Calls
// inside the cooldown window are rejected with the remaining wait and do
// not extend the cooldown. A connection that fails delivery is dropped
// from the registry as part of the attempt; the returned count excludes it.
func (h *SyncHub) BroadcastSync() (delivered int, retryAfter time.Duration, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if !h.lastSync.IsZero() {
		if elapsed := now.Sub(h.lastSync); elapsed < syncCooldown {
			return 0, syncCooldown - elapsed, false
		}
	}
	h.lastSync = now

	for conn := range h.clients {
		if err := conn.WriteJSON(SyncEvent{Type: "sync"}); err != nil {
			colors.PrintWarning("Dropping dead display connection: %v", err)
			conn.Close()
			delete(h.clients, conn)
			continue
		}
		delivered++
	}

	return delivered, 0, true
}

// HandleWebSocket upgrades a display connection and keeps it registered
// until the peer goes away.
func (h *SyncHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		colors.PrintError("Failed to upgrade to WebSocket: %v", err)
		return
	}

	colors.PrintConnection("🔗", "New display connection from %s", c.ClientIP())
	h.Register(conn)

	go func() {
		defer h.Unregister(conn)

		for {
			// Displays never send application messages; reading just
			// detects the close.
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					colors.PrintError("WebSocket error: %v", err)
				}
				return
			}
		}
	}()
}
