package http

import (
	"errors"
	"testing"
	"time"
)

// fakeConn records everything written to it and can be told to fail
type fakeConn struct {
	messages []SyncEvent
	writeErr error
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.messages = append(c.messages, v.(SyncEvent))
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

// newTestHub returns a hub on a manual clock
func newTestHub(start time.Time) (*SyncHub, *time.Time) {
	clock := start
	hub := NewSyncHub()
	hub.now = func() time.Time { return clock }
	return hub, &clock
}

// TestRegisterSendsConnected tests that a display gets acknowledged on
// attach, with no sync semantics
func TestRegisterSendsConnected(t *testing.T) {
	hub, _ := newTestHub(time.Now())
	conn := &fakeConn{}

	hub.Register(conn)

	if hub.ClientCount() != 1 {
		t.Errorf("Expected 1 connected display, got %d", hub.ClientCount())
	}
	if len(conn.messages) != 1 || conn.messages[0].Type != "connected" {
		t.Errorf("Expected single connected event, got %v", conn.messages)
	}
}

// TestRegisterFailedHandshake tests that a connection failing the ack
// write is closed and never registered
func TestRegisterFailedHandshake(t *testing.T) {
	hub, _ := newTestHub(time.Now())
	conn := &fakeConn{writeErr: errors.New("broken pipe")}

	hub.Register(conn)

	if hub.ClientCount() != 0 {
		t.Errorf("Failed handshake should not register, got %d displays", hub.ClientCount())
	}
	if !conn.closed {
		t.Error("Failed handshake should close the connection")
	}
}

// TestBroadcastSyncDelivery tests that every registered display receives
// the sync event
func TestBroadcastSyncDelivery(t *testing.T) {
	hub, _ := newTestHub(time.Now())
	conns := []*fakeConn{{}, {}, {}}
	for _, conn := range conns {
		hub.Register(conn)
	}

	delivered, _, ok := hub.BroadcastSync()
	if !ok {
		t.Fatal("First broadcast should not be throttled")
	}
	if delivered != 3 {
		t.Errorf("Expected delivery to 3 displays, got %d", delivered)
	}
	for i, conn := range conns {
		last := conn.messages[len(conn.messages)-1]
		if last.Type != "sync" {
			t.Errorf("Display %d expected sync event, got %s", i, last.Type)
		}
	}
}

// TestBroadcastSyncThrottle tests the process-wide cooldown between
// successful broadcasts
func TestBroadcastSyncThrottle(t *testing.T) {
	hub, clock := newTestHub(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	hub.Register(&fakeConn{})

	if _, _, ok := hub.BroadcastSync(); !ok {
		t.Fatal("First broadcast should succeed")
	}

	// 100ms later the broadcast is rejected with the remaining wait
	*clock = clock.Add(100 * time.Millisecond)
	_, retryAfter, ok := hub.BroadcastSync()
	if ok {
		t.Fatal("Broadcast inside the cooldown should be rejected")
	}
	if retryAfter != 400*time.Millisecond {
		t.Errorf("Expected 400ms remaining wait, got %v", retryAfter)
	}

	// A rejected call must not extend the cooldown
	*clock = clock.Add(250 * time.Millisecond)
	if _, retryAfter, ok = hub.BroadcastSync(); ok {
		t.Fatal("Broadcast at 350ms should still be rejected")
	}
	if retryAfter != 150*time.Millisecond {
		t.Errorf("Expected 150ms remaining wait, got %v", retryAfter)
	}

	// Past the cooldown the broadcast succeeds again
	*clock = clock.Add(150 * time.Millisecond)
	if _, _, ok = hub.BroadcastSync(); !ok {
		t.Error("Broadcast after the cooldown should succeed")
	}
}

// TestBroadcastSyncDropsDeadConnections tests that a failed write removes
// the connection and excludes it from the delivered count
func TestBroadcastSyncDropsDeadConnections(t *testing.T) {
	hub, clock := newTestHub(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	healthy := &fakeConn{}
	dead := &fakeConn{}
	hub.Register(healthy)
	hub.Register(dead)

	// Connection dies after registration
	dead.writeErr = errors.New("broken pipe")

	delivered, _, ok := hub.BroadcastSync()
	if !ok {
		t.Fatal("Broadcast should not be throttled")
	}
	if delivered != 1 {
		t.Errorf("Dead connection should be excluded from count, got %d", delivered)
	}
	if !dead.closed {
		t.Error("Dead connection should be closed")
	}
	if hub.ClientCount() != 1 {
		t.Errorf("Dead connection should be removed, got %d displays", hub.ClientCount())
	}

	// The next broadcast reaches only the healthy display
	*clock = clock.Add(syncCooldown)
	delivered, _, ok = hub.BroadcastSync()
	if !ok || delivered != 1 {
		t.Errorf("Expected delivery to the surviving display only, got %d (ok %v)", delivered, ok)
	}
}

// TestUnregister tests explicit disconnect handling
func TestUnregister(t *testing.T) {
	hub, _ := newTestHub(time.Now())
	conn := &fakeConn{}
	hub.Register(conn)

	hub.Unregister(conn)

	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 displays after unregister, got %d", hub.ClientCount())
	}
	if !conn.closed {
		t.Error("Unregister should close the connection")
	}

	// Unregistering twice is harmless
	hub.Unregister(conn)
}
