// Package player implements the display-side rotation state machine.
// It holds the ordered banner list a screen is showing, advances through
// it on per-item timers or media-ended events, and reconciles its state
// when the server pushes a sync notification.
package player

import (
	"sync"
	"time"

	"signage_server/internal/models"
	"signage_server/pkg/colors"
)

// State is the playback lifecycle of one display
type State string

const (
	StateLoading State = "loading"
	StatePlaying State = "playing"
	StateEmpty   State = "empty"
)

// Fetcher resolves the current banner rotation for this display.
// Injected so the engine works the same over HTTP polling or push.
type Fetcher func() ([]models.Banner, error)

// Engine cycles a display through its banner rotation. All transitions
// run under one mutex so the timer callback and sync reconciliation
// never interleave.
type Engine struct {
	mu      sync.Mutex
	fetch   Fetcher
	onShow  func(banner models.Banner, index int)
	banners []models.Banner
	index   int
	state   State
	timer   *time.Timer
	closed  bool

	// refetching guards the single-flight resync: a sync arriving while
	// a refetch is already in flight is dropped, not queued, so stale
	// responses can never land out of order and corrupt the index
	refetching bool
}

// NewEngine creates an engine in the loading state. onShow is invoked
// (outside the lock) each time a banner becomes the one on screen; it
// may be nil.
func NewEngine(fetch Fetcher, onShow func(banner models.Banner, index int)) *Engine {
	return &Engine{
		fetch:  fetch,
		onShow: onShow,
		state:  StateLoading,
	}
}

// State returns the current playback state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Index returns the index of the banner currently showing
func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Current returns the banner currently showing, if any
func (e *Engine) Current() (models.Banner, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePlaying || len(e.banners) == 0 {
		return models.Banner{}, false
	}
	return e.banners[e.index], true
}

// Start performs the initial fetch and begins playback. A failed first
// fetch leaves the engine in loading; the next sync retries it.
func (e *Engine) Start() error {
	banners, err := e.fetch()
	if err != nil {
		colors.PrintWarning("Initial rotation fetch failed: %v", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	e.banners = banners
	if len(banners) == 0 {
		e.state = StateEmpty
		return nil
	}
	e.state = StatePlaying
	e.index = 0
	e.showLocked()
	return nil
}

// Advance moves to the next banner, wrapping to 0 past the end. Called
// by the per-item timer for self-timed types and by the media-ended
// event for videos; callers never fire both for the same item.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.state != StatePlaying || len(e.banners) == 0 {
		return
	}
	e.index = (e.index + 1) % len(e.banners)
	e.showLocked()
}

// HandleSync refetches the rotation in response to a server push and
// reconciles playback without restarting it. Returns false when the
// sync was dropped because a refetch is already in flight.
func (e *Engine) HandleSync() bool {
	e.mu.Lock()
	if e.closed || e.refetching {
		e.mu.Unlock()
		return false
	}
	e.refetching = true
	e.mu.Unlock()

	banners, err := e.fetch()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.refetching = false
	if e.closed {
		return true
	}
	if err != nil {
		// Keep showing the last known rotation; the next sync retries
		colors.PrintWarning("Sync refetch failed, keeping current rotation: %v", err)
		return true
	}

	e.banners = banners
	if len(banners) == 0 {
		e.state = StateEmpty
		e.index = 0
		e.clearTimerLocked()
		return true
	}

	// Keep the current slot when it still exists; clamp to the last
	// item when the list shrank past it
	if e.index >= len(banners) {
		e.index = len(banners) - 1
	}
	if e.state != StatePlaying {
		e.state = StatePlaying
		e.index = 0
	}
	e.showLocked()
	return true
}

// Close stops the engine and cancels any armed timer. Safe to call
// more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.clearTimerLocked()
}

// showLocked announces the banner at the current index and re-arms the
// advance timer for it. Exactly one timer is armed at any moment: the
// previous one is cancelled before the next is set, and self-terminating
// types (video, youtube) get no timer because their media-ended event
// drives Advance.
func (e *Engine) showLocked() {
	e.clearTimerLocked()

	banner := e.banners[e.index]
	if e.onShow != nil {
		go e.onShow(banner, e.index)
	}

	if !banner.UsesTimer() {
		return
	}
	e.timer = time.AfterFunc(time.Duration(banner.Duration)*time.Second, e.Advance)
}

func (e *Engine) clearTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
