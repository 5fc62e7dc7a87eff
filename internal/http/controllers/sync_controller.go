package controllers

import (
	"net/http"
	"time"

	"signage_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// SyncPublisher pushes sync notifications to connected display screens.
// Implemented by the websocket hub; controllers only see this surface.
type SyncPublisher interface {
	BroadcastSync() (delivered int, retryAfter time.Duration, ok bool)
	ClientCount() int
}

// SyncController handles manual sync trigger requests
type SyncController struct {
	hub SyncPublisher
}

// NewSyncController creates a new sync controller
func NewSyncController(hub SyncPublisher) *SyncController {
	return &SyncController{hub: hub}
}

// TriggerSync broadcasts a sync event to every connected display.
// Requests inside the cooldown window are rejected with 429 so button
// mashing in the admin panel cannot stampede the displays.
func (sc *SyncController) TriggerSync(c *gin.Context) {
	delivered, retryAfter, ok := sc.hub.BroadcastSync()
	if !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":        false,
			"error":          "Sync throttled",
			"message":        "A sync was broadcast recently, please wait",
			"retry_after_ms": retryAfter.Milliseconds(),
		})
		return
	}

	colors.PrintData("🔄", "Sync broadcast delivered to %d display(s)", delivered)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"synced_to": delivered,
		},
		"message": "Sync broadcast sent successfully",
	})
}
