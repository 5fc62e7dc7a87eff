package controllers

import (
	"net/http"

	"signage_server/config"
	"signage_server/internal/db"
	"signage_server/internal/models"

	"github.com/gin-gonic/gin"
)

// DashboardController serves aggregate stats for the admin panel
type DashboardController struct {
	hub SyncPublisher
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(hub SyncPublisher) *DashboardController {
	return &DashboardController{hub: hub}
}

// GetStats returns banner counts per status, the location count and
// the number of currently connected displays
func (dc *DashboardController) GetStats(c *gin.Context) {
	var banners []models.Banner
	if err := db.GetDB().Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch stats",
			"message": "Database error occurred while loading stats",
		})
		return
	}

	var locationCount int64
	if err := db.GetDB().Model(&models.Location{}).Count(&locationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch stats",
			"message": "Database error occurred while loading stats",
		})
		return
	}

	today := config.Today()
	byStatus := map[models.BannerStatus]int{}
	for _, b := range banners {
		byStatus[models.ResolveStatus(b.Active, b.StartDate, b.EndDate, today)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_banners":      len(banners),
			"live_banners":       byStatus[models.BannerStatusLive],
			"scheduled_banners":  byStatus[models.BannerStatusScheduled],
			"expired_banners":    byStatus[models.BannerStatusExpired],
			"inactive_banners":   byStatus[models.BannerStatusInactive],
			"total_locations":    locationCount,
			"connected_displays": dc.hub.ClientCount(),
		},
		"message": "Stats retrieved successfully",
	})
}
