package http

import (
	"signage_server/internal/http/controllers"
	"signage_server/internal/http/middleware"
	"signage_server/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes against the given sync hub
func SetupRoutes(router *gin.Engine, hub *SyncHub) {
	// Initialize services
	positionService := services.NewPositionService()
	bannerService := services.NewBannerService(positionService)
	locationService := services.NewLocationService()

	// Initialize controllers
	authController := controllers.NewAuthController()
	bannerController := controllers.NewBannerController(bannerService)
	locationController := controllers.NewLocationController(locationService)
	syncController := controllers.NewSyncController(hub)
	dashboardController := controllers.NewDashboardController(hub)

	// WebSocket endpoint displays subscribe to for sync pushes (public:
	// kiosk screens carry no credentials)
	router.GET("/ws", hub.HandleWebSocket)

	// API version 1
	v1 := router.Group("/api/v1")
	{
		// Public authentication routes (no middleware)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
		}

		// Protected authentication routes (require auth)
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.AuthMiddleware())
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.GET("/me", authController.Me)
		}

		// Public display route: a screen resolves its slug to the
		// banners it should rotate right now
		v1.GET("/display/:slug", locationController.GetDisplayBanners)

		// Banner routes (authenticated operators only)
		banners := v1.Group("/banners")
		banners.Use(middleware.AuthMiddleware())
		{
			banners.GET("", bannerController.GetBanners)
			banners.GET("/:id", bannerController.GetBanner)
			banners.POST("", bannerController.CreateBanner)
			banners.PUT("/:id", bannerController.UpdateBanner)
			banners.DELETE("/:id", bannerController.DeleteBanner)
		}

		// Location routes (authenticated operators only)
		locations := v1.Group("/locations")
		locations.Use(middleware.AuthMiddleware())
		{
			locations.GET("", locationController.GetLocations)
			locations.GET("/with-banners", locationController.GetLocationsWithBanners)
			locations.POST("", locationController.CreateLocation)
			locations.PUT("/:id", locationController.UpdateLocation)
			locations.DELETE("/:id", middleware.AdminOnlyMiddleware(), locationController.DeleteLocation)
		}

		// Manual sync trigger (authenticated operators only)
		sync := v1.Group("/sync")
		sync.Use(middleware.AuthMiddleware())
		{
			sync.POST("", syncController.TriggerSync)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthMiddleware())
		{
			dashboard.GET("/stats", dashboardController.GetStats)
		}
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"message":   "Signage Server is running",
			"websocket": "/ws",
			"api":       "/api/v1",
			"display":   "/api/v1/display/:slug",
			"auth": gin.H{
				"login":  "/api/v1/auth/login",
				"me":     "/api/v1/auth/me",
				"logout": "/api/v1/auth/logout",
			},
		})
	})
}
