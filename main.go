package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"signage_server/config"
	"signage_server/internal/db"
	"signage_server/internal/http"
	"signage_server/pkg/colors"

	"github.com/joho/godotenv"
)

func main() {
	// Print attractive banner
	colors.PrintBanner()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		colors.PrintWarning("No .env file found, using system environment variables")
	} else {
		colors.PrintSuccess("Environment configuration loaded from .env file")
	}

	// Calendar-day scheduling needs one consistent zone on every path
	if err := config.InitializeTimezone(); err != nil {
		colors.PrintError("Failed to load application timezone: %v", err)
		log.Fatalf("Timezone initialization failed: %v", err)
	}

	// Initialize database connection
	colors.PrintInfo("Initializing database connection...")
	if err := db.Initialize(); err != nil {
		colors.PrintError("Failed to initialize database: %v", err)
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	colors.PrintHeader("SIGNAGE SERVER INITIALIZATION")
	colors.PrintServer("🌐", "HTTP Server configured for port %s (REST API + display sync)", httpPort)
	colors.PrintSuccess("Database connection established successfully")

	server := http.NewServer(httpPort)

	colors.PrintSubHeader("Available REST API Endpoints")
	colors.PrintEndpoint("GET", "/health", "Health check endpoint")
	colors.PrintEndpoint("POST", "/api/v1/auth/login", "Operator authentication")
	colors.PrintEndpoint("GET", "/api/v1/auth/me", "Get operator profile")
	colors.PrintEndpoint("POST", "/api/v1/auth/logout", "End operator session")

	colors.PrintSubHeader("Content Management Endpoints")
	colors.PrintEndpoint("GET", "/api/v1/banners", "List banners in rotation order")
	colors.PrintEndpoint("POST", "/api/v1/banners", "Create banner at end of rotation")
	colors.PrintEndpoint("PUT", "/api/v1/banners/:id", "Patch banner (position reorders)")
	colors.PrintEndpoint("DELETE", "/api/v1/banners/:id", "Delete banner and close the gap")
	colors.PrintEndpoint("GET", "/api/v1/locations", "List display locations")
	colors.PrintEndpoint("GET", "/api/v1/locations/with-banners", "Locations with assigned banners")
	colors.PrintEndpoint("POST", "/api/v1/locations", "Create display location")
	colors.PrintEndpoint("POST", "/api/v1/sync", "Broadcast sync to connected displays")
	colors.PrintEndpoint("GET", "/api/v1/dashboard/stats", "Content and display stats")

	colors.PrintSubHeader("Display Endpoints")
	colors.PrintEndpoint("GET", "/api/v1/display/:slug", "Live rotation for a location")
	colors.PrintEndpoint("GET", "/ws", "Display sync push channel")

	errorChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errorChan <- fmt.Errorf("HTTP server error: %v", err)
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errorChan:
		colors.PrintError("Server startup failed: %v", err)
		return
	case <-quit:
		colors.PrintShutdown()
		return
	}
}
