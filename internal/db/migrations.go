package db

import (
	"fmt"
	"os"

	"signage_server/internal/models"
	"signage_server/pkg/colors"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	colors.PrintSubHeader("Running Database Migrations")

	err := DB.AutoMigrate(&models.User{})
	if err != nil {
		return fmt.Errorf("user table migration failed: %v", err)
	}
	colors.PrintSuccess("✓ Users table ready")

	err = DB.AutoMigrate(&models.Location{})
	if err != nil {
		return fmt.Errorf("location table migration failed: %v", err)
	}
	colors.PrintSuccess("✓ Locations table ready")

	err = DB.AutoMigrate(&models.Banner{})
	if err != nil {
		return fmt.Errorf("banner table migration failed: %v", err)
	}
	colors.PrintSuccess("✓ Banners table ready")

	err = DB.AutoMigrate(&models.BannerLocation{})
	if err != nil {
		return fmt.Errorf("banner_locations table migration failed: %v", err)
	}
	colors.PrintSuccess("✓ Banner-location assignments table ready")

	ensureAdminExists()

	return nil
}

// ensureAdminExists seeds a default admin account on an empty users table
// so the authoring API is reachable after a fresh install.
func ensureAdminExists() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		colors.PrintWarning("No users exist and ADMIN_EMAIL/ADMIN_PASSWORD are not set; authoring API has no accounts")
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     models.UserRoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		colors.PrintError("Failed to seed admin account: %v", err)
		return
	}
	colors.PrintSuccess("Seeded default admin account %s", email)
}
