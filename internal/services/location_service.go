package services

import (
	"errors"
	"fmt"

	"signage_server/config"
	"signage_server/internal/db"
	"signage_server/internal/models"
	"signage_server/pkg/colors"

	"gorm.io/gorm"
)

// LocationService handles display locations and resolves the live rotation
// a display should play.
type LocationService struct{}

// NewLocationService creates a new location service
func NewLocationService() *LocationService {
	return &LocationService{}
}

// CreateLocationRequest represents the request for creating a location
type CreateLocationRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateLocationRequest represents a partial location patch
type UpdateLocationRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// List returns all locations in name order
func (ls *LocationService) List() ([]models.Location, error) {
	var locations []models.Location
	if err := db.GetDB().Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// ListWithBanners returns every location with its full assigned banner
// list in rotation order, unfiltered by status. This is the operator
// overview, not what displays play.
func (ls *LocationService) ListWithBanners() ([]models.Location, error) {
	var locations []models.Location
	err := db.GetDB().
		Order("name ASC").
		Preload("Banners", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("banners.position ASC")
		}).
		Find(&locations).Error
	if err != nil {
		return nil, err
	}

	today := config.Today()
	for i := range locations {
		annotateStatus(locations[i].Banners, today)
	}
	return locations, nil
}

// Create persists a new location after checking the slug is free
func (ls *LocationService) Create(req *CreateLocationRequest) (*models.Location, error) {
	var existing models.Location
	err := db.GetDB().Where("slug = ?", req.Slug).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: slug %q already in use", ErrInvalidInput, req.Slug)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	location := models.Location{Name: req.Name, Slug: req.Slug}
	if err := db.GetDB().Create(&location).Error; err != nil {
		colors.PrintError("Failed to create location: %v", err)
		return nil, err
	}
	return &location, nil
}

// Update applies a partial patch to a location
func (ls *LocationService) Update(id uint, req *UpdateLocationRequest) (*models.Location, error) {
	var location models.Location
	if err := db.GetDB().First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		if *req.Slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", ErrInvalidInput)
		}
		var other models.Location
		err := db.GetDB().Where("slug = ? AND id != ?", *req.Slug, id).First(&other).Error
		if err == nil {
			return nil, fmt.Errorf("%w: slug %q already in use", ErrInvalidInput, *req.Slug)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["slug"] = *req.Slug
	}

	if len(updates) > 0 {
		if err := db.GetDB().Model(&location).Updates(updates).Error; err != nil {
			colors.PrintError("Failed to update location %d: %v", id, err)
			return nil, err
		}
	}
	return &location, nil
}

// Delete removes a location and its banner assignments
func (ls *LocationService) Delete(id uint) error {
	var location models.Location
	if err := db.GetDB().First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&models.BannerLocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
	if err != nil {
		colors.PrintError("Failed to delete location %d: %v", id, err)
		return err
	}
	return nil
}

// ResolveActiveBanners returns the location behind slug and the banners a
// display there should rotate through right now: assigned, active, inside
// their schedule window, in position order. Scheduled and expired banners
// are excluded silently; only live content ever reaches a display.
func (ls *LocationService) ResolveActiveBanners(slug string) (*models.Location, []models.Banner, error) {
	var location models.Location
	if err := db.GetDB().Where("slug = ?", slug).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var assigned []models.Banner
	err := db.GetDB().
		Joins("INNER JOIN banner_locations bl ON bl.banner_id = banners.id").
		Where("bl.location_id = ? AND banners.active = ?", location.ID, true).
		Order("banners.position ASC").
		Preload("Locations", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("locations.name ASC")
		}).
		Find(&assigned).Error
	if err != nil {
		return nil, nil, err
	}

	today := config.Today()
	banners := make([]models.Banner, 0, len(assigned))
	for _, banner := range assigned {
		if !banner.InWindow(today) {
			continue
		}
		banner.Status = models.BannerStatusLive
		banners = append(banners, banner)
	}

	return &location, banners, nil
}
