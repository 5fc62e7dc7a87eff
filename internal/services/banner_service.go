package services

import (
	"errors"
	"fmt"
	"time"

	"signage_server/config"
	"signage_server/internal/db"
	"signage_server/internal/models"
	"signage_server/pkg/colors"

	"gorm.io/gorm"
)

// BannerService handles banner content mutations and queries. Every
// mutation that touches positions runs as a single transaction so
// concurrent operator edits never observe a half-applied shift.
type BannerService struct {
	positions *PositionService
}

// NewBannerService creates a new banner service
func NewBannerService(positions *PositionService) *BannerService {
	return &BannerService{positions: positions}
}

// CreateBannerRequest represents the request for creating a banner
type CreateBannerRequest struct {
	Type        string  `json:"type" binding:"required"`
	URL         string  `json:"url" binding:"required"`
	Duration    *int    `json:"duration"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Active      *bool   `json:"active"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	LocationIDs []uint  `json:"location_ids"`
}

// UpdateBannerRequest represents a partial banner patch. Nil fields are
// left untouched; an explicit empty string clears an optional value.
type UpdateBannerRequest struct {
	Type        *string `json:"type"`
	URL         *string `json:"url"`
	Duration    *int    `json:"duration"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Position    *int    `json:"position"`
	LocationIDs *[]uint `json:"location_ids"`
}

// parseDatePatch interprets a date patch field: nil leaves the value
// untouched, empty clears it, otherwise the value must be YYYY-MM-DD.
func parseDatePatch(value *string) (set bool, date *time.Time, err error) {
	if value == nil {
		return false, nil, nil
	}
	if *value == "" {
		return true, nil, nil
	}
	parsed, err := config.ParseDate(*value)
	if err != nil {
		return false, nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, *value)
	}
	return true, &parsed, nil
}

// Create validates and persists a new banner at the end of the rotation,
// then writes its location assignments.
func (bs *BannerService) Create(req *CreateBannerRequest) (*models.Banner, error) {
	bannerType := models.BannerType(req.Type)
	if !bannerType.Valid() {
		return nil, fmt.Errorf("%w: unknown banner type %q", ErrInvalidInput, req.Type)
	}
	if req.URL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	duration := 10
	if req.Duration != nil {
		duration = *req.Duration
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	_, startDate, err := parseDatePatch(req.StartDate)
	if err != nil {
		return nil, err
	}
	_, endDate, err := parseDatePatch(req.EndDate)
	if err != nil {
		return nil, err
	}

	banner := models.Banner{
		Type:        bannerType,
		URL:         req.URL,
		Duration:    duration,
		Title:       req.Title,
		Description: req.Description,
		Active:      active,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		position, err := bs.positions.NextPosition(tx)
		if err != nil {
			return err
		}
		banner.Position = position

		if err := tx.Create(&banner).Error; err != nil {
			return err
		}

		return replaceAssignments(tx, banner.ID, req.LocationIDs)
	})
	if err != nil {
		colors.PrintError("Failed to create banner: %v", err)
		return nil, err
	}

	return bs.GetByID(banner.ID)
}

// Update applies a partial patch to a banner. A position change and the
// field updates commit as one transaction; location_ids, when present,
// replaces the full assignment set.
func (bs *BannerService) Update(id uint, req *UpdateBannerRequest) (*models.Banner, error) {
	updates := map[string]interface{}{}

	if req.Type != nil {
		bannerType := models.BannerType(*req.Type)
		if !bannerType.Valid() {
			return nil, fmt.Errorf("%w: unknown banner type %q", ErrInvalidInput, *req.Type)
		}
		updates["type"] = bannerType
	}
	if req.URL != nil {
		if *req.URL == "" {
			return nil, fmt.Errorf("%w: url cannot be empty", ErrInvalidInput)
		}
		updates["url"] = *req.URL
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if set, date, err := parseDatePatch(req.StartDate); err != nil {
		return nil, err
	} else if set {
		updates["start_date"] = date
	}
	if set, date, err := parseDatePatch(req.EndDate); err != nil {
		return nil, err
	} else if set {
		updates["end_date"] = date
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		// Read under the transaction: a concurrent reorder must not stale
		// the rank fed to Move.
		var current models.Banner
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.Position != nil && *req.Position != current.Position {
			if err := bs.positions.Move(tx, current.ID, current.Position, *req.Position); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Banner{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.LocationIDs != nil {
			return replaceAssignments(tx, id, *req.LocationIDs)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrNotFound) {
			colors.PrintError("Failed to update banner %d: %v", id, err)
		}
		return nil, err
	}

	return bs.GetByID(id)
}

// Delete removes a banner, its assignments, and compacts the rank sequence
func (bs *BannerService) Delete(id uint) error {
	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		// Read under the transaction: the rank handed to Compact must be
		// the one the delete actually removes.
		var banner models.Banner
		if err := tx.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("banner_id = ?", id).Delete(&models.BannerLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Banner{}, id).Error; err != nil {
			return err
		}
		return bs.positions.Compact(tx, banner.Position)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			colors.PrintError("Failed to delete banner %d: %v", id, err)
		}
		return err
	}

	return nil
}

// List returns every banner ordered by position, each annotated with its
// resolved status and its locations in name order.
func (bs *BannerService) List() ([]models.Banner, error) {
	var banners []models.Banner
	err := db.GetDB().
		Order("position ASC").
		Preload("Locations", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("locations.name ASC")
		}).
		Find(&banners).Error
	if err != nil {
		return nil, err
	}

	annotateStatus(banners, config.Today())
	return banners, nil
}

// GetByID returns a single banner annotated with status and locations
func (bs *BannerService) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	err := db.GetDB().
		Preload("Locations", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("locations.name ASC")
		}).
		First(&banner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	banner.Status = banner.ResolveStatus(config.Today())
	return &banner, nil
}

// replaceAssignments swaps a banner's assignment set for the given
// location ids (delete-all-then-reinsert)
func replaceAssignments(tx *gorm.DB, bannerID uint, locationIDs []uint) error {
	if err := tx.Where("banner_id = ?", bannerID).Delete(&models.BannerLocation{}).Error; err != nil {
		return err
	}
	for _, locationID := range locationIDs {
		row := models.BannerLocation{BannerID: bannerID, LocationID: locationID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// annotateStatus resolves the lifecycle status of each banner for today
func annotateStatus(banners []models.Banner, today time.Time) {
	for i := range banners {
		banners[i].Status = banners[i].ResolveStatus(today)
	}
}
