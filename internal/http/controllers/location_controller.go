package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"signage_server/internal/services"
	"signage_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// LocationController handles location and public display HTTP requests
type LocationController struct {
	locations *services.LocationService
}

// NewLocationController creates a new location controller
func NewLocationController(locations *services.LocationService) *LocationController {
	return &LocationController{locations: locations}
}

// GetLocations returns all locations ordered by name
func (lc *LocationController) GetLocations(c *gin.Context) {
	locations, err := lc.locations.List()
	if err != nil {
		colors.PrintError("Failed to fetch locations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch locations",
			"message": "Unable to retrieve locations from database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    locations,
		"count":   len(locations),
		"message": "Locations retrieved successfully",
	})
}

// GetLocationsWithBanners returns all locations with their assigned
// banners preloaded in rotation order
func (lc *LocationController) GetLocationsWithBanners(c *gin.Context) {
	locations, err := lc.locations.ListWithBanners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch locations",
			"message": "Unable to retrieve locations from database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    locations,
		"count":   len(locations),
		"message": "Locations retrieved successfully",
	})
}

// CreateLocation creates a new display location
func (lc *LocationController) CreateLocation(c *gin.Context) {
	var req services.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": "Fields name and slug are required",
			"details": err.Error(),
		})
		return
	}

	location, err := lc.locations.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid location data",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create location",
			"message": "Database error occurred while creating location",
		})
		return
	}

	colors.PrintSuccess("Location '%s' created with slug '%s'", location.Name, location.Slug)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    location,
		"message": "Location created successfully",
	})
}

// UpdateLocation applies a partial patch to a location
func (lc *LocationController) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid location ID",
			"message": "Location ID must be a valid number",
		})
		return
	}

	var req services.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": "Please check your JSON syntax",
			"details": err.Error(),
		})
		return
	}

	location, err := lc.locations.Update(uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Location not found",
				"message": "No location found with the specified ID",
			})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid location data",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to update location",
				"message": "Database error occurred while updating location",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    location,
		"message": "Location updated successfully",
	})
}

// DeleteLocation removes a location and its banner assignments
func (lc *LocationController) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid location ID",
			"message": "Location ID must be a valid number",
		})
		return
	}

	if err := lc.locations.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Location not found",
				"message": "No location found with the specified ID",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete location",
			"message": "Database error occurred while deleting location",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Location deleted successfully",
	})
}

// GetDisplayBanners is the public endpoint a display screen polls: it
// resolves a location slug to the banners currently live there
func (lc *LocationController) GetDisplayBanners(c *gin.Context) {
	slug := c.Param("slug")

	location, banners, err := lc.locations.ResolveActiveBanners(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Location not found",
				"message": "No location found with the specified slug",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to resolve display content",
			"message": "Database error occurred while loading banners",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"location": location,
			"banners":  banners,
		},
		"count":   len(banners),
		"message": "Display content retrieved successfully",
	})
}
