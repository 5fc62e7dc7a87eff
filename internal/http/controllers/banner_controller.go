package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"signage_server/internal/services"
	"signage_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// BannerController handles banner content HTTP requests
type BannerController struct {
	banners *services.BannerService
}

// NewBannerController creates a new banner controller
func NewBannerController(banners *services.BannerService) *BannerController {
	return &BannerController{banners: banners}
}

// GetBanners returns all banners in rotation order, each annotated with
// its derived status and assigned locations
func (bc *BannerController) GetBanners(c *gin.Context) {
	banners, err := bc.banners.List()
	if err != nil {
		colors.PrintError("Failed to fetch banners: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch banners",
			"message": "Unable to retrieve banners from database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banners,
		"count":   len(banners),
		"message": "Banners retrieved successfully",
	})
}

// GetBanner returns a single banner by ID
func (bc *BannerController) GetBanner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid banner ID",
			"message": "Banner ID must be a valid number",
		})
		return
	}

	banner, err := bc.banners.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Banner not found",
				"message": "No banner found with the specified ID",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Database error",
				"message": "Failed to retrieve banner from database",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banner,
		"message": "Banner retrieved successfully",
	})
}

// CreateBanner creates a new banner at the end of the rotation
func (bc *BannerController) CreateBanner(c *gin.Context) {
	var req services.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": "Fields type and url are required",
			"details": err.Error(),
		})
		return
	}

	banner, err := bc.banners.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid banner data",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create banner",
			"message": "Database error occurred while creating banner",
		})
		return
	}

	colors.PrintSuccess("Banner %d created at position %d", banner.ID, banner.Position)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    banner,
		"message": "Banner created successfully",
	})
}

// UpdateBanner applies a partial patch; a position field triggers a
// reorder, location_ids replaces the assignment set
func (bc *BannerController) UpdateBanner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid banner ID",
			"message": "Banner ID must be a valid number",
		})
		return
	}

	var req services.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": "Please check your JSON syntax",
			"details": err.Error(),
		})
		return
	}

	banner, err := bc.banners.Update(uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Banner not found",
				"message": "No banner found with the specified ID",
			})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid banner data",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to update banner",
				"message": "Database error occurred while updating banner",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banner,
		"message": "Banner updated successfully",
	})
}

// DeleteBanner removes a banner and closes the position gap it leaves
func (bc *BannerController) DeleteBanner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid banner ID",
			"message": "Banner ID must be a valid number",
		})
		return
	}

	if err := bc.banners.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Banner not found",
				"message": "No banner found with the specified ID",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete banner",
			"message": "Database error occurred while deleting banner",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Banner deleted successfully",
	})
}
