package controllers

import (
	"net/http"

	"signage_server/internal/db"
	"signage_server/internal/models"
	"signage_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// AuthController handles operator authentication
type AuthController struct{}

// NewAuthController creates a new auth controller
func NewAuthController() *AuthController {
	return &AuthController{}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an operator and issues an access token
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": "Email and password are required",
		})
		return
	}

	var user models.User
	if err := db.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if !user.CheckPassword(req.Password) {
		colors.PrintWarning("Failed login attempt for %s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if err := user.GenerateToken(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate token",
			"message": "An error occurred during login",
		})
		return
	}

	if err := db.GetDB().Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to save session",
			"message": "An error occurred during login",
		})
		return
	}

	colors.PrintSuccess("User %s logged in", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": user.Token,
			"user":  user.ToSafeUser(),
		},
		"message": "Login successful",
	})
}

// Logout invalidates the caller's access token
func (ac *AuthController) Logout(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Not authenticated",
			"message": "No active session found",
		})
		return
	}

	user := userInterface.(*models.User)
	user.ClearToken()
	if err := db.GetDB().Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to logout",
			"message": "An error occurred during logout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// Me returns the authenticated operator's profile
func (ac *AuthController) Me(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Not authenticated",
			"message": "No active session found",
		})
		return
	}

	user := userInterface.(*models.User)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user.ToSafeUser(),
		"message": "User retrieved successfully",
	})
}
