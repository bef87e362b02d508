package controllers

import (
	"errors"
	"net/http"

	"golffit-backend/config"
	"golffit-backend/models"
	"golffit-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Defaults served until an admin edits the banner for the first time
const (
	defaultBannerTitle = "Golf Club Fitting"
	defaultBannerBody  = "Welcome to Golf Club Fitting - Your one-stop solution for all your golf needs. " +
		"We offer a wide range of products and services to help you play better, stay healthier, " +
		"and enjoy your time on the golf course."
)

type UpdateBannerInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// GetBannerContent returns the active banner, or the hardcoded default
// when no admin has edited it yet. The default is never persisted.
func GetBannerContent(c *gin.Context) {
	var banner models.Content
	err := config.DB.Where("type = ? AND active = ?", models.ContentTypeBanner, true).First(&banner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"title":       defaultBannerTitle,
				"description": defaultBannerBody,
			})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       banner.Title,
		"description": banner.Body,
	})
}

// UpdateBannerContent upserts the banner. Admin only. Any other active
// record of the type is deactivated in the same transaction, keeping at
// most one active banner.
func UpdateBannerContent(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input UpdateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Title and description are required")
		return
	}

	var banner models.Content
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("type = ? AND active = ?", models.ContentTypeBanner, true).First(&banner).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			banner = models.Content{
				Type:   models.ContentTypeBanner,
				Active: true,
			}
		}

		banner.Title = input.Title
		banner.Body = input.Description
		banner.LastUpdatedByID = actor.ID

		if err := tx.Save(&banner).Error; err != nil {
			return err
		}

		// Enforce a single active record per content type
		return tx.Model(&models.Content{}).
			Where("type = ? AND active = ? AND id != ?", models.ContentTypeBanner, true, banner.ID).
			Update("active", false).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       banner.Title,
		"description": banner.Body,
	})
}
