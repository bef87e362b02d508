package controllers

import (
	"errors"
	"net/http"
	"time"

	"golffit-backend/config"
	"golffit-backend/models"
	"golffit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateFittingInput defines the expected JSON structure for a fitting request
type CreateFittingInput struct {
	Type     string    `json:"type" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Time     string    `json:"time"`
	Comments string    `json:"comments"`
	ClubType string    `json:"clubType"`
	// Admins may create a fitting on behalf of a customer
	CustomerID *uuid.UUID `json:"customerId"`
}

// UpdateFittingInput defines the editable fitting attributes
type UpdateFittingInput struct {
	Type     *string    `json:"type"`
	Date     *time.Time `json:"date"`
	Time     *string    `json:"time"`
	Comments *string    `json:"comments"`
	ClubType *string    `json:"clubType"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// MeasurementsInput carries swing analysis results entered by the fitter
type MeasurementsInput struct {
	SwingSpeed          float64  `json:"swingSpeed"`
	LaunchAngle         float64  `json:"launchAngle"`
	SpinRate            float64  `json:"spinRate"`
	ClubRecommendations []string `json:"clubRecommendations"`
}

// appendStatus sets the fitting status and records the history entry in
// one transaction, so a reader never sees a status that disagrees with
// the tail of the log.
func appendStatus(db *gorm.DB, fitting *models.Fitting, status string, actorID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(fitting).Update("status", status).Error; err != nil {
			return err
		}
		entry := models.FittingStatusEntry{
			FittingID:   fitting.ID,
			Status:      status,
			UpdatedByID: actorID,
		}
		return tx.Create(&entry).Error
	})
}

// loadFitting fetches a fitting with its status history, applying the
// ownership policy: a consumer asking for someone else's fitting gets
// the same 404 as a nonexistent ID so existence is never leaked.
func loadFitting(c *gin.Context, actor models.User) (models.Fitting, bool) {
	fittingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid fitting ID format")
		return models.Fitting{}, false
	}

	var fitting models.Fitting
	err = config.DB.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&fitting, "id = ?", fittingUUID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Fitting not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return models.Fitting{}, false
	}

	if !canAccessFitting(actor, fitting) {
		utils.RespondWithError(c, http.StatusNotFound, "Fitting not found")
		return models.Fitting{}, false
	}

	return fitting, true
}

// CreateFittingRequest submits a new fitting request for the actor, or
// for a named customer when the actor is an admin.
func CreateFittingRequest(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input CreateFittingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidFittingType(input.Type) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid fitting type")
		return
	}

	if input.Type == models.TypeClubFitting && (input.Time == "" || input.ClubType == "") {
		utils.RespondWithError(c, http.StatusBadRequest, "Time and club type are required for a club fitting request")
		return
	}

	if input.Time != "" && !utils.ValidClock(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format. Use HH:MM")
		return
	}

	customerID := actor.ID
	if input.CustomerID != nil && *input.CustomerID != actor.ID {
		if !actor.IsAdmin() {
			utils.RespondWithError(c, http.StatusForbidden, "Only admins can create fittings for other customers")
			return
		}
		var customer models.User
		if err := config.DB.First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		customerID = customer.ID
	}

	fitting := models.Fitting{
		CustomerID:    customerID,
		Type:          input.Type,
		Status:        models.StatusRequestSubmitted,
		ScheduledDate: input.Date,
		Time:          input.Time,
		Comments:      input.Comments,
	}
	if input.Type == models.TypeClubFitting {
		fitting.ClubType = input.ClubType
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fitting).Error; err != nil {
			return err
		}
		entry := models.FittingStatusEntry{
			FittingID:   fitting.ID,
			Status:      models.StatusRequestSubmitted,
			UpdatedByID: actor.ID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create fitting")
		return
	}

	config.DB.Preload("StatusHistory").First(&fitting, "id = ?", fitting.ID)

	c.JSON(http.StatusCreated, fitting)
}

// GetMyFittings lists the actor's own fittings, newest scheduled first.
// An optional ?type= query filters by fitting type.
func GetMyFittings(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := config.DB.Where("customer_id = ?", actor.ID)
	if t := c.Query("type"); t != "" {
		if !models.ValidFittingType(t) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid fitting type")
			return
		}
		query = query.Where("type = ?", t)
	}

	var fittings []models.Fitting
	if err := query.Preload("StatusHistory").Order("scheduled_date DESC").Find(&fittings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve fittings")
		return
	}

	c.JSON(http.StatusOK, fittings)
}

// GetAllFittings lists every fitting regardless of owner. Admin only.
func GetAllFittings(c *gin.Context) {
	var fittings []models.Fitting
	if err := config.DB.Preload("StatusHistory").Order("scheduled_date DESC").Find(&fittings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve fittings")
		return
	}

	c.JSON(http.StatusOK, fittings)
}

func GetFitting(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	fitting, ok := loadFitting(c, actor)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, fitting)
}

// UpdateFitting edits a fitting's scheduling attributes. Admin only.
func UpdateFitting(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	fitting, ok := loadFitting(c, actor)
	if !ok {
		return
	}

	var input UpdateFittingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Type != nil {
		if !models.ValidFittingType(*input.Type) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid fitting type")
			return
		}
		fitting.Type = *input.Type
	}
	if input.Date != nil {
		fitting.ScheduledDate = *input.Date
	}
	if input.Time != nil {
		if !utils.ValidClock(*input.Time) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format. Use HH:MM")
			return
		}
		fitting.Time = *input.Time
	}
	if input.Comments != nil {
		fitting.Comments = *input.Comments
	}
	if input.ClubType != nil {
		fitting.ClubType = *input.ClubType
	}

	if fitting.Type == models.TypeClubFitting && (fitting.Time == "" || fitting.ClubType == "") {
		utils.RespondWithError(c, http.StatusBadRequest, "Time and club type are required for a club fitting")
		return
	}

	if err := config.DB.Save(&fitting).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update fitting")
		return
	}

	c.JSON(http.StatusOK, fitting)
}

// UpdateFittingStatus moves a fitting to a new status and appends the
// matching history entry. Admin only. Admins may move between any
// non-terminal statuses; canceled and completed fittings are frozen.
func UpdateFittingStatus(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	fitting, ok := loadFitting(c, actor)
	if !ok {
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidFittingStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid fitting status")
		return
	}

	if models.TerminalStatus(fitting.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Fitting is already "+fitting.Status)
		return
	}

	if err := appendStatus(config.DB, &fitting, input.Status, actor.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update fitting status")
		return
	}

	config.DB.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&fitting, "id = ?", fitting.ID)

	c.JSON(http.StatusOK, fitting)
}

// UpdateFittingMeasurements records swing analysis results. Admin only;
// rejected for any fitting that is not a swing analysis.
func UpdateFittingMeasurements(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	fitting, ok := loadFitting(c, actor)
	if !ok {
		return
	}

	if fitting.Type != models.TypeSwingAnalysis {
		utils.RespondWithError(c, http.StatusBadRequest, "Not a swing analysis fitting")
		return
	}

	var input MeasurementsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Full overwrite keeps repeated submissions idempotent
	updates := map[string]interface{}{
		"swing_speed":          input.SwingSpeed,
		"launch_angle":         input.LaunchAngle,
		"spin_rate":            input.SpinRate,
		"club_recommendations": models.StringList(input.ClubRecommendations),
	}
	if err := config.DB.Model(&fitting).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update measurements")
		return
	}

	config.DB.Preload("StatusHistory").First(&fitting, "id = ?", fitting.ID)

	c.JSON(http.StatusOK, fitting)
}

// CancelFitting is the UpdateStatus shorthand available to the fitting's
// owner as well as admins.
func CancelFitting(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	fitting, ok := loadFitting(c, actor)
	if !ok {
		return
	}

	if models.TerminalStatus(fitting.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Fitting is already "+fitting.Status)
		return
	}

	if err := appendStatus(config.DB, &fitting, models.StatusCanceled, actor.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel fitting")
		return
	}

	config.DB.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&fitting, "id = ?", fitting.ID)

	c.JSON(http.StatusOK, fitting)
}
