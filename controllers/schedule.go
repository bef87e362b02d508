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

var errSlotUnavailable = errors.New("time slot is not available")

type BookSlotInput struct {
	TimeSlotID  uuid.UUID `json:"timeSlotId" binding:"required"`
	ServiceType string    `json:"serviceType" binding:"required"`
	Comments    string    `json:"comments"`
}

// CreateTimeSlotsInput describes the window an admin wants partitioned
// into bookable slots.
type CreateTimeSlotsInput struct {
	Date      time.Time `json:"date" binding:"required"`
	StartTime string    `json:"startTime" binding:"required"`
	EndTime   string    `json:"endTime" binding:"required"`
	Duration  int       `json:"duration" binding:"required"` // minutes
}

type UpdateTimeSlotInput struct {
	Date        *time.Time `json:"date"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	IsAvailable *bool      `json:"isAvailable"`
}

// GetAvailability returns unbooked slots within a date range, soonest first.
func GetAvailability(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Start and end dates are required")
		return
	}

	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date. Use YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date. Use YYYY-MM-DD")
		return
	}

	var slots []models.TimeSlot
	if err := config.DB.
		Where("date >= ? AND date <= ? AND is_available = ?", from, to, true).
		Order("date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve availability")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// BookSlot books an available time slot for the actor. The availability
// flag is flipped with a conditional update so two concurrent bookings
// of the same slot resolve to exactly one winner; the loser gets 409.
func BookSlot(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input BookSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidFittingType(input.ServiceType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service type")
		return
	}

	var slot models.TimeSlot
	if err := config.DB.First(&slot, "id = ?", input.TimeSlotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Time slot not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var fitting models.Fitting
	var schedule models.Schedule

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		fitting = models.Fitting{
			CustomerID:    actor.ID,
			Type:          input.ServiceType,
			Status:        models.StatusScheduled,
			ScheduledDate: slot.Date,
			Time:          slot.StartTime,
			Comments:      input.Comments,
		}
		if err := tx.Create(&fitting).Error; err != nil {
			return err
		}
		entry := models.FittingStatusEntry{
			FittingID:   fitting.ID,
			Status:      models.StatusScheduled,
			UpdatedByID: actor.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		// Compare-and-swap on the availability flag. RowsAffected == 0
		// means another booking got here first.
		result := tx.Model(&models.TimeSlot{}).
			Where("id = ? AND is_available = ?", slot.ID, true).
			Updates(map[string]interface{}{
				"is_available": false,
				"fitting_id":   fitting.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errSlotUnavailable
		}

		schedule = models.Schedule{
			UserID:      actor.ID,
			TimeSlotID:  slot.ID,
			Date:        slot.Date,
			ServiceType: input.ServiceType,
			Status:      "Booked",
		}
		return tx.Create(&schedule).Error
	})

	if err != nil {
		if errors.Is(err, errSlotUnavailable) {
			utils.RespondWithError(c, http.StatusConflict, "Time slot is not available")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to book time slot")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"schedule": schedule,
		"fitting":  fitting,
	})
}

// GetCalendar lists the actor's bookings, newest first.
func GetCalendar(c *gin.Context) {
	actor, ok := CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var schedules []models.Schedule
	if err := config.DB.
		Where("user_id = ?", actor.ID).
		Preload("TimeSlot").
		Order("date DESC").
		Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve calendar")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// CreateTimeSlots partitions a window into slots and persists the batch.
// Admin only.
func CreateTimeSlots(c *gin.Context) {
	var input CreateTimeSlotsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	windows, err := utils.GenerateSlots(input.StartTime, input.EndTime, input.Duration)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if len(windows) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Window is shorter than one slot")
		return
	}

	date := utils.BeginningOfDay(input.Date)
	slots := make([]models.TimeSlot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, models.TimeSlot{
			Date:        date,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: true,
		})
	}

	if err := config.DB.Create(&slots).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create time slots")
		return
	}

	c.JSON(http.StatusCreated, slots)
}

// UpdateTimeSlot edits a slot's window or releases a booking. Admin only.
func UpdateTimeSlot(c *gin.Context) {
	slotUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time slot ID format")
		return
	}

	var slot models.TimeSlot
	if err := config.DB.First(&slot, "id = ?", slotUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Time slot not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateTimeSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Date != nil {
		slot.Date = utils.BeginningOfDay(*input.Date)
	}
	if input.StartTime != nil {
		if !utils.ValidClock(*input.StartTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time. Use HH:MM")
			return
		}
		slot.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		if !utils.ValidClock(*input.EndTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end time. Use HH:MM")
			return
		}
		slot.EndTime = *input.EndTime
	}

	start, _ := utils.ParseClock(slot.StartTime)
	end, _ := utils.ParseClock(slot.EndTime)
	if end <= start {
		utils.RespondWithError(c, http.StatusBadRequest, "End time must be after start time")
		return
	}

	if input.IsAvailable != nil {
		slot.IsAvailable = *input.IsAvailable
		if *input.IsAvailable {
			// Releasing a slot detaches the booking link
			slot.FittingID = nil
		}
	}

	if err := config.DB.Save(&slot).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update time slot")
		return
	}

	c.JSON(http.StatusOK, slot)
}
