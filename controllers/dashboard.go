package controllers

import (
	"net/http"
	"time"

	"golffit-backend/config"
	"golffit-backend/models"
	"golffit-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers   int64            `json:"totalCustomers"`
	TotalFittings    int64            `json:"totalFittings"`
	StatusCounts     map[string]int64 `json:"statusCounts"`
	UpcomingFittings []models.Fitting `json:"upcomingFittings"`
}

// GetDashboardOverview summarizes the back office: customer and fitting
// totals, per-status counts, and fittings scheduled over the next week.
// Admin only.
func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview

	if err := config.DB.Model(&models.User{}).
		Where("role = ?", models.RoleConsumer).
		Count(&overview.TotalCustomers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count customers")
		return
	}

	if err := config.DB.Model(&models.Fitting{}).Count(&overview.TotalFittings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count fittings")
		return
	}

	overview.StatusCounts = make(map[string]int64, len(models.FittingStatuses))
	for _, status := range models.FittingStatuses {
		var n int64
		if err := config.DB.Model(&models.Fitting{}).
			Where("status = ?", status).
			Count(&n).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count fittings")
			return
		}
		overview.StatusCounts[status] = n
	}

	today := utils.BeginningOfDay(time.Now())
	weekOut := today.AddDate(0, 0, 7)
	if err := config.DB.
		Where("scheduled_date >= ? AND scheduled_date < ? AND status NOT IN ?",
			today, weekOut, []string{models.StatusCanceled, models.StatusCompleted}).
		Order("scheduled_date ASC").
		Find(&overview.UpcomingFittings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve upcoming fittings")
		return
	}

	c.JSON(http.StatusOK, overview)
}
