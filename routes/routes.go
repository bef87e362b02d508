package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"golffit-backend/config"
	"golffit-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Golf Fitting API is running",
			"timestamp": time.Now(),
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(controllers.Authenticated())
		auth.GET("/me", controllers.Me)
	}

	users := r.Group("/users")
	users.Use(controllers.Authenticated())
	{
		users.GET("/profile", controllers.GetProfile)
		users.PUT("/profile", controllers.UpdateProfile)
		users.POST("/change-password", controllers.ChangePassword)

		admin := users.Group("", controllers.RequireAdmin())
		{
			admin.GET("", controllers.GetUsers)
			admin.GET("/:id", controllers.GetUser)
			admin.DELETE("/:id", controllers.DeleteUser)
		}
	}

	fittings := r.Group("/fittings")
	fittings.Use(controllers.Authenticated())
	{
		fittings.POST("/request", controllers.CreateFittingRequest)
		fittings.GET("/my-fittings", controllers.GetMyFittings)
		fittings.GET("/all", controllers.RequireAdmin(), controllers.GetAllFittings)
		fittings.GET("/:id", controllers.GetFitting)
		fittings.PUT("/:id", controllers.RequireAdmin(), controllers.UpdateFitting)
		fittings.PUT("/:id/status", controllers.RequireAdmin(), controllers.UpdateFittingStatus)
		fittings.PUT("/:id/measurements", controllers.RequireAdmin(), controllers.UpdateFittingMeasurements)
		fittings.PUT("/:id/cancel", controllers.CancelFitting)
	}

	schedule := r.Group("/schedule")
	schedule.Use(controllers.Authenticated())
	{
		schedule.GET("/availability", controllers.GetAvailability)
		schedule.POST("/book", controllers.BookSlot)
		schedule.GET("/calendar", controllers.GetCalendar)
		schedule.POST("/slots", controllers.RequireAdmin(), controllers.CreateTimeSlots)
		schedule.PUT("/slots/:id", controllers.RequireAdmin(), controllers.UpdateTimeSlot)
	}

	content := r.Group("/content")
	content.Use(controllers.Authenticated())
	{
		content.GET("/banner", controllers.GetBannerContent)
		content.PUT("/banner", controllers.RequireAdmin(), controllers.UpdateBannerContent)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(controllers.Authenticated(), controllers.RequireAdmin())
	{
		dashboard.GET("", controllers.GetDashboardOverview)
	}

	return r
}
