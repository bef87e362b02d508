package controllers

import (
	"net/http"
	"time"

	"golffit-backend/config"
	"golffit-backend/models"
	"golffit-backend/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Authenticated verifies the bearer token and resolves the acting user
// from the database. Every authenticated route sees a fully loaded,
// immutable actor; role checks are never trusted from the client.
func Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			utils.RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		var user models.User
		if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
			// A token whose subject no longer exists is unauthenticated
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved actor is an admin.
// Must run after Authenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentUser(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !actor.IsAdmin() {
			utils.RespondWithError(c, http.StatusForbidden, "Access denied. Admin role required.")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the actor resolved by Authenticated.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// canAccessFitting is the single ownership predicate: a fitting is
// visible to its owning customer and to admins, nobody else.
func canAccessFitting(actor models.User, f models.Fitting) bool {
	return actor.IsAdmin() || actor.ID == f.CustomerID
}

func touchLastLogin(user *models.User) {
	now := time.Now()
	config.DB.Model(user).Update("last_login", &now)
}
