package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// UserKey is the gin context key holding the authenticated models.User
const UserKey = "user"

// AuthMiddleware authenticates the bearer token and loads its user
func AuthMiddleware(secret string, users services.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogDebug("AuthMiddleware called")

		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			utils.LogDebug("Missing or malformed Authorization header")
			utils.Unauthorized(c, utils.ErrLoginRequired)
			c.Abort()
			return
		}

		userID, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrLoginRequired)
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.LogError("User not found: %s", userID)
				utils.Unauthorized(c, "User not found")
			} else {
				utils.LogError("Failed to load user %s: %v", userID, err)
				utils.InternalServerError(c)
			}
			c.Abort()
			return
		}

		c.Set(UserKey, *user)
		utils.LogDebug("User %s authenticated", userID)
		c.Next()
	}
}

// AdminMiddleware lets only admins through. It runs after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.LogError("User not found in context")
			utils.Unauthorized(c, utils.ErrLoginRequired)
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			utils.LogError("Non-admin user attempted admin access: %s", user.ID)
			utils.Forbidden(c, utils.ErrAdminRequired)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
