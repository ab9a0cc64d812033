package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// resolveUser validates the bearer token and loads a fresh user record so a
// role change takes effect immediately, not at token expiry.
func resolveUser(c *gin.Context, authService service.AuthService, users repository.UserRepository) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}

	// format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}

	user, err := users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}

	return user, true
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(authService service.AuthService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, authService, users)
		if !ok {
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a present
// credential that fails validation.
func OptionalAuth(authService service.AuthService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, authService, users)
		if !ok {
			c.Abort()
			return
		}
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by the auth middleware, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
