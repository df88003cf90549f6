// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/pkg/auth"
)

// Auth validates the bearer token and stores the acting staff member on the
// context. Every ledger entry records who performed it, so mutation routes
// sit behind this middleware.
func Auth(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("actor_id", claims.ActorID)
		c.Set("actor_name", claims.Name)
		c.Set("actor_role", claims.Role)

		c.Next()
	}
}

// OptionalAuth attributes the actor when a valid token is present but lets
// unauthenticated reads through.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("actor_id", claims.ActorID)
		c.Set("actor_name", claims.Name)
		c.Set("actor_role", claims.Role)

		c.Next()
	}
}

// GetActorIDFromContext extracts the acting staff member's ID from gin context
func GetActorIDFromContext(c *gin.Context) (uint, bool) {
	actorID, exists := c.Get("actor_id")
	if !exists {
		return 0, false
	}
	return actorID.(uint), true
}

// GetActorRoleFromContext extracts the acting staff member's role from gin context
func GetActorRoleFromContext(c *gin.Context) (string, bool) {
	role, exists := c.Get("actor_role")
	if !exists {
		return "", false
	}
	return role.(string), true
}
