package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/services"
	"uploadhub_backend/pkg/contextkeys"
)

// AuthMiddleware validates the bearer token and resolves the acting
// identity, with its groups and pipeline binding, into the context.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actor, err := authService.ResolveActor(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := logger.WithUsername(c.Request.Context(), actor.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(contextkeys.ActorContextKey), actor)
		c.Next()
	}
}

// GetActor extracts the resolved identity set by AuthMiddleware.
func GetActor(c *gin.Context) (*auth.Actor, bool) {
	val, exists := c.Get(string(contextkeys.ActorContextKey))
	if !exists {
		return nil, false
	}
	actor, ok := val.(*auth.Actor)
	return actor, ok
}
