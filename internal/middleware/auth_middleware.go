package middleware

import (
	"strings"

	"vinspect/internal/models"
	"vinspect/internal/services"
	"vinspect/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets inspector context.
func AuthRequired(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("inspector_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)

		c.Next()
	}
}

// SupervisorRequired ensures the authenticated inspector can supervise.
// Must run after AuthRequired.
func SupervisorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if models.InspectorRole(role.(string)) != models.InspectorRoleSupervisor {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
