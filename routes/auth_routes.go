package routes

import (
	"vinspect/internal/handlers"
	"vinspect/internal/middleware"
	"vinspect/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up authentication and inspector administration routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, authService services.AuthService) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthRequired(authService))
	{
		protected.POST("/logout", authHandler.Logout)
		protected.PUT("/password", authHandler.ChangePassword)
		protected.GET("/me", authHandler.GetProfile)
	}

	admin := r.Group("/inspectors")
	admin.Use(middleware.AuthRequired(authService), middleware.SupervisorRequired())
	{
		admin.GET("/", authHandler.ListInspectors)
		admin.PUT("/:id/status", authHandler.SetInspectorStatus)
		admin.PUT("/:id/role", authHandler.UpdateInspectorRole)
	}
}
