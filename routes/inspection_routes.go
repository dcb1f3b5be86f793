package routes

import (
	"vinspect/internal/handlers"
	"vinspect/internal/middleware"
	"vinspect/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupInspectionRoutes sets up inspection lifecycle routes
func SetupInspectionRoutes(r *gin.RouterGroup, inspectionHandler *handlers.InspectionHandler, authService services.AuthService) {
	// Checkpoint catalog is public
	r.GET("/checkpoints", inspectionHandler.GetCheckpoints)

	inspections := r.Group("/inspections")
	inspections.Use(middleware.AuthRequired(authService))
	{
		inspections.POST("/", inspectionHandler.CreateInspection)
		inspections.GET("/mine", inspectionHandler.ListMine)
		inspections.GET("/drafts", inspectionHandler.ListMyDrafts)
		inspections.GET("/", inspectionHandler.ListByStatus)
		inspections.GET("/:id", inspectionHandler.GetInspection)
		inspections.PUT("/:id/scores", inspectionHandler.UpdateScores)
		inspections.POST("/:id/scores", inspectionHandler.AddScore)
		inspections.PUT("/:id/observations", inspectionHandler.UpdateObservations)
		inspections.POST("/:id/complete", inspectionHandler.CompleteInspection)
		inspections.GET("/:id/safety", inspectionHandler.PreviewSafety)
	}

	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(authService))
	{
		vehicles.GET("/:license_plate/inspections", inspectionHandler.ListByPlate)
	}
}
