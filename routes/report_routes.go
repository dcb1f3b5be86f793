package routes

import (
	"vinspect/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes sets up public vehicle report routes
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reports := r.Group("/reports")
	{
		reports.GET("/:license_plate", reportHandler.GetVehicleReport)
		reports.GET("/:license_plate/history", reportHandler.GetVehicleHistory)
	}
}
