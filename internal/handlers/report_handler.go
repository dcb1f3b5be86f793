package handlers

import (
	"vinspect/internal/services"
	"vinspect/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	inspectionService services.InspectionService
}

func NewReportHandler(inspectionService services.InspectionService) *ReportHandler {
	return &ReportHandler{
		inspectionService: inspectionService,
	}
}

// GetVehicleReport returns the latest completed inspection with its safety verdict
func (h *ReportHandler) GetVehicleReport(c *gin.Context) {
	report, err := h.inspectionService.GetLatestCompletedByPlate(c.Request.Context(), c.Param("license_plate"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle safety report", report)
}

// GetVehicleHistory lists all inspections recorded for a vehicle
func (h *ReportHandler) GetVehicleHistory(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	inspections, total, err := h.inspectionService.GetInspectionsByPlate(c.Request.Context(), c.Param("license_plate"), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicle inspection history", inspections, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(inspections),
	})
}
