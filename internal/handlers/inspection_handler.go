package handlers

import (
	"vinspect/internal/models"
	"vinspect/internal/services"
	"vinspect/internal/utils"
	"vinspect/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionHandler struct {
	inspectionService services.InspectionService
}

func NewInspectionHandler(inspectionService services.InspectionService) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
	}
}

// CreateInspection starts a new draft inspection for the authenticated inspector
func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	inspectorID, ok := inspectorFromContext(c)
	if !ok {
		return
	}

	var request services.CreateInspectionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	request.InspectorID = inspectorID

	if errs := validators.ValidateCreateInspection(&request); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	inspection, err := h.inspectionService.CreateInspection(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Inspection created successfully", inspection)
}

// GetInspection returns a single inspection
func (h *InspectionHandler) GetInspection(c *gin.Context) {
	inspectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	inspection, err := h.inspectionService.GetInspection(c.Request.Context(), inspectionID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection retrieved", inspection)
}

// UpdateScores replaces the checkpoint scores of a draft inspection
func (h *InspectionHandler) UpdateScores(c *gin.Context) {
	inspectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	var request services.UpdateScoresRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateScores(&request); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	inspection, err := h.inspectionService.UpdateCheckpointScores(c.Request.Context(), inspectionID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Checkpoint scores updated", inspection)
}

// AddScore records or overwrites a single checkpoint score
func (h *InspectionHandler) AddScore(c *gin.Context) {
	inspectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	var request services.CheckpointScoreInput
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCheckpointScore(&request); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	inspection, err := h.inspectionService.AddCheckpointScore(c.Request.Context(), inspectionID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Checkpoint score recorded", inspection)
}

// UpdateObservations sets free-form observations on a draft inspection
func (h *InspectionHandler) UpdateObservations(c *gin.Context) {
	inspectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	var request struct {
		Observations string `json:"observations"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	inspection, err := h.inspectionService.UpdateObservations(c.Request.Context(), inspectionID, request.Observations)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Observations updated", inspection)
}

// CompleteInspection finalizes the inspection and returns the safety verdict
func (h *InspectionHandler) CompleteInspection(c *gin.Context) {
	inspectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	var request services.CompleteInspectionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.inspectionService.CompleteInspection(c.Request.Context(), inspectionID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection completed", result)
}

// PreviewSafety computes the safety result without completing the inspection
func (h *InspectionHandler) PreviewSafety(c *gin.Context) {
	inspectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	result, err := h.inspectionService.PreviewSafetyResult(c.Request.Context(), inspectionID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Safety preview", result)
}

// ListByPlate lists inspections for a vehicle
func (h *InspectionHandler) ListByPlate(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	inspections, total, err := h.inspectionService.GetInspectionsByPlate(c.Request.Context(), c.Param("license_plate"), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspections retrieved", inspections, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(inspections),
	})
}

// ListMine lists the authenticated inspector's inspections
func (h *InspectionHandler) ListMine(c *gin.Context) {
	inspectorID, ok := inspectorFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	inspections, total, err := h.inspectionService.GetInspectionsByInspector(c.Request.Context(), inspectorID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspections retrieved", inspections, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(inspections),
	})
}

// ListMyDrafts lists the authenticated inspector's draft inspections
func (h *InspectionHandler) ListMyDrafts(c *gin.Context) {
	inspectorID, ok := inspectorFromContext(c)
	if !ok {
		return
	}

	drafts, err := h.inspectionService.GetDraftsByInspector(c.Request.Context(), inspectorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Draft inspections retrieved", drafts)
}

// ListByStatus lists inspections by lifecycle status
func (h *InspectionHandler) ListByStatus(c *gin.Context) {
	status := models.InspectionStatus(c.Query("status"))
	if status != models.InspectionStatusDraft && status != models.InspectionStatusCompleted {
		utils.BadRequestResponse(c, "status must be draft or completed")
		return
	}

	params := utils.GetPaginationParams(c)

	inspections, total, err := h.inspectionService.GetInspectionsByStatus(c.Request.Context(), status, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspections retrieved", inspections, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(inspections),
	})
}

// GetCheckpoints returns the checkpoint catalog for a vehicle type
func (h *InspectionHandler) GetCheckpoints(c *gin.Context) {
	vehicleType := models.VehicleType(c.DefaultQuery("vehicle_type", string(models.VehicleTypeCar)))

	checkpoints, err := h.inspectionService.GetRequiredCheckpoints(vehicleType)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Required checkpoints", checkpoints)
}
