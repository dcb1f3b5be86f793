package services

import (
	"context"
	"time"

	"vinspect/internal/models"
	"vinspect/internal/repositories/interfaces"
	"vinspect/internal/utils"
	"vinspect/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionService interface {
	// Lifecycle
	CreateInspection(ctx context.Context, request *CreateInspectionRequest) (*models.Inspection, error)
	UpdateCheckpointScores(ctx context.Context, inspectionID primitive.ObjectID, request *UpdateScoresRequest) (*models.Inspection, error)
	AddCheckpointScore(ctx context.Context, inspectionID primitive.ObjectID, input *CheckpointScoreInput) (*models.Inspection, error)
	UpdateObservations(ctx context.Context, inspectionID primitive.ObjectID, observations string) (*models.Inspection, error)
	CompleteInspection(ctx context.Context, inspectionID primitive.ObjectID, request *CompleteInspectionRequest) (*InspectionResultResponse, error)

	// Queries
	GetInspection(ctx context.Context, inspectionID primitive.ObjectID) (*models.Inspection, error)
	GetInspectionsByPlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	GetLatestCompletedByPlate(ctx context.Context, licensePlate string) (*InspectionResultResponse, error)
	GetInspectionsByInspector(ctx context.Context, inspectorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	GetDraftsByInspector(ctx context.Context, inspectorID primitive.ObjectID) ([]*models.Inspection, error)
	GetInspectionsByStatus(ctx context.Context, status models.InspectionStatus, params *utils.PaginationParams) ([]*models.Inspection, int64, error)

	// Safety evaluation
	PreviewSafetyResult(ctx context.Context, inspectionID primitive.ObjectID) (*InspectionResultResponse, error)
	GetRequiredCheckpoints(vehicleType models.VehicleType) ([]CheckpointInfo, error)
}

type inspectionService struct {
	inspectionRepo interfaces.InspectionRepository
	inspectorRepo  interfaces.InspectorRepository
	vehicleRepo    interfaces.VehicleRepository
	logger         *logger.Logger
}

func NewInspectionService(
	inspectionRepo interfaces.InspectionRepository,
	inspectorRepo interfaces.InspectorRepository,
	vehicleRepo interfaces.VehicleRepository,
	logger *logger.Logger,
) InspectionService {
	return &inspectionService{
		inspectionRepo: inspectionRepo,
		inspectorRepo:  inspectorRepo,
		vehicleRepo:    vehicleRepo,
		logger:         logger,
	}
}

type CreateInspectionRequest struct {
	LicensePlate string             `json:"license_plate" validate:"required,license_plate"`
	VehicleType  models.VehicleType `json:"vehicle_type" validate:"required"`
	InspectorID  primitive.ObjectID `json:"inspector_id" validate:"required"`
}

type CheckpointScoreInput struct {
	CheckpointType models.CheckpointType `json:"checkpoint_type" validate:"required"`
	Score          int                   `json:"score" validate:"required,checkpoint_score"`
	Notes          string                `json:"notes"`
}

type UpdateScoresRequest struct {
	Scores []CheckpointScoreInput `json:"scores" validate:"required,min=1,dive"`
}

type CompleteInspectionRequest struct {
	FinalObservations *string `json:"final_observations"`
}

type CheckpointInfo struct {
	Type        models.CheckpointType `json:"type"`
	Description string                `json:"description"`
}

type InspectionResultResponse struct {
	Inspection   *models.Inspection  `json:"inspection"`
	SafetyResult models.SafetyResult `json:"safety_result"`
	Verdict      string              `json:"verdict"`
}

// Lifecycle
func (s *inspectionService) CreateInspection(ctx context.Context, request *CreateInspectionRequest) (*models.Inspection, error) {
	if !utils.IsValidLicensePlate(request.LicensePlate) {
		return nil, utils.NewValidationError("INVALID_LICENSE_PLATE", "invalid license plate format")
	}
	if !request.VehicleType.IsValid() {
		return nil, utils.NewValidationError("INVALID_VEHICLE_TYPE", "unsupported vehicle type")
	}

	inspector, err := s.inspectorRepo.GetByID(ctx, request.InspectorID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTOR_NOT_FOUND", utils.ErrInspectorNotFound)
	}
	if !inspector.CanPerformInspections() {
		s.logger.LogBusinessRuleViolation("inactive_inspector_inspection", map[string]interface{}{
			"inspector_id": inspector.ID.Hex(),
			"status":       inspector.Status,
		})
		return nil, utils.NewUnauthorizedError("INSPECTOR_NOT_AUTHORIZED", utils.ErrInspectorNotAuthorized)
	}

	inspection, err := models.NewInspection(request.LicensePlate, request.VehicleType, request.InspectorID)
	if err != nil {
		return nil, utils.NewValidationError("INVALID_INSPECTION", err.Error())
	}

	if err := s.syncVehicleRecord(ctx, inspection.LicensePlate, inspection.VehicleType); err != nil {
		return nil, err
	}

	if err := s.inspectionRepo.Create(ctx, inspection); err != nil {
		return nil, utils.NewInternalError("INSPECTION_CREATE_FAILED", "failed to create inspection", err)
	}

	s.logger.LogInspectionEvent(inspection.ID, "inspection_created", map[string]interface{}{
		"license_plate": inspection.LicensePlate,
		"vehicle_type":  inspection.VehicleType,
		"inspector_id":  inspection.InspectorID.Hex(),
	})

	return inspection, nil
}

func (s *inspectionService) UpdateCheckpointScores(ctx context.Context, inspectionID primitive.ObjectID, request *UpdateScoresRequest) (*models.Inspection, error) {
	inspection, err := s.getEditableInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}

	scores := make([]models.CheckpointScore, 0, len(request.Scores))
	for _, input := range request.Scores {
		score, err := models.NewCheckpointScore(input.CheckpointType, input.Score, input.Notes)
		if err != nil {
			return nil, utils.NewValidationError("INVALID_CHECKPOINT_SCORE", err.Error())
		}
		scores = append(scores, score)
	}

	if err := inspection.UpdateCheckpointScores(scores); err != nil {
		return nil, utils.NewValidationError("INVALID_CHECKPOINT_SCORES", err.Error())
	}

	if err := s.inspectionRepo.Update(ctx, inspection); err != nil {
		return nil, utils.NewInternalError("INSPECTION_UPDATE_FAILED", "failed to update inspection", err)
	}

	s.logger.LogInspectionEvent(inspection.ID, "scores_updated", map[string]interface{}{
		"score_count": len(scores),
		"total_score": inspection.TotalScore(),
	})

	return inspection, nil
}

func (s *inspectionService) AddCheckpointScore(ctx context.Context, inspectionID primitive.ObjectID, input *CheckpointScoreInput) (*models.Inspection, error) {
	inspection, err := s.getEditableInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}

	score, err := models.NewCheckpointScore(input.CheckpointType, input.Score, input.Notes)
	if err != nil {
		return nil, utils.NewValidationError("INVALID_CHECKPOINT_SCORE", err.Error())
	}

	if err := inspection.AddCheckpointScore(score); err != nil {
		return nil, utils.NewValidationError("INVALID_CHECKPOINT_SCORE", err.Error())
	}

	if err := s.inspectionRepo.Update(ctx, inspection); err != nil {
		return nil, utils.NewInternalError("INSPECTION_UPDATE_FAILED", "failed to update inspection", err)
	}

	s.logger.LogInspectionEvent(inspection.ID, "score_recorded", map[string]interface{}{
		"checkpoint_type": score.CheckpointType,
		"score":           score.Score,
	})

	return inspection, nil
}

func (s *inspectionService) UpdateObservations(ctx context.Context, inspectionID primitive.ObjectID, observations string) (*models.Inspection, error) {
	inspection, err := s.getEditableInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}

	if err := inspection.UpdateObservations(observations); err != nil {
		return nil, utils.NewValidationError("INVALID_OBSERVATIONS", err.Error())
	}

	if err := s.inspectionRepo.Update(ctx, inspection); err != nil {
		return nil, utils.NewInternalError("INSPECTION_UPDATE_FAILED", "failed to update inspection", err)
	}

	return inspection, nil
}

func (s *inspectionService) CompleteInspection(ctx context.Context, inspectionID primitive.ObjectID, request *CompleteInspectionRequest) (*InspectionResultResponse, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTION_NOT_FOUND", utils.ErrInspectionNotFound)
	}

	if err := inspection.Complete(request.FinalObservations); err != nil {
		if inspection.IsCompleted() {
			return nil, utils.NewConflictError("INSPECTION_ALREADY_COMPLETED", err.Error())
		}
		return nil, utils.NewValidationError("INSPECTION_INCOMPLETE", err.Error())
	}

	safetyResult, err := inspection.CalculateSafetyResult()
	if err != nil {
		return nil, utils.NewInternalError("SAFETY_CALCULATION_FAILED", "failed to calculate safety result", err)
	}

	if err := s.inspectionRepo.Update(ctx, inspection); err != nil {
		return nil, utils.NewInternalError("INSPECTION_UPDATE_FAILED", "failed to complete inspection", err)
	}

	s.logger.LogInspectionEvent(inspection.ID, "inspection_completed", map[string]interface{}{
		"license_plate":         inspection.LicensePlate,
		"total_score":           safetyResult.TotalScore,
		"is_safe":               safetyResult.IsSafe,
		"requires_reinspection": safetyResult.RequiresReinspection,
		"verdict":               safetyResult.Status(),
	})

	return &InspectionResultResponse{
		Inspection:   inspection,
		SafetyResult: safetyResult,
		Verdict:      safetyResult.Status(),
	}, nil
}

// Queries
func (s *inspectionService) GetInspection(ctx context.Context, inspectionID primitive.ObjectID) (*models.Inspection, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTION_NOT_FOUND", utils.ErrInspectionNotFound)
	}
	return inspection, nil
}

func (s *inspectionService) GetInspectionsByPlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	normalized := models.NormalizeLicensePlate(licensePlate)
	if !utils.IsValidLicensePlate(normalized) {
		return nil, 0, utils.NewValidationError("INVALID_LICENSE_PLATE", "invalid license plate format")
	}

	inspections, total, err := s.inspectionRepo.GetByLicensePlate(ctx, normalized, params)
	if err != nil {
		return nil, 0, utils.NewInternalError("INSPECTION_QUERY_FAILED", "failed to list inspections", err)
	}
	return inspections, total, nil
}

func (s *inspectionService) GetLatestCompletedByPlate(ctx context.Context, licensePlate string) (*InspectionResultResponse, error) {
	normalized := models.NormalizeLicensePlate(licensePlate)
	if !utils.IsValidLicensePlate(normalized) {
		return nil, utils.NewValidationError("INVALID_LICENSE_PLATE", "invalid license plate format")
	}

	inspection, err := s.inspectionRepo.GetLatestCompletedByLicensePlate(ctx, normalized)
	if err != nil {
		return nil, utils.NewNotFoundError("NO_COMPLETED_INSPECTION", "no completed inspection found for vehicle")
	}

	safetyResult, err := inspection.CalculateSafetyResult()
	if err != nil {
		return nil, utils.NewInternalError("SAFETY_CALCULATION_FAILED", "failed to calculate safety result", err)
	}

	return &InspectionResultResponse{
		Inspection:   inspection,
		SafetyResult: safetyResult,
		Verdict:      safetyResult.Status(),
	}, nil
}

func (s *inspectionService) GetInspectionsByInspector(ctx context.Context, inspectorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	inspections, total, err := s.inspectionRepo.GetByInspector(ctx, inspectorID, params)
	if err != nil {
		return nil, 0, utils.NewInternalError("INSPECTION_QUERY_FAILED", "failed to list inspections", err)
	}
	return inspections, total, nil
}

func (s *inspectionService) GetDraftsByInspector(ctx context.Context, inspectorID primitive.ObjectID) ([]*models.Inspection, error) {
	drafts, err := s.inspectionRepo.GetDraftsByInspector(ctx, inspectorID)
	if err != nil {
		return nil, utils.NewInternalError("INSPECTION_QUERY_FAILED", "failed to list draft inspections", err)
	}
	return drafts, nil
}

func (s *inspectionService) GetInspectionsByStatus(ctx context.Context, status models.InspectionStatus, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	inspections, total, err := s.inspectionRepo.GetByStatus(ctx, status, params)
	if err != nil {
		return nil, 0, utils.NewInternalError("INSPECTION_QUERY_FAILED", "failed to list inspections", err)
	}
	return inspections, total, nil
}

// Safety evaluation
func (s *inspectionService) PreviewSafetyResult(ctx context.Context, inspectionID primitive.ObjectID) (*InspectionResultResponse, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTION_NOT_FOUND", utils.ErrInspectionNotFound)
	}

	if len(inspection.Scores()) == 0 {
		return nil, utils.NewValidationError("NO_SCORES", "inspection has no checkpoint scores yet")
	}

	safetyResult, err := inspection.CalculateSafetyResult()
	if err != nil {
		return nil, utils.NewValidationError("SAFETY_CALCULATION_FAILED", err.Error())
	}

	return &InspectionResultResponse{
		Inspection:   inspection,
		SafetyResult: safetyResult,
		Verdict:      safetyResult.Status(),
	}, nil
}

func (s *inspectionService) GetRequiredCheckpoints(vehicleType models.VehicleType) ([]CheckpointInfo, error) {
	if !vehicleType.IsValid() {
		return nil, utils.NewValidationError("INVALID_VEHICLE_TYPE", "unsupported vehicle type")
	}

	required := models.RequiredCheckpoints(vehicleType)
	infos := make([]CheckpointInfo, 0, len(required))
	for _, checkpointType := range required {
		infos = append(infos, CheckpointInfo{
			Type:        checkpointType,
			Description: checkpointType.Description(),
		})
	}
	return infos, nil
}

// Helper methods

// syncVehicleRecord registers the vehicle on first inspection and corrects
// the type on placeholder records created by the booking flow.
func (s *inspectionService) syncVehicleRecord(ctx context.Context, licensePlate string, vehicleType models.VehicleType) error {
	vehicle, err := s.vehicleRepo.GetByLicensePlate(ctx, licensePlate)
	if err != nil {
		now := time.Now().UTC()
		vehicle = &models.Vehicle{
			LicensePlate: licensePlate,
			VehicleType:  vehicleType,
			Make:         "Unknown",
			Model:        "Unknown",
			Year:         now.Year(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
			return utils.NewInternalError("VEHICLE_CREATE_FAILED", "failed to register vehicle", err)
		}
		return nil
	}

	if vehicle.VehicleType == vehicleType {
		return nil
	}
	vehicle.VehicleType = vehicleType
	vehicle.UpdatedAt = time.Now().UTC()
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return utils.NewInternalError("VEHICLE_UPDATE_FAILED", "failed to update vehicle", err)
	}
	return nil
}

func (s *inspectionService) getEditableInspection(ctx context.Context, inspectionID primitive.ObjectID) (*models.Inspection, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTION_NOT_FOUND", utils.ErrInspectionNotFound)
	}
	if !inspection.IsEditable() {
		return nil, utils.NewConflictError("INSPECTION_COMPLETED", "cannot modify a completed inspection")
	}
	return inspection, nil
}
