package validators

import (
	"fmt"

	"vinspect/internal/models"
	"vinspect/internal/services"
)

func ValidateCreateInspection(req *services.CreateInspectionRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.VehicleType != "" && !req.VehicleType.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "VehicleType",
			Tag:     "vehicle_type",
			Value:   string(req.VehicleType),
			Message: "Vehicle type must be car or motorcycle",
		})
	}

	if req.InspectorID.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "InspectorID",
			Tag:     "required",
			Message: "InspectorID is required",
		})
	}

	return errors
}

func ValidateUpdateScores(req *services.UpdateScoresRequest) ValidationErrors {
	errors := ValidateStruct(req)

	seen := make(map[models.CheckpointType]bool, len(req.Scores))
	for i, score := range req.Scores {
		if !score.CheckpointType.IsValid() {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("Scores[%d].CheckpointType", i),
				Tag:     "checkpoint_type",
				Value:   string(score.CheckpointType),
				Message: "Unknown checkpoint type",
			})
			continue
		}
		if seen[score.CheckpointType] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("Scores[%d].CheckpointType", i),
				Tag:     "duplicate",
				Value:   string(score.CheckpointType),
				Message: "Duplicate checkpoint type",
			})
		}
		seen[score.CheckpointType] = true
	}

	return errors
}

func ValidateCheckpointScore(req *services.CheckpointScoreInput) ValidationErrors {
	errors := ValidateStruct(req)

	if req.CheckpointType != "" && !req.CheckpointType.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "CheckpointType",
			Tag:     "checkpoint_type",
			Value:   string(req.CheckpointType),
			Message: "Unknown checkpoint type",
		})
	}

	return errors
}
