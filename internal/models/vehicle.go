package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
)

func (t VehicleType) IsValid() bool {
	return t == VehicleTypeCar || t == VehicleTypeMotorcycle
}

// Vehicle is the registry record for a plate seen by the facility. Bookings
// create it lazily with placeholder details when the plate is unknown.
type Vehicle struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LicensePlate string             `json:"license_plate" bson:"license_plate" validate:"required"`
	VehicleType  VehicleType        `json:"vehicle_type" bson:"vehicle_type" validate:"required"`
	Make         string             `json:"make" bson:"make"`
	Model        string             `json:"model" bson:"model"`
	Year         int                `json:"year" bson:"year"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// safetyPolicy maps a set of checkpoint scores to a SafetyResult for one
// vehicle type. Both current policies are identical; the table keeps the seam
// open for divergence without an inheritance hierarchy.
type safetyPolicy func(scores []CheckpointScore) (SafetyResult, error)

var safetyPolicies = map[VehicleType]safetyPolicy{
	VehicleTypeCar:        standardSafetyPolicy("Vehicle"),
	VehicleTypeMotorcycle: standardSafetyPolicy("Motorcycle"),
}

// RequiredCheckpoints returns the checkpoints a vehicle of this type must
// have scored before an inspection can complete. Identical for both types
// today.
func RequiredCheckpoints(vehicleType VehicleType) []CheckpointType {
	return AllCheckpointTypes()
}

// CalculateSafety runs the per-type policy over the supplied scores.
func CalculateSafety(vehicleType VehicleType, scores []CheckpointScore) (SafetyResult, error) {
	policy, ok := safetyPolicies[vehicleType]
	if !ok {
		return SafetyResult{}, fmt.Errorf("unsupported vehicle type: %s", vehicleType)
	}
	return policy(scores)
}

func standardSafetyPolicy(subject string) safetyPolicy {
	return func(scores []CheckpointScore) (SafetyResult, error) {
		if len(scores) == 0 {
			return SafetyResult{}, fmt.Errorf("cannot calculate safety result without checkpoint scores")
		}

		totalScore := 0
		var criticalFailures []CheckpointScore
		for _, score := range scores {
			totalScore += score.Score
			if score.IsCriticalFailure() {
				criticalFailures = append(criticalFailures, score)
			}
		}

		maxScore := len(AllCheckpointTypes()) * MaxCheckpointScore

		// 80% of the maximum to pass, 40% floor before mandatory reinspection.
		isSafe := totalScore >= maxScore*80/100 && len(criticalFailures) == 0
		requiresReinspection := totalScore < maxScore*40/100 || len(criticalFailures) > 0

		var observation strings.Builder
		if requiresReinspection {
			if len(criticalFailures) > 0 {
				sort.Slice(criticalFailures, func(i, j int) bool {
					return criticalFailures[i].CheckpointType < criticalFailures[j].CheckpointType
				})
				items := make([]string, 0, len(criticalFailures))
				for _, failure := range criticalFailures {
					items = append(items, fmt.Sprintf("%s: %d/10", failure.CheckpointType, failure.Score))
				}
				observation.WriteString(fmt.Sprintf("Critical failures in: %s. ", strings.Join(items, ", ")))
			}
			if totalScore < maxScore*40/100 {
				observation.WriteString(fmt.Sprintf("Total score too low: %d/%d. ", totalScore, maxScore))
			}
			observation.WriteString(fmt.Sprintf("%s requires re-inspection before approval.", subject))
		}

		return NewSafetyResult(isSafe, totalScore, maxScore, requiresReinspection, strings.TrimSpace(observation.String()))
	}
}
