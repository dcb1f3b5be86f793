package models

import "fmt"

type CheckpointType string

const (
	CheckpointBrakingSystem    CheckpointType = "braking_system"
	CheckpointSteeringSystem   CheckpointType = "steering_system"
	CheckpointSuspensionSystem CheckpointType = "suspension_system"
	CheckpointTires            CheckpointType = "tires"
	CheckpointLightingSystem   CheckpointType = "lighting_system"
	CheckpointGasEmissions     CheckpointType = "gas_emissions"
	CheckpointElectricalSystem CheckpointType = "electrical_system"
	CheckpointBodyStructure    CheckpointType = "body_structure"
)

const (
	MinCheckpointScore = 1
	MaxCheckpointScore = 10

	// Scores below this threshold count as critical failures.
	CriticalScoreThreshold = 5
)

var checkpointDescriptions = map[CheckpointType]string{
	CheckpointBrakingSystem:    "Brake pads, brake fluid, brake lines, parking brake",
	CheckpointSteeringSystem:   "Steering wheel play, power steering, alignment",
	CheckpointSuspensionSystem: "Shock absorbers, springs, ball joints, wheel bearings",
	CheckpointTires:            "Tread depth, tire pressure, sidewall condition, wear patterns",
	CheckpointLightingSystem:   "Headlights, taillights, brake lights, turn signals",
	CheckpointGasEmissions:     "Exhaust system, catalytic converter, emission levels",
	CheckpointElectricalSystem: "Battery, alternator, starter, wiring, horn",
	CheckpointBodyStructure:    "Frame integrity, doors, windows, mirrors, seatbelts",
}

// AllCheckpointTypes returns the full checkpoint catalog in inspection order.
func AllCheckpointTypes() []CheckpointType {
	return []CheckpointType{
		CheckpointBrakingSystem,
		CheckpointSteeringSystem,
		CheckpointSuspensionSystem,
		CheckpointTires,
		CheckpointLightingSystem,
		CheckpointGasEmissions,
		CheckpointElectricalSystem,
		CheckpointBodyStructure,
	}
}

func (t CheckpointType) IsValid() bool {
	_, ok := checkpointDescriptions[t]
	return ok
}

func (t CheckpointType) Description() string {
	if desc, ok := checkpointDescriptions[t]; ok {
		return desc
	}
	return "Unknown checkpoint"
}

// CheckpointScore is an immutable value representing one scored checkpoint.
// Construct it through NewCheckpointScore so the score range is enforced.
type CheckpointScore struct {
	CheckpointType CheckpointType `json:"checkpoint_type" bson:"checkpoint_type"`
	Score          int            `json:"score" bson:"score"`
	Notes          string         `json:"notes,omitempty" bson:"notes,omitempty"`
}

func NewCheckpointScore(checkpointType CheckpointType, score int, notes string) (CheckpointScore, error) {
	if !checkpointType.IsValid() {
		return CheckpointScore{}, fmt.Errorf("unknown checkpoint type: %s", checkpointType)
	}
	if score < MinCheckpointScore || score > MaxCheckpointScore {
		return CheckpointScore{}, fmt.Errorf("score must be between %d and %d inclusive", MinCheckpointScore, MaxCheckpointScore)
	}

	return CheckpointScore{
		CheckpointType: checkpointType,
		Score:          score,
		Notes:          notes,
	}, nil
}

func (s CheckpointScore) IsCriticalFailure() bool {
	return s.Score < CriticalScoreThreshold
}

func (s CheckpointScore) IsExcellent() bool {
	return s.Score >= 9
}

// PerformanceLevel maps the raw score onto a human-readable tier.
func (s CheckpointScore) PerformanceLevel() string {
	switch {
	case s.Score >= 9:
		return "EXCELLENT"
	case s.Score >= 7:
		return "GOOD"
	case s.Score >= 5:
		return "ACCEPTABLE"
	case s.Score >= 3:
		return "POOR"
	default:
		return "CRITICAL"
	}
}
