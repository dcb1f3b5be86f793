package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionStatus string

const (
	InspectionStatusDraft     InspectionStatus = "draft"
	InspectionStatusCompleted InspectionStatus = "completed"
)

// Inspection is the report an inspector builds against the checkpoint
// catalog. It starts in draft, accepts score mutations, and freezes once
// completed. Mutate it only through its methods; the checkpoint slice is
// never handed out directly.
type Inspection struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LicensePlate     string             `json:"license_plate" bson:"license_plate"`
	VehicleType      VehicleType        `json:"vehicle_type" bson:"vehicle_type"`
	InspectorID      primitive.ObjectID `json:"inspector_id" bson:"inspector_id"`
	CheckpointScores []CheckpointScore  `json:"checkpoint_scores" bson:"checkpoint_scores"`
	Observations     string             `json:"observations" bson:"observations"`
	Status           InspectionStatus   `json:"status" bson:"status"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// NormalizeLicensePlate trims, uppercases and strips internal spaces and
// hyphens so the same physical plate always maps to one stored key.
func NormalizeLicensePlate(plate string) string {
	normalized := strings.ToUpper(strings.TrimSpace(plate))
	normalized = strings.ReplaceAll(normalized, " ", "")
	return strings.ReplaceAll(normalized, "-", "")
}

func NewInspection(licensePlate string, vehicleType VehicleType, inspectorID primitive.ObjectID) (*Inspection, error) {
	if strings.TrimSpace(licensePlate) == "" {
		return nil, fmt.Errorf("license plate cannot be empty")
	}
	if !vehicleType.IsValid() {
		return nil, fmt.Errorf("invalid vehicle type: %s", vehicleType)
	}
	if inspectorID.IsZero() {
		return nil, fmt.Errorf("inspector ID is required")
	}

	now := time.Now().UTC()
	return &Inspection{
		LicensePlate: NormalizeLicensePlate(licensePlate),
		VehicleType:  vehicleType,
		InspectorID:  inspectorID,
		Status:       InspectionStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (i *Inspection) IsEditable() bool {
	return i.Status == InspectionStatusDraft
}

func (i *Inspection) IsCompleted() bool {
	return i.Status == InspectionStatusCompleted
}

// Scores returns a defensive copy of the checkpoint scores.
func (i *Inspection) Scores() []CheckpointScore {
	scores := make([]CheckpointScore, len(i.CheckpointScores))
	copy(scores, i.CheckpointScores)
	return scores
}

// ScoreFor returns the score recorded for a checkpoint, if any.
func (i *Inspection) ScoreFor(checkpointType CheckpointType) (CheckpointScore, bool) {
	for _, score := range i.CheckpointScores {
		if score.CheckpointType == checkpointType {
			return score, true
		}
	}
	return CheckpointScore{}, false
}

// UpdateCheckpointScores replaces the full score set. Draft only.
func (i *Inspection) UpdateCheckpointScores(scores []CheckpointScore) error {
	if i.IsCompleted() {
		return fmt.Errorf("cannot update scores for completed inspection")
	}
	if err := validateScoreSet(scores, i.VehicleType); err != nil {
		return err
	}

	i.CheckpointScores = make([]CheckpointScore, len(scores))
	copy(i.CheckpointScores, scores)
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// AddCheckpointScore upserts a single score, replacing any prior score for
// the same checkpoint type. Draft only.
func (i *Inspection) AddCheckpointScore(score CheckpointScore) error {
	if i.IsCompleted() {
		return fmt.Errorf("cannot update scores for completed inspection")
	}
	if err := validateScoreSet([]CheckpointScore{score}, i.VehicleType); err != nil {
		return err
	}

	kept := i.CheckpointScores[:0]
	for _, existing := range i.CheckpointScores {
		if existing.CheckpointType != score.CheckpointType {
			kept = append(kept, existing)
		}
	}
	i.CheckpointScores = append(kept, score)
	i.UpdatedAt = time.Now().UTC()
	return nil
}

func (i *Inspection) UpdateObservations(observations string) error {
	if i.IsCompleted() {
		return fmt.Errorf("cannot update observations for completed inspection")
	}
	i.Observations = strings.TrimSpace(observations)
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the inspection to its terminal state. Every required
// checkpoint must have been scored.
func (i *Inspection) Complete(finalObservations *string) error {
	if i.IsCompleted() {
		return fmt.Errorf("inspection is already completed")
	}

	if missing := i.MissingCheckpoints(); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, checkpoint := range missing {
			names = append(names, string(checkpoint))
		}
		return fmt.Errorf("missing required checkpoint scores: %s", strings.Join(names, ", "))
	}

	if finalObservations != nil {
		i.Observations = strings.TrimSpace(*finalObservations)
	}
	i.Status = InspectionStatusCompleted
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// CalculateSafetyResult delegates to the vehicle-type policy. It is pure and
// may be called on completed inspections.
func (i *Inspection) CalculateSafetyResult() (SafetyResult, error) {
	if len(i.CheckpointScores) == 0 {
		return SafetyResult{}, fmt.Errorf("cannot calculate safety result without checkpoint scores")
	}
	return CalculateSafety(i.VehicleType, i.CheckpointScores)
}

func (i *Inspection) TotalScore() int {
	total := 0
	for _, score := range i.CheckpointScores {
		total += score.Score
	}
	return total
}

func (i *Inspection) MaxPossibleScore() int {
	return len(RequiredCheckpoints(i.VehicleType)) * MaxCheckpointScore
}

func (i *Inspection) HasCriticalFailures() bool {
	for _, score := range i.CheckpointScores {
		if score.IsCriticalFailure() {
			return true
		}
	}
	return false
}

// MissingCheckpoints lists required checkpoints without a recorded score,
// in catalog order.
func (i *Inspection) MissingCheckpoints() []CheckpointType {
	scored := make(map[CheckpointType]bool, len(i.CheckpointScores))
	for _, score := range i.CheckpointScores {
		scored[score.CheckpointType] = true
	}

	var missing []CheckpointType
	for _, required := range RequiredCheckpoints(i.VehicleType) {
		if !scored[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

func validateScoreSet(scores []CheckpointScore, vehicleType VehicleType) error {
	seen := make(map[CheckpointType]bool, len(scores))
	required := make(map[CheckpointType]bool)
	for _, checkpoint := range RequiredCheckpoints(vehicleType) {
		required[checkpoint] = true
	}

	for _, score := range scores {
		if score.Score < MinCheckpointScore || score.Score > MaxCheckpointScore {
			return fmt.Errorf("score must be between %d and %d inclusive", MinCheckpointScore, MaxCheckpointScore)
		}
		if !required[score.CheckpointType] {
			return fmt.Errorf("checkpoint %s is not valid for vehicle type %s", score.CheckpointType, vehicleType)
		}
		if seen[score.CheckpointType] {
			return fmt.Errorf("duplicate checkpoint types found in scores")
		}
		seen[score.CheckpointType] = true
	}
	return nil
}

// SortedScores returns the scores ordered by checkpoint name, for stable
// report output.
func (i *Inspection) SortedScores() []CheckpointScore {
	scores := i.Scores()
	sort.Slice(scores, func(a, b int) bool {
		return scores[a].CheckpointType < scores[b].CheckpointType
	})
	return scores
}
