package models

import "fmt"

// SafetyResult summarizes a finished safety calculation. Values are computed
// by the vehicle-type policy and never mutated afterwards.
type SafetyResult struct {
	IsSafe               bool   `json:"is_safe" bson:"is_safe"`
	TotalScore           int    `json:"total_score" bson:"total_score"`
	MaxScore             int    `json:"max_score" bson:"max_score"`
	RequiresReinspection bool   `json:"requires_reinspection" bson:"requires_reinspection"`
	Observation          string `json:"observation,omitempty" bson:"observation,omitempty"`
}

func NewSafetyResult(isSafe bool, totalScore, maxScore int, requiresReinspection bool, observation string) (SafetyResult, error) {
	if totalScore < 0 {
		return SafetyResult{}, fmt.Errorf("total score cannot be negative")
	}
	if maxScore < 0 {
		return SafetyResult{}, fmt.Errorf("max score cannot be negative")
	}
	if totalScore > maxScore {
		return SafetyResult{}, fmt.Errorf("total score cannot exceed maximum score")
	}

	return SafetyResult{
		IsSafe:               isSafe,
		TotalScore:           totalScore,
		MaxScore:             maxScore,
		RequiresReinspection: requiresReinspection,
		Observation:          observation,
	}, nil
}

func (r SafetyResult) ScorePercentage() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.MaxScore) * 100
}

// Status reports the three-way outcome. IsSafe and RequiresReinspection are
// independently computed, so a middling total with no critical failure lands
// in the CONDITIONAL band.
func (r SafetyResult) Status() string {
	switch {
	case r.IsSafe:
		return "SAFE"
	case r.RequiresReinspection:
		return "REQUIRES_REINSPECTION"
	default:
		return "CONDITIONAL"
	}
}
