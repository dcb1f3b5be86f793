package models_test

import (
	"testing"

	"vinspect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allScores(value int) []models.CheckpointScore {
	scores := make([]models.CheckpointScore, 0, 8)
	for _, checkpointType := range models.AllCheckpointTypes() {
		score, err := models.NewCheckpointScore(checkpointType, value, "")
		if err != nil {
			panic(err)
		}
		scores = append(scores, score)
	}
	return scores
}

func scoresWith(base int, overrides map[models.CheckpointType]int) []models.CheckpointScore {
	scores := make([]models.CheckpointScore, 0, 8)
	for _, checkpointType := range models.AllCheckpointTypes() {
		value := base
		if override, ok := overrides[checkpointType]; ok {
			value = override
		}
		score, err := models.NewCheckpointScore(checkpointType, value, "")
		if err != nil {
			panic(err)
		}
		scores = append(scores, score)
	}
	return scores
}

func TestCalculateSafety_allPerfectIsSafe(t *testing.T) {
	result, err := models.CalculateSafety(models.VehicleTypeCar, allScores(10))

	require.NoError(t, err)
	assert.True(t, result.IsSafe)
	assert.False(t, result.RequiresReinspection)
	assert.Equal(t, 80, result.TotalScore)
	assert.Equal(t, 80, result.MaxScore)
	assert.Empty(t, result.Observation)
	assert.Equal(t, "SAFE", result.Status())
}

func TestCalculateSafety_thresholdBoundaries(t *testing.T) {
	// 64/80 with no critical failures is exactly the passing threshold.
	result, err := models.CalculateSafety(models.VehicleTypeCar, allScores(8))
	require.NoError(t, err)
	assert.True(t, result.IsSafe)
	assert.False(t, result.RequiresReinspection)

	// 63/80: one checkpoint dips to 7 but nothing is critical.
	result, err = models.CalculateSafety(models.VehicleTypeCar, scoresWith(8, map[models.CheckpointType]int{
		models.CheckpointBodyStructure: 7,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsSafe)
	assert.False(t, result.RequiresReinspection)
	assert.Equal(t, "CONDITIONAL", result.Status())
}

func TestCalculateSafety_criticalFailureForcesReinspection(t *testing.T) {
	// High total but one critical checkpoint: unsafe and re-inspection required.
	result, err := models.CalculateSafety(models.VehicleTypeCar, scoresWith(10, map[models.CheckpointType]int{
		models.CheckpointBrakingSystem: 4,
	}))

	require.NoError(t, err)
	assert.False(t, result.IsSafe)
	assert.True(t, result.RequiresReinspection)
	assert.Equal(t, 74, result.TotalScore)
	assert.Equal(t, "REQUIRES_REINSPECTION", result.Status())
	assert.Equal(t,
		"Critical failures in: braking_system: 4/10. Vehicle requires re-inspection before approval.",
		result.Observation)
}

func TestCalculateSafety_lowTotalForcesReinspection(t *testing.T) {
	// All 3s: 24/80 is below the 40% floor and every score is critical, so the
	// observation carries both sentences plus the motorcycle closing line.
	result, err := models.CalculateSafety(models.VehicleTypeMotorcycle, allScores(3))

	require.NoError(t, err)
	assert.False(t, result.IsSafe)
	assert.True(t, result.RequiresReinspection)
	assert.Equal(t, 24, result.TotalScore)
	assert.Contains(t, result.Observation, "Critical failures in:")
	assert.Contains(t, result.Observation, "Total score too low: 24/80.")
	assert.Contains(t, result.Observation, "Motorcycle requires re-inspection before approval.")
}

func TestCalculateSafety_criticalListSortedByType(t *testing.T) {
	result, err := models.CalculateSafety(models.VehicleTypeCar, scoresWith(9, map[models.CheckpointType]int{
		models.CheckpointTires:         2,
		models.CheckpointBrakingSystem: 3,
	}))

	require.NoError(t, err)
	assert.Equal(t,
		"Critical failures in: braking_system: 3/10, tires: 2/10. Vehicle requires re-inspection before approval.",
		result.Observation)
}

func TestCalculateSafety_emptyScoresErrors(t *testing.T) {
	_, err := models.CalculateSafety(models.VehicleTypeCar, nil)
	require.Error(t, err)
	require.ErrorContains(t, err, "without checkpoint scores")
}

func TestCalculateSafety_unsupportedVehicleType(t *testing.T) {
	_, err := models.CalculateSafety("truck", allScores(8))
	require.Error(t, err)
	require.ErrorContains(t, err, "unsupported vehicle type")
}

func TestCalculateSafety_isDeterministic(t *testing.T) {
	scores := scoresWith(6, map[models.CheckpointType]int{models.CheckpointGasEmissions: 4})

	first, err := models.CalculateSafety(models.VehicleTypeCar, scores)
	require.NoError(t, err)
	second, err := models.CalculateSafety(models.VehicleTypeCar, scores)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRequiredCheckpoints_sameForBothTypes(t *testing.T) {
	assert.Equal(t,
		models.RequiredCheckpoints(models.VehicleTypeCar),
		models.RequiredCheckpoints(models.VehicleTypeMotorcycle))
}
