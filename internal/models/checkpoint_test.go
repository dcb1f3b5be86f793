package models_test

import (
	"testing"

	"vinspect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckpointScore_validRange(t *testing.T) {
	score, err := models.NewCheckpointScore(models.CheckpointBrakingSystem, 7, "pads worn")

	require.NoError(t, err)
	assert.Equal(t, models.CheckpointBrakingSystem, score.CheckpointType)
	assert.Equal(t, 7, score.Score)
	assert.Equal(t, "pads worn", score.Notes)
}

func TestNewCheckpointScore_rejectsOutOfRange(t *testing.T) {
	_, err := models.NewCheckpointScore(models.CheckpointTires, 0, "")
	require.Error(t, err)

	_, err = models.NewCheckpointScore(models.CheckpointTires, 11, "")
	require.Error(t, err)
}

func TestNewCheckpointScore_rejectsUnknownType(t *testing.T) {
	_, err := models.NewCheckpointScore("windshield_wipers", 5, "")
	require.Error(t, err)
	require.ErrorContains(t, err, "unknown checkpoint type")
}

func TestCheckpointScore_criticalFailure(t *testing.T) {
	critical, err := models.NewCheckpointScore(models.CheckpointBrakingSystem, 4, "")
	require.NoError(t, err)
	assert.True(t, critical.IsCriticalFailure())

	passing, err := models.NewCheckpointScore(models.CheckpointBrakingSystem, 5, "")
	require.NoError(t, err)
	assert.False(t, passing.IsCriticalFailure())
}

func TestCheckpointScore_performanceLevels(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{10, "EXCELLENT"},
		{9, "EXCELLENT"},
		{8, "GOOD"},
		{7, "GOOD"},
		{6, "ACCEPTABLE"},
		{5, "ACCEPTABLE"},
		{4, "POOR"},
		{3, "POOR"},
		{2, "CRITICAL"},
		{1, "CRITICAL"},
	}

	for _, tc := range cases {
		score, err := models.NewCheckpointScore(models.CheckpointTires, tc.score, "")
		require.NoError(t, err)
		assert.Equal(t, tc.level, score.PerformanceLevel(), "score %d", tc.score)
	}
}

func TestAllCheckpointTypes_catalogSize(t *testing.T) {
	types := models.AllCheckpointTypes()

	require.Len(t, types, 8)
	for _, checkpointType := range types {
		assert.True(t, checkpointType.IsValid())
		assert.NotEqual(t, "Unknown checkpoint", checkpointType.Description())
	}
}
