package config_test

import (
	"testing"
	"time"

	"vinspect/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_defaults verifies the loader falls back to development defaults
// when no environment is set.
func TestLoad_defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, 8, cfg.Booking.OpeningHour)
	assert.Equal(t, 17, cfg.Booking.ClosingHour)
	assert.Equal(t, time.Hour, cfg.Booking.SlotDuration)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}

// TestConfig_environmentMode verifies the mode helpers read the loaded
// config rather than the process environment.
func TestConfig_environmentMode(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.App.Environment = "development"
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}
