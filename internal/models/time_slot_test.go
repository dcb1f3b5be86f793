package models_test

import (
	"testing"
	"time"

	"vinspect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlotsForDate_standardDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slots := models.GenerateSlotsForDate(date, 8, 17, time.Hour, 1)

	require.Len(t, slots, 9)
	assert.Equal(t, "08:00 - 09:00", slots[0].TimeRange())
	assert.Equal(t, "16:00 - 17:00", slots[8].TimeRange())
	for _, slot := range slots {
		assert.True(t, slot.IsAvailable)
		assert.Equal(t, 0, slot.CurrentBookings)
		assert.Equal(t, 1, slot.MaxBookings)
	}
}

func TestGenerateSlotsForDate_dropsPartialTrailingSlot(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 90-minute slots between 08:00 and 17:00: the sixth slot would end at
	// 17:30 and is not emitted.
	slots := models.GenerateSlotsForDate(date, 8, 17, 90*time.Minute, 1)

	require.Len(t, slots, 6)
	assert.Equal(t, "15:30 - 17:00", slots[5].TimeRange())
}

func TestNewTimeSlot_invariants(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	start := date.Add(8 * time.Hour)
	end := date.Add(9 * time.Hour)

	_, err := models.NewTimeSlot(date, end, start, 1, 0)
	require.Error(t, err)

	_, err = models.NewTimeSlot(date, start, end, 0, 0)
	require.Error(t, err)

	_, err = models.NewTimeSlot(date, start, end, 1, 2)
	require.Error(t, err)

	_, err = models.NewTimeSlot(date, start, end, 1, -1)
	require.Error(t, err)
}

func TestTimeSlot_bookingRoundTrip(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slot, err := models.NewTimeSlot(date, date.Add(8*time.Hour), date.Add(9*time.Hour), 2, 0)
	require.NoError(t, err)

	booked, err := slot.WithBooking()
	require.NoError(t, err)
	assert.Equal(t, 1, booked.CurrentBookings)
	assert.True(t, booked.IsAvailable)
	assert.Equal(t, 1, booked.AvailableSpots())

	// Original value is untouched.
	assert.Equal(t, 0, slot.CurrentBookings)

	full, err := booked.WithBooking()
	require.NoError(t, err)
	assert.True(t, full.IsFullyBooked())
	assert.False(t, full.IsAvailable)

	_, err = full.WithBooking()
	require.Error(t, err)

	released, err := full.WithoutBooking()
	require.NoError(t, err)
	assert.Equal(t, 1, released.CurrentBookings)
	assert.True(t, released.IsAvailable)

	empty, err := released.WithoutBooking()
	require.NoError(t, err)
	_, err = empty.WithoutBooking()
	require.Error(t, err)
}
