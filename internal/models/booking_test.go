package models_test

import (
	"testing"
	"time"

	"vinspect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPendingBooking() *models.Booking {
	appointment := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return models.NewBooking("xyz-789", appointment, primitive.NewObjectID())
}

func TestNewBooking_startsPendingWithNormalizedPlate(t *testing.T) {
	booking := newPendingBooking()

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, "XYZ789", booking.LicensePlate)
	assert.True(t, booking.IsEditable())
}

func TestBooking_happyPathLifecycle(t *testing.T) {
	booking := newPendingBooking()

	require.NoError(t, booking.Confirm())
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	require.NoError(t, booking.Complete())
	assert.Equal(t, models.BookingStatusCompleted, booking.Status)
	assert.False(t, booking.IsEditable())
}

func TestBooking_transitionMatrix(t *testing.T) {
	t.Run("confirm requires pending", func(t *testing.T) {
		booking := newPendingBooking()
		require.NoError(t, booking.Confirm())

		err := booking.Confirm()
		require.Error(t, err)
		require.ErrorContains(t, err, "only pending bookings can be confirmed")
	})

	t.Run("complete requires confirmed", func(t *testing.T) {
		booking := newPendingBooking()

		err := booking.Complete()
		require.Error(t, err)
		require.ErrorContains(t, err, "only confirmed bookings can be completed")
	})

	t.Run("cancel from pending", func(t *testing.T) {
		booking := newPendingBooking()
		require.NoError(t, booking.Cancel())
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	})

	t.Run("cancel from confirmed", func(t *testing.T) {
		booking := newPendingBooking()
		require.NoError(t, booking.Confirm())
		require.NoError(t, booking.Cancel())
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		completed := newPendingBooking()
		require.NoError(t, completed.Confirm())
		require.NoError(t, completed.Complete())
		require.Error(t, completed.Cancel())
		require.Error(t, completed.Confirm())

		cancelled := newPendingBooking()
		require.NoError(t, cancelled.Cancel())
		require.Error(t, cancelled.Cancel())
		require.Error(t, cancelled.Confirm())
		require.Error(t, cancelled.Complete())
	})
}

func TestActiveBookingStatuses(t *testing.T) {
	assert.Equal(t,
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.ActiveBookingStatuses())
}
