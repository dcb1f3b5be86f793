package interfaces

import (
	"context"
	"errors"
	"time"

	"vinspect/internal/models"
	"vinspect/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrSlotTaken is returned by Create when another active booking already holds
// the same slot seat. Callers treat it as a conflict; every other Create
// failure is an infrastructure error.
var ErrSlotTaken = errors.New("time slot already booked")

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Lookups
	GetByLicensePlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// Slot occupancy: active means PENDING or CONFIRMED
	CountActiveAtSlot(ctx context.Context, slotStart time.Time) (int64, error)
	GetActiveForDate(ctx context.Context, date time.Time) ([]*models.Booking, error)
	HasActiveBookingForPlate(ctx context.Context, licensePlate string) (bool, error)

	// Statistics
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
}
