package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that occupy a slot.
func ActiveBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed}
}

// Booking is an appointment reservation for a plate. Completed and cancelled
// are terminal; no transition leaves them.
type Booking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LicensePlate    string             `json:"license_plate" bson:"license_plate"`
	AppointmentDate time.Time          `json:"appointment_date" bson:"appointment_date"`
	// SlotSeat is the booking's position within its slot (0-based, below the
	// slot capacity). Unique per active slot so concurrent requests for the
	// last seat cannot both succeed.
	SlotSeat  int                `json:"slot_seat" bson:"slot_seat"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Status    BookingStatus      `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

func NewBooking(licensePlate string, appointmentDate time.Time, userID primitive.ObjectID) *Booking {
	now := time.Now().UTC()
	return &Booking{
		LicensePlate:    NormalizeLicensePlate(licensePlate),
		AppointmentDate: appointmentDate,
		UserID:          userID,
		Status:          BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *Booking) Confirm() error {
	if b.Status != BookingStatusPending {
		return fmt.Errorf("only pending bookings can be confirmed")
	}
	b.Status = BookingStatusConfirmed
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (b *Booking) Cancel() error {
	if b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled {
		return fmt.Errorf("cannot cancel completed or already cancelled bookings")
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (b *Booking) Complete() error {
	if b.Status != BookingStatusConfirmed {
		return fmt.Errorf("only confirmed bookings can be completed")
	}
	b.Status = BookingStatusCompleted
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (b *Booking) IsEditable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
