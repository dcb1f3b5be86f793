package models

import (
	"fmt"
	"time"
)

// TimeSlot is an immutable bookable interval within the facility's operating
// hours. WithBooking and WithoutBooking return adjusted copies rather than
// mutating the receiver.
type TimeSlot struct {
	Date            time.Time `json:"date" bson:"date"`
	StartTime       time.Time `json:"start_time" bson:"start_time"`
	EndTime         time.Time `json:"end_time" bson:"end_time"`
	IsAvailable     bool      `json:"is_available" bson:"is_available"`
	MaxBookings     int       `json:"max_bookings" bson:"max_bookings"`
	CurrentBookings int       `json:"current_bookings" bson:"current_bookings"`
}

func NewTimeSlot(date, startTime, endTime time.Time, maxBookings, currentBookings int) (TimeSlot, error) {
	if !startTime.Before(endTime) {
		return TimeSlot{}, fmt.Errorf("start time must be before end time")
	}
	if maxBookings < 1 {
		return TimeSlot{}, fmt.Errorf("max bookings must be at least 1")
	}
	if currentBookings < 0 {
		return TimeSlot{}, fmt.Errorf("current bookings cannot be negative")
	}
	if currentBookings > maxBookings {
		return TimeSlot{}, fmt.Errorf("current bookings cannot exceed max bookings")
	}

	return TimeSlot{
		Date:            date,
		StartTime:       startTime,
		EndTime:         endTime,
		IsAvailable:     currentBookings < maxBookings,
		MaxBookings:     maxBookings,
		CurrentBookings: currentBookings,
	}, nil
}

func (s TimeSlot) IsFullyBooked() bool {
	return s.CurrentBookings >= s.MaxBookings
}

func (s TimeSlot) AvailableSpots() int {
	return s.MaxBookings - s.CurrentBookings
}

// WithBooking returns a copy with one more booking recorded.
func (s TimeSlot) WithBooking() (TimeSlot, error) {
	if s.IsFullyBooked() {
		return TimeSlot{}, fmt.Errorf("cannot book a fully booked time slot")
	}
	return NewTimeSlot(s.Date, s.StartTime, s.EndTime, s.MaxBookings, s.CurrentBookings+1)
}

// WithoutBooking returns a copy with one booking released.
func (s TimeSlot) WithoutBooking() (TimeSlot, error) {
	if s.CurrentBookings == 0 {
		return TimeSlot{}, fmt.Errorf("cannot remove booking from empty time slot")
	}
	return NewTimeSlot(s.Date, s.StartTime, s.EndTime, s.MaxBookings, s.CurrentBookings-1)
}

func (s TimeSlot) TimeRange() string {
	return fmt.Sprintf("%s - %s", s.StartTime.Format("15:04"), s.EndTime.Format("15:04"))
}

// GenerateSlotsForDate produces the day's candidate slots covering
// [startHour, endHour) in fixed increments. A slot is emitted only if its end
// does not run past the closing hour. Pure; persistence-unaware.
func GenerateSlotsForDate(date time.Time, startHour, endHour int, slotDuration time.Duration, maxBookings int) []TimeSlot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	opening := day.Add(time.Duration(startHour) * time.Hour)
	closing := day.Add(time.Duration(endHour) * time.Hour)

	var slots []TimeSlot
	for start := opening; start.Before(closing); start = start.Add(slotDuration) {
		end := start.Add(slotDuration)
		if end.After(closing) {
			break
		}
		slot, err := NewTimeSlot(day, start, end, maxBookings, 0)
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}
