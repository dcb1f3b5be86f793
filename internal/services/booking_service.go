package services

import (
	"context"
	"errors"
	"time"

	"vinspect/internal/config"
	"vinspect/internal/models"
	"vinspect/internal/repositories/interfaces"
	"vinspect/internal/utils"
	"vinspect/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// Appointment lifecycle
	RequestAppointment(ctx context.Context, request *AppointmentRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error)

	// Queries
	GetBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error)
	GetBookingsByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetBookingsByPlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// Scheduling
	GetAvailableSlots(ctx context.Context, date time.Time) ([]models.TimeSlot, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	vehicleRepo interfaces.VehicleRepository
	userRepo    interfaces.UserRepository
	config      *config.BookingConfig
	location    *time.Location
	logger      *logger.Logger
}

// NewBookingService builds the booking service. Slot boundaries and operating
// hours are interpreted in the facility's location, not the caller's: the same
// instant expressed with a different UTC offset must land in the same slot.
func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	cfg *config.BookingConfig,
	location *time.Location,
	logger *logger.Logger,
) BookingService {
	if location == nil {
		location = time.UTC
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		config:      cfg,
		location:    location,
		logger:      logger,
	}
}

type AppointmentRequest struct {
	LicensePlate    string             `json:"license_plate" validate:"required,license_plate"`
	AppointmentDate time.Time          `json:"appointment_date" validate:"required"`
	UserID          primitive.ObjectID `json:"user_id" validate:"required"`
}

// Appointment lifecycle
func (s *bookingService) RequestAppointment(ctx context.Context, request *AppointmentRequest) (*models.Booking, error) {
	normalized := models.NormalizeLicensePlate(request.LicensePlate)
	if !utils.IsValidLicensePlate(normalized) {
		return nil, utils.NewValidationError("INVALID_LICENSE_PLATE", "invalid license plate format")
	}

	exists, err := s.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, utils.NewInternalError("USER_LOOKUP_FAILED", "failed to verify user", err)
	}
	if !exists {
		return nil, utils.NewNotFoundError("USER_NOT_FOUND", "user not found")
	}

	appointmentAt := request.AppointmentDate.In(s.location)

	seat, err := s.checkSlot(ctx, appointmentAt)
	if err != nil {
		return nil, err
	}

	if !appointmentAt.After(time.Now()) {
		return nil, utils.NewValidationError("APPOINTMENT_NOT_FUTURE", utils.ErrAppointmentNotFuture)
	}

	if err := s.ensureVehicleExists(ctx, normalized); err != nil {
		return nil, err
	}

	booking := models.NewBooking(normalized, appointmentAt, request.UserID)
	booking.SlotSeat = seat
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, interfaces.ErrSlotTaken) {
			// Lost the race for the seat
			return nil, utils.NewConflictError("SLOT_NOT_AVAILABLE", utils.ErrSlotNotAvailable)
		}
		return nil, utils.NewInternalError("BOOKING_CREATE_FAILED", "failed to create booking", err)
	}

	s.logger.LogBookingEvent(booking.ID, "appointment_requested", map[string]interface{}{
		"license_plate":    booking.LicensePlate,
		"appointment_date": booking.AppointmentDate,
		"user_id":          booking.UserID.Hex(),
	})

	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.NewNotFoundError("BOOKING_NOT_FOUND", utils.ErrBookingNotFound)
	}

	if err := s.checkOwnership(booking, userID); err != nil {
		return nil, err
	}

	if err := booking.Confirm(); err != nil {
		return nil, utils.NewConflictError("INVALID_BOOKING_TRANSITION", err.Error())
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, utils.NewInternalError("BOOKING_UPDATE_FAILED", "failed to confirm booking", err)
	}

	s.logger.LogBookingEvent(booking.ID, "booking_confirmed", nil)

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.NewNotFoundError("BOOKING_NOT_FOUND", utils.ErrBookingNotFound)
	}

	if err := s.checkOwnership(booking, userID); err != nil {
		return nil, err
	}

	if err := booking.Cancel(); err != nil {
		return nil, utils.NewConflictError("INVALID_BOOKING_TRANSITION", err.Error())
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, utils.NewInternalError("BOOKING_UPDATE_FAILED", "failed to cancel booking", err)
	}

	s.logger.LogBookingEvent(booking.ID, "booking_cancelled", nil)

	return booking, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.NewNotFoundError("BOOKING_NOT_FOUND", utils.ErrBookingNotFound)
	}

	if err := booking.Complete(); err != nil {
		return nil, utils.NewConflictError("INVALID_BOOKING_TRANSITION", err.Error())
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, utils.NewInternalError("BOOKING_UPDATE_FAILED", "failed to complete booking", err)
	}

	s.logger.LogBookingEvent(booking.ID, "booking_completed", nil)

	return booking, nil
}

// Queries
func (s *bookingService) GetBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.NewNotFoundError("BOOKING_NOT_FOUND", utils.ErrBookingNotFound)
	}
	return booking, nil
}

func (s *bookingService) GetBookingsByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, 0, utils.NewInternalError("BOOKING_QUERY_FAILED", "failed to list bookings", err)
	}
	return bookings, total, nil
}

func (s *bookingService) GetBookingsByPlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	normalized := models.NormalizeLicensePlate(licensePlate)
	if !utils.IsValidLicensePlate(normalized) {
		return nil, 0, utils.NewValidationError("INVALID_LICENSE_PLATE", "invalid license plate format")
	}

	bookings, total, err := s.bookingRepo.GetByLicensePlate(ctx, normalized, params)
	if err != nil {
		return nil, 0, utils.NewInternalError("BOOKING_QUERY_FAILED", "failed to list bookings", err)
	}
	return bookings, total, nil
}

// Scheduling
func (s *bookingService) GetAvailableSlots(ctx context.Context, date time.Time) ([]models.TimeSlot, error) {
	date = date.In(s.location)
	slots := models.GenerateSlotsForDate(date, s.config.OpeningHour, s.config.ClosingHour, s.config.SlotDuration, s.config.SlotCapacity)

	active, err := s.bookingRepo.GetActiveForDate(ctx, date)
	if err != nil {
		return nil, utils.NewInternalError("SLOT_QUERY_FAILED", "failed to load bookings for date", err)
	}

	// Key by UTC instant so a booking stored with a different offset still
	// counts against its slot.
	occupancy := make(map[time.Time]int, len(active))
	for _, booking := range active {
		occupancy[booking.AppointmentDate.UTC()]++
	}

	available := make([]models.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		count := occupancy[slot.StartTime.UTC()]
		if count >= slot.MaxBookings {
			continue
		}
		refreshed, err := models.NewTimeSlot(slot.Date, slot.StartTime, slot.EndTime, slot.MaxBookings, count)
		if err != nil {
			return nil, utils.NewInternalError("SLOT_BUILD_FAILED", "failed to build time slot", err)
		}
		available = append(available, refreshed)
	}

	return available, nil
}

// Helper methods
func (s *bookingService) checkOwnership(booking *models.Booking, userID primitive.ObjectID) error {
	if booking.UserID == userID {
		return nil
	}
	s.logger.LogBusinessRuleViolation("booking_ownership", map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"owner_id":   booking.UserID.Hex(),
		"caller_id":  userID.Hex(),
	})
	return utils.NewUnauthorizedError("NOT_BOOKING_OWNER", utils.ErrNotBookingOwner)
}

// checkSlot validates that appointmentDate (already in the facility location)
// starts a slot with capacity left, and returns the next free seat number.
func (s *bookingService) checkSlot(ctx context.Context, appointmentDate time.Time) (int, error) {
	slots := models.GenerateSlotsForDate(appointmentDate, s.config.OpeningHour, s.config.ClosingHour, s.config.SlotDuration, s.config.SlotCapacity)

	var matched *models.TimeSlot
	for i := range slots {
		if slots[i].StartTime.Equal(appointmentDate) {
			matched = &slots[i]
			break
		}
	}
	if matched == nil {
		return 0, utils.NewValidationError("SLOT_NOT_AVAILABLE", utils.ErrSlotNotAvailable)
	}

	count, err := s.bookingRepo.CountActiveAtSlot(ctx, appointmentDate)
	if err != nil {
		return 0, utils.NewInternalError("SLOT_QUERY_FAILED", "failed to check slot availability", err)
	}
	if count >= int64(matched.MaxBookings) {
		return 0, utils.NewConflictError("SLOT_NOT_AVAILABLE", utils.ErrSlotNotAvailable)
	}

	return int(count), nil
}

// ensureVehicleExists registers a placeholder vehicle on first booking so
// history queries by plate work before the first inspection.
func (s *bookingService) ensureVehicleExists(ctx context.Context, licensePlate string) error {
	exists, err := s.vehicleRepo.ExistsByLicensePlate(ctx, licensePlate)
	if err != nil {
		return utils.NewInternalError("VEHICLE_LOOKUP_FAILED", "failed to check vehicle", err)
	}
	if exists {
		return nil
	}

	now := time.Now().UTC()
	vehicle := &models.Vehicle{
		LicensePlate: licensePlate,
		VehicleType:  models.VehicleTypeCar,
		Make:         "Unknown",
		Model:        "Unknown",
		Year:         2020,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return utils.NewInternalError("VEHICLE_CREATE_FAILED", "failed to register vehicle", err)
	}

	return nil
}
