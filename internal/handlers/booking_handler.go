package handlers

import (
	"time"

	"vinspect/internal/services"
	"vinspect/internal/utils"
	"vinspect/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// RequestAppointment books a pending appointment for a vehicle
func (h *BookingHandler) RequestAppointment(c *gin.Context) {
	var request services.AppointmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateAppointmentRequest(&request); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	booking, err := h.bookingService.RequestAppointment(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Appointment requested successfully", booking)
}

// GetBooking returns a single booking
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved", booking)
}

// ConfirmBooking moves a pending booking to confirmed
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	bookingID, userID, ok := bookingAndUserIDs(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking confirmed", booking)
}

// CancelBooking cancels a pending or confirmed booking
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, userID, ok := bookingAndUserIDs(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

// CompleteBooking marks a confirmed booking as completed (inspector action)
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.CompleteBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking completed", booking)
}

// ListByUser lists a user's bookings
func (h *BookingHandler) ListByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.GetBookingsByUser(c.Request.Context(), userID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(bookings),
	})
}

// ListByPlate lists bookings for a vehicle
func (h *BookingHandler) ListByPlate(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.GetBookingsByPlate(c.Request.Context(), c.Param("license_plate"), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(bookings),
	})
}

// GetAvailableSlots lists open time slots for a date (?date=YYYY-MM-DD)
func (h *BookingHandler) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.BadRequestResponse(c, "date query parameter is required")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.BadRequestResponse(c, "date must be in YYYY-MM-DD format")
		return
	}

	slots, err := h.bookingService.GetAvailableSlots(c.Request.Context(), date)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Available slots", slots)
}

// bookingAndUserIDs extracts the booking ID path param and user_id body field.
func bookingAndUserIDs(c *gin.Context) (primitive.ObjectID, primitive.ObjectID, bool) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	var request struct {
		UserID primitive.ObjectID `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	return bookingID, request.UserID, true
}
