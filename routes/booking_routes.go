package routes

import (
	"vinspect/internal/handlers"
	"vinspect/internal/middleware"
	"vinspect/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up appointment booking routes
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, authService services.AuthService) {
	bookings := r.Group("/bookings")
	{
		// Vehicle owners book without an inspector account
		bookings.GET("/slots", bookingHandler.GetAvailableSlots)
		bookings.POST("/", bookingHandler.RequestAppointment)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/confirm", bookingHandler.ConfirmBooking)
		bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)

		bookings.GET("/users/:user_id", bookingHandler.ListByUser)
		bookings.GET("/vehicles/:license_plate", bookingHandler.ListByPlate)
	}

	// Completion is an inspector action
	inspectorOps := r.Group("/bookings")
	inspectorOps.Use(middleware.AuthRequired(authService))
	{
		inspectorOps.PUT("/:id/complete", bookingHandler.CompleteBooking)
	}
}
