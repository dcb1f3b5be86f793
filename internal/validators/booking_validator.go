package validators

import (
	"time"

	"vinspect/internal/services"
)

func ValidateAppointmentRequest(req *services.AppointmentRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.UserID.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "UserID",
			Tag:     "required",
			Message: "UserID is required",
		})
	}

	if !req.AppointmentDate.IsZero() && !req.AppointmentDate.After(time.Now()) {
		errors = append(errors, ValidationError{
			Field:   "AppointmentDate",
			Tag:     "future_date",
			Value:   req.AppointmentDate.Format(time.RFC3339),
			Message: "Appointment must be scheduled for a future date",
		})
	}

	return errors
}
