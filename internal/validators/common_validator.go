package validators

import (
	"fmt"
	"strings"
	"time"

	"vinspect/internal/models"
	"vinspect/internal/utils"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("license_plate", validateLicensePlateTag)
	validate.RegisterValidation("checkpoint_score", validateCheckpointScoreTag)
	validate.RegisterValidation("future_date", validateFutureDateTag)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "license_plate":
		return "License plate must be 3-8 alphanumeric characters"
	case "checkpoint_score":
		return fmt.Sprintf("Score must be between %d and %d", models.MinCheckpointScore, models.MaxCheckpointScore)
	case "future_date":
		return "Date must be in the future"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateLicensePlateTag(fl validator.FieldLevel) bool {
	return utils.IsValidLicensePlate(fl.Field().String())
}

func validateCheckpointScoreTag(fl validator.FieldLevel) bool {
	score := fl.Field().Int()
	return score >= int64(models.MinCheckpointScore) && score <= int64(models.MaxCheckpointScore)
}

func validateFutureDateTag(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}
