package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var licensePlateRegex = regexp.MustCompile(`^[A-Z0-9]{3,8}$`)

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("license_plate", validateLicensePlate)
	validate.RegisterValidation("checkpoint_score", validateCheckpointScore)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLicensePlate(fl validator.FieldLevel) bool {
	return IsValidLicensePlate(fl.Field().String())
}

func validateCheckpointScore(fl validator.FieldLevel) bool {
	score := fl.Field().Int()
	return score >= 1 && score <= 10
}

// IsValidLicensePlate checks the normalized plate is 3 to 8 alphanumerics.
func IsValidLicensePlate(plate string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(plate))
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return licensePlateRegex.MatchString(normalized)
}

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}
