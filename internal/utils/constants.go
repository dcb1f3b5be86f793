package utils

import "time"

// Application Constants
const (
	AppName    = "VInspect"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	MaxLoginAttempts   = 5
	LoginLockoutTime   = 15 * time.Minute

	// Scheduling defaults
	DefaultOpeningHour    = 8
	DefaultClosingHour    = 17
	DefaultSlotDuration   = time.Hour
	DefaultSlotCapacity   = 1
	MinLicensePlateLength = 3
	MaxLicensePlateLength = 8
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials     = "invalid credentials"
	ErrAccountLocked          = "account is locked due to repeated failed logins"
	ErrInvalidToken           = "invalid token"
	ErrInternalServer         = "internal server error"
	ErrUnauthorized           = "unauthorized"
	ErrForbidden              = "forbidden"
	ErrValidationFailed       = "validation failed"
	ErrInspectionNotFound     = "inspection not found"
	ErrInspectorNotFound      = "inspector not found"
	ErrBookingNotFound        = "booking not found"
	ErrSlotNotAvailable       = "selected time slot is not available"
	ErrAppointmentNotFuture   = "appointment must be scheduled for a future date"
	ErrNotBookingOwner        = "you can only act on your own bookings"
	ErrInspectorNotAuthorized = "inspector is not authorized to perform inspections"
)

// Cache Keys
const (
	CacheInspectorPrefix  = "inspector:"
	CacheVehiclePrefix    = "vehicle_plate:"
	CacheInspectionPrefix = "inspection:"
	CacheBookingPrefix    = "booking:"
	CacheLoginFailPrefix  = "login_failures:"
	CacheLockoutPrefix    = "login_lockout:"
	CacheTokenDenyPrefix  = "token_deny:"
)
