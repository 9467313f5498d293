package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig  ErrorCode = "invalid_configuration"
	ErrMissingConfig  ErrorCode = "missing_configuration"
	ErrBindFlags      ErrorCode = "bind_flags_failed"
	ErrReadConfig     ErrorCode = "read_config_failed"
	ErrInvalidRate    ErrorCode = "invalid_update_rate"
	ErrUnknownService ErrorCode = "unknown_bulb_service"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Application errors
	ErrInitApp        ErrorCode = "init_app_failed"
	ErrMainLoop       ErrorCode = "main_loop_failed"
	ErrAlreadyRunning ErrorCode = "already_running"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrInvalidConfig:   "Invalid configuration",
	ErrMissingConfig:   "Missing configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidRate:     "Update rate must be at least one per second",
	ErrUnknownService:  "Unknown bulb service",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitApp:         "Failed to initialize application",
	ErrMainLoop:        "Error in main loop",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrShutdownFailed:  "Shutdown failed",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
