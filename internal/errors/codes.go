package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig    ErrorCode = "invalid_configuration"
	ErrBindFlags        ErrorCode = "bind_flags_failed"
	ErrReadConfig       ErrorCode = "read_config_failed"
	ErrInvalidInterval  ErrorCode = "invalid_interval"
	ErrInvalidThreshold ErrorCode = "invalid_threshold"
	ErrInvalidBoundary  ErrorCode = "invalid_idle_boundary"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Application errors
	ErrResolveHost  ErrorCode = "resolve_host_failed"
	ErrSubscribe    ErrorCode = "input_subscribe_failed"
	ErrUnsubscribe  ErrorCode = "input_unsubscribe_failed"
	ErrSamplerState ErrorCode = "sampler_state_invalid"

	// Operation errors
	ErrTimeout    ErrorCode = "operation_timeout"
	ErrUnexpected ErrorCode = "unexpected_failure"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrInvalidConfig:    "Invalid configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrReadConfig:       "Failed to read configuration",
	ErrInvalidInterval:  "Invalid sampling interval",
	ErrInvalidThreshold: "Invalid inactivity threshold",
	ErrInvalidBoundary:  "Invalid idle boundary",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInitFailed:       "Initialization failed",
	ErrShutdownFailed:   "Shutdown failed",
	ErrAlreadyRunning:   "Another instance is already running",
	ErrResolveHost:      "Failed to resolve host identity",
	ErrSubscribe:        "Failed to subscribe to input activity",
	ErrUnsubscribe:      "Failed to unsubscribe from input activity",
	ErrSamplerState:     "Sampler is not in a valid state for this operation",
	ErrTimeout:          "Operation timed out",
	ErrUnexpected:       "Unexpected failure",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
