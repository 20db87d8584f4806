package telemetry

import "codeberg.org/mutker/pcadapter/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig  = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidSubject = errors.ErrorCode("telemetry_invalid_subject")

	// Connection Errors
	ErrConnect = errors.ErrorCode("telemetry_connect_failed")

	// Publishing Errors
	ErrEncode  = errors.ErrorCode("telemetry_encode_failed")
	ErrPublish = errors.ErrorCode("telemetry_publish_failed")

	// Operation Errors
	ErrServiceShutdown = errors.ErrorCode("telemetry_service_shutdown_failed")
)
