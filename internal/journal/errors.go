package journal

import "codeberg.org/mutker/pcadapter/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")
	ErrInvalidBatch  = errors.ErrorCode("journal_invalid_batch")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("journal_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("journal_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("journal_schema_migration_failed")
	ErrTransactionFailed      = errors.ErrorCode("journal_transaction_failed")

	// Storage Errors
	ErrStorageQuery = errors.ErrorCode("journal_storage_query_failed")
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed

	// Recording Errors
	ErrRecordFailed      = errors.ErrorCode("journal_record_failed")
	ErrInvalidTransition = errors.ErrorCode("journal_invalid_transition")

	// Operation Errors
	ErrOperationTimeout = errors.ErrTimeout
)
