package apperrors

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Request
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Upload rejections
	CodeMissingFile     ErrorCode = "MISSING_FILE"
	CodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
	CodeTooLarge        ErrorCode = "TOO_LARGE"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)
