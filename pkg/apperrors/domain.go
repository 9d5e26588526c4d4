package apperrors

import "net/http"

// =========================================================================
// Predefined errors
// =========================================================================

// Upload rejections. Messages are shown to the client verbatim.
var (
	ErrNoFile = New(CodeMissingFile, "upload",
		"No file provided", http.StatusBadRequest)
	ErrInvalidFileType = New(CodeUnsupportedType, "upload",
		"Invalid file type. Only images (JPEG, PNG, GIF, WebP) and videos (MP4, WebM, MOV) are allowed", http.StatusBadRequest)
	ErrImageTooLarge = New(CodeTooLarge, "upload",
		"File size exceeds 10MB limit for images", http.StatusBadRequest)
	ErrVideoTooLarge = New(CodeTooLarge, "upload",
		"File size exceeds 100MB limit for videos", http.StatusBadRequest)
	ErrUploadFailed = New(CodeStorageError, "upload",
		"Failed to upload file", http.StatusInternalServerError)
	ErrDeleteFailed = New(CodeStorageError, "upload",
		"Failed to delete file", http.StatusInternalServerError)
	ErrInvalidMediaType = New(CodeValidationFailed, "upload",
		"Invalid media type", http.StatusBadRequest)
	ErrInvalidImageContent = New(CodeUnsupportedType, "upload",
		"File content is not a valid image of the declared type", http.StatusBadRequest)
	ErrImageDimensions = New(CodeTooLarge, "upload",
		"Image dimensions exceed the 50 megapixel limit", http.StatusBadRequest)
	ErrInvalidRequestBody = New(CodeValidationFailed, "upload",
		"Invalid request body", http.StatusBadRequest)
)

// Authentication and authorization.
var (
	ErrUnauthorized = New(CodeUnauthorized, "auth",
		"Authentication required", http.StatusUnauthorized)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth",
		"Invalid email or password", http.StatusUnauthorized)
	ErrTokenExpired = New(CodeTokenExpired, "auth",
		"Token expired", http.StatusUnauthorized)
	ErrForbidden = New(CodeForbidden, "auth",
		"Access denied", http.StatusForbidden)
)

// ErrNotFound wraps a missing resource as a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrDatabase wraps a database failure as a 500.
func ErrDatabase(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Internal server error", http.StatusInternalServerError)
}

// ErrStorage wraps a storage failure. The client only ever sees the
// generic upload message.
func ErrStorage(err error) *AppError {
	return ErrUploadFailed.WithError(err)
}
