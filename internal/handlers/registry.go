package handlers

// AppHandlers holds the application handlers.
type AppHandlers struct {
	// nil when no database is configured
	AuthHandler   *AuthHandler
	UploadHandler *UploadHandler
}
