package services

// ServiceContainer holds the application services.
type ServiceContainer struct {
	UploadService UploadService
	// nil when no database is configured
	AuthService AuthService
}
