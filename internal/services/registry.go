package services

import "uploadhub_backend/internal/email"

// ServiceContainer bundles the application services for wiring.
type ServiceContainer struct {
	AuthService       AuthService
	PipelineService   PipelineService
	UploadService     UploadService
	MetadataService   MetadataService
	ValidationService ValidationService
	NoteService       NoteService
	EmailService      email.Provider
}
