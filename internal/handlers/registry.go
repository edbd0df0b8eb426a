package handlers

// AppHandlers bundles the HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	PipelineHandler   *PipelineHandler
	UploadHandler     *UploadHandler
	FileHandler       *FileHandler
	ValidationHandler *ValidationHandler
	NoteHandler       *NoteHandler
}
