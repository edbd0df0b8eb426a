package auth

import "uploadhub_backend/internal/models"

// Access control evaluator. Pure functions of (actor, target); the
// upload must carry its Validations so the group-overlap arm can be
// decided without further queries.

// CanAccessUpload allows the upload's owner, any member of a group
// holding a validation task on the upload, and automation accounts.
func CanAccessUpload(actor *Actor, upload *models.Upload) bool {
	if actor == nil || upload == nil {
		return false
	}

	if upload.UserID != nil && *upload.UserID == actor.UserID {
		return true
	}

	for _, validation := range upload.Validations {
		if validation.GroupID != nil && actor.InGroup(*validation.GroupID) {
			return true
		}
	}

	return actor.CanAutomate()
}

// CanAccessFile applies the upload-level rule to the file's parent.
func CanAccessFile(actor *Actor, upload *models.Upload, file *models.FileUpload) bool {
	if file == nil || upload == nil || file.UploadID != upload.ID {
		return false
	}
	return CanAccessUpload(actor, upload)
}
