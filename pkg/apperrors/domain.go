package apperrors

import "net/http"

// Factories and predefined errors for the upload domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into
// a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict reports a race detected by a guarded operation after its
// internal retry was exhausted.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrFileTooLarge rejects a file above the pipeline's size limit.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the pipeline limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType rejects a MIME type not on the pipeline allow-list.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed for this pipeline",
	http.StatusUnsupportedMediaType,
)

// ErrChecksumMismatch rejects a file whose bytes do not match the
// client-declared checksum.
var ErrChecksumMismatch = New(
	CodeValidationFailed,
	"validation",
	"Uploaded file does not match the declared checksum",
	http.StatusBadRequest,
)

// ErrNoPipelineBinding is returned when an identity without an uploader
// binding tries to open an upload.
var ErrNoPipelineBinding = New(
	CodeValidationFailed,
	"upload",
	"Identity has no pipeline binding",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
