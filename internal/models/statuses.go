package models

type UploadStatus string
type ValidationState string
type FieldType string

const (
	UploadStatusInit         UploadStatus = "INIT"
	UploadStatusFileUploaded UploadStatus = "FILE_UPLOADED"
	UploadStatusCompleted    UploadStatus = "COMPLETED"
	UploadStatusError        UploadStatus = "ERROR"
	UploadStatusAborted      UploadStatus = "ABORTED"

	StateNotValidated ValidationState = "NOT_VALIDATED"
	StateValidatedOK  ValidationState = "VALIDATED_OK"
	StateValidatedNOK ValidationState = "VALIDATED_NOK"

	FieldTypeText     FieldType = "TEXT"
	FieldTypeCheckbox FieldType = "CHECKBOX"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeTextArea FieldType = "TEXT_AREA"
	FieldTypeSelect   FieldType = "SELECT"
	FieldTypeTime     FieldType = "TIME"
	FieldTypeDuration FieldType = "DURATION"
)

// ValidUploadStatus reports whether s is one of the known upload states.
func ValidUploadStatus(s UploadStatus) bool {
	switch s {
	case UploadStatusInit, UploadStatusFileUploaded, UploadStatusCompleted,
		UploadStatusError, UploadStatusAborted:
		return true
	}
	return false
}

// ValidValidationState reports whether s is a known validation task state.
func ValidValidationState(s ValidationState) bool {
	switch s {
	case StateNotValidated, StateValidatedOK, StateValidatedNOK:
		return true
	}
	return false
}

// IsDraft reports whether an upload in this status may still be resumed
// by its owner instead of opening a new one.
func (s UploadStatus) IsDraft() bool {
	return s == UploadStatusInit || s == UploadStatusFileUploaded
}
