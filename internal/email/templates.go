package email

import (
	"fmt"

	"uploadhub_backend/internal/models"
)

// ValidationDecisionSubject is the subject line of the mail sent to an
// uploader when a validator records a decision on one of their uploads.
func ValidationDecisionSubject(uploadID uint) string {
	return fmt.Sprintf("Upload #%d: validation update", uploadID)
}

func ValidationDecisionBody(uploadID uint, group string, state models.ValidationState) string {
	var verdict string
	switch state {
	case models.StateValidatedOK:
		verdict = "approved"
	case models.StateValidatedNOK:
		verdict = "rejected"
	default:
		verdict = "reset to pending"
	}
	if group == "" {
		return fmt.Sprintf("Your upload #%d has been %s.", uploadID, verdict)
	}
	return fmt.Sprintf("Your upload #%d has been %s by the %s group.", uploadID, verdict, group)
}
