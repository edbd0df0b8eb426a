package types

import (
	"time"

	"uploadhub_backend/internal/models"
)

// UploadFilters are the explicit, typed filter parameters of the upload
// list operation. Results are ordered by id ascending.
type UploadFilters struct {
	UserID     *uint               `form:"user"`
	PipelineID *uint               `form:"pipeline"`
	Status     models.UploadStatus `form:"status"`
	DateFrom   *time.Time          `form:"date_from" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int                 `form:"limit"`
	Offset     int                 `form:"offset"`
}

// ValidationOrdering names the orderings the validator task list
// accepts; anything else falls back to id ascending.
type ValidationOrdering string

const (
	OrderByID             ValidationOrdering = "id"
	OrderByUploadID       ValidationOrdering = "upload__id"
	OrderByUploadIDDesc   ValidationOrdering = "-upload__id"
	OrderByUploadedAt     ValidationOrdering = "upload__uploaded_at"
	OrderByUploadedAtDesc ValidationOrdering = "-upload__uploaded_at"
)
