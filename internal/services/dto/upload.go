package dto

import (
	"io"
	"time"

	"uploadhub_backend/internal/models"
)

// OpenUploadRequest carries the optional per-upload override of the
// shared-metadata flag; honored only when the pipeline permits editing.
type OpenUploadRequest struct {
	SameMetaForEachFile *bool `json:"same_meta_for_each_file"`
}

// AttachFileRequest describes one file being appended to an upload.
// Checksum is the client-declared sha256 hex digest; when present the
// stored bytes must match it.
type AttachFileRequest struct {
	Filename     string    `json:"name" validate:"required"`
	DeclaredType string    `json:"type"`
	Checksum     string    `json:"checksum"`
	Size         int64     `json:"size"`
	Content      io.Reader `json:"-"`
}

// MetadataPair is one (key, value) entry of a metadata write.
type MetadataPair struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type SetStatusRequest struct {
	Status models.UploadStatus `json:"status" validate:"required"`
}

type NoteRequest struct {
	UploadID uint   `json:"upload" validate:"required"`
	Note     string `json:"note" validate:"required"`
}

type ValidationUpdateRequest struct {
	State       models.ValidationState `json:"state" validate:"required"`
	ValidatedBy string                 `json:"validated_by"`
}

type UploadListResponse struct {
	Count   int             `json:"count"`
	Results []models.Upload `json:"results"`
}

// UploadView is the list/detail shape of an upload.
type UploadView struct {
	ID                  uint                `json:"id"`
	User                *uint               `json:"user"`
	Pipeline            *uint               `json:"pipeline"`
	UploadedAt          time.Time           `json:"uploaded_at"`
	SameMetaForEachFile bool                `json:"same_meta_for_each_file"`
	Status              models.UploadStatus `json:"status"`
	Files               []models.FileUpload `json:"files,omitempty"`
}
