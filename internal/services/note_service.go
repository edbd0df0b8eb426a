package services

import (
	"context"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/pkg/apperrors"
)

// NoteService manages the validator annotations of an upload.
type NoteService interface {
	Create(ctx context.Context, actor *auth.Actor, req *dto.NoteRequest) (*models.Note, error)
	ListByUpload(ctx context.Context, actor *auth.Actor, uploadID uint) ([]models.Note, error)
}

type noteService struct {
	notes   repositories.NoteRepository
	uploads repositories.UploadRepository
}

func NewNoteService(notes repositories.NoteRepository, uploads repositories.UploadRepository) NoteService {
	return &noteService{notes: notes, uploads: uploads}
}

func (s *noteService) Create(ctx context.Context, actor *auth.Actor, req *dto.NoteRequest) (*models.Note, error) {
	if !actor.IsValidator() {
		return nil, apperrors.NewUnauthorizedError("validator access required")
	}

	upload, err := s.uploads.FindByID(ctx, req.UploadID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessUpload(actor, upload) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}

	note := &models.Note{
		UploadID: upload.ID,
		Note:     req.Note,
		User:     actor.Username,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return note, nil
}

func (s *noteService) ListByUpload(ctx context.Context, actor *auth.Actor, uploadID uint) ([]models.Note, error) {
	if !actor.IsValidator() && !actor.CanAutomate() {
		return nil, apperrors.NewUnauthorizedError("validator access required")
	}

	upload, err := s.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessUpload(actor, upload) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}

	notes, err := s.notes.ListByUpload(ctx, uploadID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notes, nil
}
