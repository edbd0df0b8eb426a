package services

import (
	"context"

	"gorm.io/gorm"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/pkg/apperrors"
)

// MetadataService writes metadata values onto files, honoring the
// upload's shared-metadata policy, and triggers validation task
// generation on the first uploader write.
type MetadataService interface {
	Write(ctx context.Context, actor *auth.Actor, fileID uint, pairs []dto.MetadataPair) (*models.FileUpload, error)
}

type metadataService struct {
	uploads     repositories.UploadRepository
	files       repositories.FileRepository
	pipelines   repositories.PipelineRepository
	validations ValidationService
	// strict rejects keys absent from the pipeline's form schema.
	strict bool
}

func NewMetadataService(
	uploads repositories.UploadRepository,
	files repositories.FileRepository,
	pipelines repositories.PipelineRepository,
	validations ValidationService,
	strict bool,
) MetadataService {
	return &metadataService{
		uploads:     uploads,
		files:       files,
		pipelines:   pipelines,
		validations: validations,
		strict:      strict,
	}
}

func (s *metadataService) Write(ctx context.Context, actor *auth.Actor, fileID uint, pairs []dto.MetadataPair) (*models.FileUpload, error) {
	for _, pair := range pairs {
		if pair.Key == "" {
			return nil, apperrors.ValidationError(map[string]string{"key": "is required"})
		}
	}

	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	upload, err := s.uploads.FindByID(ctx, file.UploadID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessFile(actor, upload, file) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}

	if s.strict {
		if err := s.checkKeys(ctx, upload, pairs); err != nil {
			return nil, err
		}
	}

	if err := s.apply(ctx, upload, file.ID, pairs); err != nil {
		// A concurrent write can race the upsert into a duplicate-key
		// failure; recompute the change set against fresh state and
		// try once more before surfacing a conflict.
		upload, err = s.uploads.FindByID(ctx, file.UploadID)
		if err != nil {
			return nil, handleUploadError(err)
		}
		if err := s.apply(ctx, upload, file.ID, pairs); err != nil {
			return nil, apperrors.ErrConflict(err, "metadata", "concurrent metadata write")
		}
	}

	// The first uploader write materialises the validation tasks.
	if actor.IsUploader() && len(upload.Validations) == 0 {
		if err := s.validations.GenerateForUpload(ctx, actor, upload.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	logger.CtxInfo(ctx, "metadata written", "upload_id", upload.ID, "file_id", fileID, "pairs", len(pairs))
	return updated, nil
}

// apply computes the change set against the upload's current values
// and persists it atomically. Shared-metadata uploads broadcast every
// pair to all files; otherwise only the target file is touched. A pair
// whose value equals the stored value is skipped entirely.
func (s *metadataService) apply(ctx context.Context, upload *models.Upload, fileID uint, pairs []dto.MetadataPair) error {
	targets := upload.Files
	if !upload.SameMetaForEachFile {
		targets = nil
		for i := range upload.Files {
			if upload.Files[i].ID == fileID {
				targets = append(targets, upload.Files[i])
			}
		}
	}

	var creates, updates []models.MetadataValue
	for i := range targets {
		target := &targets[i]

		existing := make(map[string]*models.MetadataValue, len(target.Values))
		for j := range target.Values {
			existing[target.Values[j].Key] = &target.Values[j]
		}

		for _, pair := range pairs {
			if current, ok := existing[pair.Key]; ok {
				if current.Value != pair.Value {
					updates = append(updates, models.MetadataValue{
						ID:     current.ID,
						FileID: target.ID,
						Key:    pair.Key,
						Value:  pair.Value,
					})
				}
				continue
			}
			creates = append(creates, models.MetadataValue{
				FileID: target.ID,
				Key:    pair.Key,
				Value:  pair.Value,
			})
		}
	}

	return s.files.ApplyValues(ctx, creates, updates)
}

func (s *metadataService) checkKeys(ctx context.Context, upload *models.Upload, pairs []dto.MetadataPair) error {
	if upload.PipelineID == nil {
		return nil
	}
	pipeline, err := s.pipelines.FindByID(ctx, *upload.PipelineID)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if len(pipeline.Fields) == 0 {
		return nil
	}

	known := make(map[string]bool, len(pipeline.Fields))
	for _, field := range pipeline.Fields {
		known[field.Key] = true
	}

	unknown := map[string]string{}
	for _, pair := range pairs {
		if !known[pair.Key] {
			unknown[pair.Key] = "key is not part of the pipeline schema"
		}
	}
	if len(unknown) > 0 {
		return apperrors.ValidationError(unknown)
	}
	return nil
}
