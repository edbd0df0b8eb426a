package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/internal/storage"
	"uploadhub_backend/internal/types"
	"uploadhub_backend/pkg/apperrors"
)

type UploadService interface {
	// OpenOrResume returns the caller's open draft upload when one
	// exists, refreshing its timestamp, and creates a new upload bound
	// to the caller's pipeline otherwise.
	OpenOrResume(ctx context.Context, actor *auth.Actor, req *dto.OpenUploadRequest) (*models.Upload, error)
	Get(ctx context.Context, actor *auth.Actor, id uint) (*models.Upload, error)
	SetStatus(ctx context.Context, actor *auth.Actor, id uint, status models.UploadStatus) (*models.Upload, error)
	List(ctx context.Context, actor *auth.Actor, filters types.UploadFilters) ([]models.Upload, error)
	ListByPipeline(ctx context.Context, actor *auth.Actor, pipelineID uint, status models.UploadStatus, filters types.UploadFilters) ([]models.Upload, error)

	AttachFile(ctx context.Context, actor *auth.Actor, uploadID uint, req *dto.AttachFileRequest) (*models.FileUpload, error)
	GetFile(ctx context.Context, actor *auth.Actor, fileID uint) (*models.FileUpload, error)
	ListFiles(ctx context.Context, actor *auth.Actor, uploadID uint) ([]models.FileUpload, error)
	// OpenFile returns the file record plus a reader over its stored
	// bytes; the caller must close the reader.
	OpenFile(ctx context.Context, actor *auth.Actor, fileID uint) (*models.FileUpload, io.ReadCloser, error)
}

type uploadService struct {
	uploads   repositories.UploadRepository
	files     repositories.FileRepository
	pipelines repositories.PipelineRepository
	store     storage.Storage
}

func NewUploadService(
	uploads repositories.UploadRepository,
	files repositories.FileRepository,
	pipelines repositories.PipelineRepository,
	store storage.Storage,
) UploadService {
	return &uploadService{
		uploads:   uploads,
		files:     files,
		pipelines: pipelines,
		store:     store,
	}
}

func (s *uploadService) OpenOrResume(ctx context.Context, actor *auth.Actor, req *dto.OpenUploadRequest) (*models.Upload, error) {
	if !actor.IsUploader() {
		return nil, apperrors.ErrNoPipelineBinding
	}
	pipeline := actor.Pipeline

	var result *models.Upload
	err := s.uploads.WithUserLock(ctx, actor.UserID, func(ctx context.Context) error {
		last, err := s.uploads.FindLastByUser(ctx, actor.UserID)
		if err != nil {
			return err
		}

		if last != nil && last.Status.IsDraft() {
			last.UploadedAt = time.Now()
			if err := s.uploads.Save(ctx, last); err != nil {
				return err
			}
			result = last
			return nil
		}

		sameMeta := pipeline.DefaultSameMetadataForEachFile
		if req != nil && req.SameMetaForEachFile != nil && pipeline.CanEditSameMetadataForEachFile {
			sameMeta = *req.SameMetaForEachFile
		}

		upload := &models.Upload{
			UserID:              &actor.UserID,
			PipelineID:          &pipeline.ID,
			UploadedAt:          time.Now(),
			SameMetaForEachFile: sameMeta,
			Status:              models.UploadStatusInit,
		}
		if err := s.uploads.Create(ctx, upload); err != nil {
			return err
		}
		result = upload
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "upload opened", "upload_id", result.ID, "status", result.Status)
	return result, nil
}

func (s *uploadService) Get(ctx context.Context, actor *auth.Actor, id uint) (*models.Upload, error) {
	upload, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessUpload(actor, upload) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}
	return upload, nil
}

func (s *uploadService) SetStatus(ctx context.Context, actor *auth.Actor, id uint, status models.UploadStatus) (*models.Upload, error) {
	if !models.ValidUploadStatus(status) {
		return nil, apperrors.ErrInvalidStatus("upload", "unknown upload status")
	}

	upload, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessUpload(actor, upload) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}

	upload.Status = status
	if err := s.uploads.Save(ctx, upload); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return upload, nil
}

func (s *uploadService) List(ctx context.Context, actor *auth.Actor, filters types.UploadFilters) ([]models.Upload, error) {
	// Non-automation callers only ever see their own uploads.
	if !actor.CanAutomate() {
		filters.UserID = &actor.UserID
	}
	uploads, err := s.uploads.List(ctx, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return uploads, nil
}

func (s *uploadService) ListByPipeline(ctx context.Context, actor *auth.Actor, pipelineID uint, status models.UploadStatus, filters types.UploadFilters) ([]models.Upload, error) {
	if _, err := s.pipelines.FindByID(ctx, pipelineID); err != nil {
		return nil, handlePipelineError(err)
	}

	if status == "" {
		status = models.UploadStatusCompleted
	}

	if actor.CanAutomate() {
		uploads, err := s.uploads.ListByPipelineUsers(ctx, pipelineID, status, filters)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return uploads, nil
	}

	filters.UserID = &actor.UserID
	filters.PipelineID = &pipelineID
	filters.Status = status
	uploads, err := s.uploads.List(ctx, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return uploads, nil
}

func (s *uploadService) AttachFile(ctx context.Context, actor *auth.Actor, uploadID uint, req *dto.AttachFileRequest) (*models.FileUpload, error) {
	upload, err := s.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessUpload(actor, upload) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}
	if !upload.Status.IsDraft() {
		return nil, apperrors.ErrInvalidStatus("upload", "upload is no longer open for files")
	}
	if upload.PipelineID == nil {
		return nil, apperrors.NewBadRequestError("upload has no pipeline")
	}

	pipeline, err := s.pipelines.FindByID(ctx, *upload.PipelineID)
	if err != nil {
		return nil, handlePipelineError(err)
	}

	if req.Size > 0 && req.Size > pipeline.MaxSizeInByte {
		return nil, apperrors.ErrFileTooLarge
	}
	if err := checkMime(pipeline, req.DeclaredType); err != nil {
		return nil, err
	}

	ownerID := actor.UserID
	if upload.UserID != nil {
		ownerID = *upload.UserID
	}
	path := storage.BuildPath(pipeline.Name, ownerID, upload.ID, req.Filename)

	// Hash while streaming; one pass over the bytes.
	hasher := sha256.New()
	limited := io.LimitReader(req.Content, pipeline.MaxSizeInByte+1)
	written, err := s.store.Save(ctx, path, io.TeeReader(limited, hasher))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if written > pipeline.MaxSizeInByte {
		_ = s.store.Delete(ctx, path)
		return nil, apperrors.ErrFileTooLarge
	}

	checksum := hex.EncodeToString(hasher.Sum(nil))
	if req.Checksum != "" && !strings.EqualFold(req.Checksum, checksum) {
		_ = s.store.Delete(ctx, path)
		return nil, apperrors.ErrChecksumMismatch
	}

	file := &models.FileUpload{
		UploadID: upload.ID,
		Name:     req.Filename,
		Path:     path,
		Size:     written,
		Checksum: checksum,
		Type:     req.DeclaredType,
	}
	if err := s.files.Create(ctx, file); err != nil {
		_ = s.store.Delete(ctx, path)
		return nil, apperrors.InternalError(err)
	}

	if upload.Status == models.UploadStatusInit {
		upload.Status = models.UploadStatusFileUploaded
		if err := s.uploads.Save(ctx, upload); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "file attached", "upload_id", upload.ID, "file_id", file.ID, "size", written)
	return file, nil
}

func (s *uploadService) GetFile(ctx context.Context, actor *auth.Actor, fileID uint) (*models.FileUpload, error) {
	file, upload, err := s.loadFileWithUpload(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessFile(actor, upload, file) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}
	return file, nil
}

func (s *uploadService) ListFiles(ctx context.Context, actor *auth.Actor, uploadID uint) ([]models.FileUpload, error) {
	upload, err := s.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, handleUploadError(err)
	}
	if !auth.CanAccessUpload(actor, upload) {
		return nil, apperrors.NewUnauthorizedError("access denied")
	}
	return upload.Files, nil
}

func (s *uploadService) OpenFile(ctx context.Context, actor *auth.Actor, fileID uint) (*models.FileUpload, io.ReadCloser, error) {
	file, upload, err := s.loadFileWithUpload(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if !auth.CanAccessFile(actor, upload, file) {
		return nil, nil, apperrors.NewUnauthorizedError("access denied")
	}

	reader, err := s.store.Open(ctx, file.Path)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return file, reader, nil
}

func (s *uploadService) loadFileWithUpload(ctx context.Context, fileID uint) (*models.FileUpload, *models.Upload, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, nil, handleUploadError(err)
	}
	upload, err := s.uploads.FindByID(ctx, file.UploadID)
	if err != nil {
		return nil, nil, handleUploadError(err)
	}
	return file, upload, nil
}

func checkMime(pipeline *models.Pipeline, declaredType string) error {
	if len(pipeline.Mimes) == 0 {
		return nil
	}
	for _, mime := range pipeline.Mimes {
		if mime.Mime == declaredType {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

func handleUploadError(err error) error {
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
