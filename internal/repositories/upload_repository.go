package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/types"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *models.Upload) error
	Save(ctx context.Context, upload *models.Upload) error
	// FindByID loads the aggregate: files with their metadata values,
	// and the validation set (needed by the access evaluator).
	FindByID(ctx context.Context, id uint) (*models.Upload, error)
	// FindLastByUser returns the user's newest upload, or (nil, nil)
	// when the user has none.
	FindLastByUser(ctx context.Context, userID uint) (*models.Upload, error)
	List(ctx context.Context, filters types.UploadFilters) ([]models.Upload, error)
	// ListByPipelineUsers returns uploads of every user bound to the
	// pipeline (the automation view of a pipeline's traffic).
	ListByPipelineUsers(ctx context.Context, pipelineID uint, status models.UploadStatus, filters types.UploadFilters) ([]models.Upload, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Upload, error)
	// WithUserLock serialises fn against other holders of the same
	// user's lock; it is what keeps open-or-resume from racing itself
	// into duplicate drafts.
	WithUserLock(ctx context.Context, userID uint, fn func(ctx context.Context) error) error
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, upload *models.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

func (r *uploadRepository) Save(ctx context.Context, upload *models.Upload) error {
	return r.db.WithContext(ctx).Save(upload).Error
}

func (r *uploadRepository) FindByID(ctx context.Context, id uint) (*models.Upload, error) {
	var upload models.Upload
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Files.Values").
		Preload("Validations").
		First(&upload, id).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepository) FindLastByUser(ctx context.Context, userID uint) (*models.Upload, error) {
	var upload models.Upload
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&upload).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepository) List(ctx context.Context, filters types.UploadFilters) ([]models.Upload, error) {
	query := r.db.WithContext(ctx).Model(&models.Upload{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.PipelineID != nil {
		query = query.Where("pipeline_id = ?", *filters.PipelineID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("uploaded_at >= ?", *filters.DateFrom)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var uploads []models.Upload
	if err := query.Order("id").Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *uploadRepository) ListByPipelineUsers(ctx context.Context, pipelineID uint, status models.UploadStatus, filters types.UploadFilters) ([]models.Upload, error) {
	query := r.db.WithContext(ctx).Model(&models.Upload{}).
		Joins("JOIN customs ON customs.user_id = uploads.user_id").
		Where("customs.pipeline_id = ?", pipelineID)

	if status != "" {
		query = query.Where("uploads.status = ?", status)
	}
	if filters.DateFrom != nil {
		query = query.Where("uploads.uploaded_at >= ?", *filters.DateFrom)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var uploads []models.Upload
	if err := query.Order("uploads.id").Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *uploadRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Upload, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var uploads []models.Upload
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *uploadRepository) WithUserLock(ctx context.Context, userID uint, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch r.db.Dialector.Name() {
		case "postgres":
			// Transaction-scoped advisory lock, released on commit.
			if err := tx.Exec("SELECT pg_advisory_xact_lock(42, ?)", int64(userID)).Error; err != nil {
				return err
			}
		case "mysql":
			name := fmt.Sprintf("upload_user_%d", userID)
			if err := tx.Exec("SELECT GET_LOCK(?, 10)", name).Error; err != nil {
				return err
			}
			defer tx.Exec("SELECT RELEASE_LOCK(?)", name)
		}
		return fn(ctx)
	})
}
