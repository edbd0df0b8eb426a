package repositories

import (
	"context"

	"gorm.io/gorm"

	"uploadhub_backend/internal/models"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.FileUpload) error
	// FindByID loads the file with its metadata values.
	FindByID(ctx context.Context, id uint) (*models.FileUpload, error)
	ListByUpload(ctx context.Context, uploadID uint) ([]models.FileUpload, error)
	// ApplyValues persists a computed metadata change set in one
	// transaction: either every create and update lands, or none.
	ApplyValues(ctx context.Context, creates []models.MetadataValue, updates []models.MetadataValue) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *models.FileUpload) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id uint) (*models.FileUpload, error) {
	var file models.FileUpload
	err := r.db.WithContext(ctx).
		Preload("Values").
		First(&file, id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) ListByUpload(ctx context.Context, uploadID uint) ([]models.FileUpload, error) {
	var files []models.FileUpload
	err := r.db.WithContext(ctx).
		Preload("Values").
		Where("upload_id = ?", uploadID).
		Order("id").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) ApplyValues(ctx context.Context, creates []models.MetadataValue, updates []models.MetadataValue) error {
	if len(creates) == 0 && len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(creates) > 0 {
			if err := tx.Create(&creates).Error; err != nil {
				return err
			}
		}
		for i := range updates {
			err := tx.Model(&models.MetadataValue{}).
				Where("id = ?", updates[i].ID).
				Update("value", updates[i].Value).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
