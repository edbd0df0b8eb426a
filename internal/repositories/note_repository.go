package repositories

import (
	"context"

	"gorm.io/gorm"

	"uploadhub_backend/internal/models"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	Save(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id uint) (*models.Note, error)
	ListByUpload(ctx context.Context, uploadID uint) ([]models.Note, error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Save(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByUpload(ctx context.Context, uploadID uint) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		Order("created DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
