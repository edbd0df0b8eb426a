package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/types"
)

type ValidationRepository interface {
	// CreateTasks inserts the generated task set. Conflicts on the
	// (upload, group) unique index are ignored, so a concurrent
	// duplicate trigger cannot produce duplicate tasks.
	CreateTasks(ctx context.Context, tasks []models.UploadValidation) error
	CountByUpload(ctx context.Context, uploadID uint) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.UploadValidation, error)
	Save(ctx context.Context, validation *models.UploadValidation) error
	ListByGroups(ctx context.Context, groupIDs []uint, ordering types.ValidationOrdering) ([]models.UploadValidation, error)
	ListByUploadIDs(ctx context.Context, uploadIDs []uint) ([]models.UploadValidation, error)
	// ListByPipeline returns every validation generated from one of the
	// pipeline's workflows.
	ListByPipeline(ctx context.Context, pipelineID uint) ([]models.UploadValidation, error)
	// WorkflowsByPipeline returns the pipeline's workflows with their
	// validator groups, in ascending ID order (the deterministic
	// iteration order of task generation).
	WorkflowsByPipeline(ctx context.Context, pipelineID uint) ([]models.Workflow, error)
}

type validationRepository struct {
	db *gorm.DB
}

func NewValidationRepository(db *gorm.DB) ValidationRepository {
	return &validationRepository{db: db}
}

func (r *validationRepository) CreateTasks(ctx context.Context, tasks []models.UploadValidation) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tasks).Error
}

func (r *validationRepository) CountByUpload(ctx context.Context, uploadID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UploadValidation{}).
		Where("upload_id = ?", uploadID).
		Count(&count).Error
	return count, err
}

func (r *validationRepository) FindByID(ctx context.Context, id uint) (*models.UploadValidation, error) {
	var validation models.UploadValidation
	err := r.db.WithContext(ctx).
		Preload("Upload").
		Preload("Group").
		First(&validation, id).Error
	if err != nil {
		return nil, err
	}
	return &validation, nil
}

func (r *validationRepository) Save(ctx context.Context, validation *models.UploadValidation) error {
	return r.db.WithContext(ctx).Save(validation).Error
}

func (r *validationRepository) ListByGroups(ctx context.Context, groupIDs []uint, ordering types.ValidationOrdering) ([]models.UploadValidation, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.UploadValidation{}).
		Preload("Upload").
		Where("group_id IN ?", groupIDs)

	switch ordering {
	case types.OrderByUploadID:
		query = query.Order("upload_id")
	case types.OrderByUploadIDDesc:
		query = query.Order("upload_id DESC")
	case types.OrderByUploadedAt:
		query = query.Joins("JOIN uploads ON uploads.id = upload_validations.upload_id").
			Order("uploads.uploaded_at")
	case types.OrderByUploadedAtDesc:
		query = query.Joins("JOIN uploads ON uploads.id = upload_validations.upload_id").
			Order("uploads.uploaded_at DESC")
	default:
		query = query.Order("id")
	}

	var validations []models.UploadValidation
	if err := query.Find(&validations).Error; err != nil {
		return nil, err
	}
	return validations, nil
}

func (r *validationRepository) ListByUploadIDs(ctx context.Context, uploadIDs []uint) ([]models.UploadValidation, error) {
	if len(uploadIDs) == 0 {
		return nil, nil
	}
	var validations []models.UploadValidation
	err := r.db.WithContext(ctx).
		Where("upload_id IN ?", uploadIDs).
		Find(&validations).Error
	if err != nil {
		return nil, err
	}
	return validations, nil
}

func (r *validationRepository) ListByPipeline(ctx context.Context, pipelineID uint) ([]models.UploadValidation, error) {
	var validations []models.UploadValidation
	err := r.db.WithContext(ctx).
		Joins("JOIN workflows ON workflows.id = upload_validations.workflow_id").
		Where("workflows.pipeline_id = ?", pipelineID).
		Find(&validations).Error
	if err != nil {
		return nil, err
	}
	return validations, nil
}

func (r *validationRepository) WorkflowsByPipeline(ctx context.Context, pipelineID uint) ([]models.Workflow, error) {
	var workflows []models.Workflow
	err := r.db.WithContext(ctx).
		Preload("ValidatorGroups").
		Where("pipeline_id = ?", pipelineID).
		Order("id").
		Find(&workflows).Error
	if err != nil {
		return nil, err
	}
	return workflows, nil
}
