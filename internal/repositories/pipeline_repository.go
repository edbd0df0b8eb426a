package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uploadhub_backend/internal/models"
)

type PipelineRepository interface {
	// FindByID loads the pipeline with its mime list and form schema:
	// fields ordered by (scope, order), options ordered by order.
	FindByID(ctx context.Context, id uint) (*models.Pipeline, error)
	FindAll(ctx context.Context) ([]models.Pipeline, error)
	// GroupByID resolves a scope group, used for the scope display name.
	GroupByID(ctx context.Context, id uint) (*models.Group, error)
}

type pipelineRepository struct {
	db *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) PipelineRepository {
	return &pipelineRepository{db: db}
}

func orderedFields(db *gorm.DB) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "scope_id"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
}

func (r *pipelineRepository) FindByID(ctx context.Context, id uint) (*models.Pipeline, error) {
	var pipeline models.Pipeline
	err := r.db.WithContext(ctx).
		Preload("Mimes").
		Preload("Fields", orderedFields).
		Preload("Fields.Options", orderedOptions).
		First(&pipeline, id).Error
	if err != nil {
		return nil, err
	}
	return &pipeline, nil
}

func (r *pipelineRepository) FindAll(ctx context.Context) ([]models.Pipeline, error) {
	var pipelines []models.Pipeline
	err := r.db.WithContext(ctx).
		Preload("Mimes").
		Preload("Fields", orderedFields).
		Preload("Fields.Options", orderedOptions).
		Order("id").
		Find(&pipelines).Error
	if err != nil {
		return nil, err
	}
	return pipelines, nil
}

func (r *pipelineRepository) GroupByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
