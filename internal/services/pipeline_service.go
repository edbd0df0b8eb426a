package services

import (
	"context"

	"gorm.io/gorm"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/pkg/apperrors"
)

// PipelineService is the read side of the pipeline configuration:
// schema resolution with role-scoped field visibility. Configuration
// mutation is an administrative concern outside this service.
type PipelineService interface {
	Get(ctx context.Context, actor *auth.Actor, id uint) (*dto.PipelineView, error)
	List(ctx context.Context, actor *auth.Actor) ([]dto.PipelineView, error)
}

type pipelineService struct {
	pipelines repositories.PipelineRepository
}

func NewPipelineService(pipelines repositories.PipelineRepository) PipelineService {
	return &pipelineService{pipelines: pipelines}
}

func (s *pipelineService) Get(ctx context.Context, actor *auth.Actor, id uint) (*dto.PipelineView, error) {
	pipeline, err := s.pipelines.FindByID(ctx, id)
	if err != nil {
		return nil, handlePipelineError(err)
	}

	if actor.IsUploader() {
		// An uploader can resolve only its own pipeline, and gets the
		// scoped view: validator-only annotation fields are hidden.
		if actor.Pipeline == nil || actor.Pipeline.ID != pipeline.ID {
			return nil, apperrors.NewUnauthorizedError("pipeline is not bound to this identity")
		}
	}

	view := s.buildView(ctx, pipeline, actor)
	return &view, nil
}

func (s *pipelineService) List(ctx context.Context, actor *auth.Actor) ([]dto.PipelineView, error) {
	if actor.IsUploader() {
		return nil, apperrors.NewUnauthorizedError("uploaders cannot list pipelines")
	}

	pipelines, err := s.pipelines.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.PipelineView, 0, len(pipelines))
	for i := range pipelines {
		views = append(views, s.buildView(ctx, &pipelines[i], actor))
	}
	return views, nil
}

func (s *pipelineService) buildView(ctx context.Context, pipeline *models.Pipeline, actor *auth.Actor) dto.PipelineView {
	fields := pipeline.Fields
	if !actor.CanAutomate() {
		fields = ScopedFields(fields, actor)
	}

	views := make([]dto.FieldView, 0, len(fields))
	for _, field := range fields {
		fv := dto.FieldView{MetadataFormField: field}
		if field.ScopeID != nil {
			if group, err := s.pipelines.GroupByID(ctx, *field.ScopeID); err == nil {
				name := group.Description
				fv.ScopeGroupName = &name
			}
		}
		views = append(views, fv)
	}

	return dto.PipelineView{
		ID:                             pipeline.ID,
		Name:                           pipeline.Name,
		Description:                    pipeline.Description,
		MaxSizeInByte:                  pipeline.MaxSizeInByte,
		DefaultSameMetadataForEachFile: pipeline.DefaultSameMetadataForEachFile,
		CanEditSameMetadataForEachFile: pipeline.CanEditSameMetadataForEachFile,
		Mimes:                          pipeline.Mimes,
		Fields:                         views,
	}
}

// ScopedFields filters a schema down to what the actor may see: fields
// without a scope, plus fields scoped to one of the actor's groups.
// Order is preserved (fields arrive sorted by (scope, order)).
func ScopedFields(fields []models.MetadataFormField, actor *auth.Actor) []models.MetadataFormField {
	visible := make([]models.MetadataFormField, 0, len(fields))
	for _, field := range fields {
		if field.ScopeID == nil || actor.InGroup(*field.ScopeID) {
			visible = append(visible, field)
		}
	}
	return visible
}

func handlePipelineError(err error) error {
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
