package services

import (
	"context"

	"gorm.io/gorm"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/email"
	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/internal/types"
	"uploadhub_backend/pkg/apperrors"
)

// ValidationService is the review workflow engine: it materialises the
// per-group task set of an upload, serves the validator worklist, and
// records decisions.
type ValidationService interface {
	// GenerateForUpload creates one NOT_VALIDATED task per distinct
	// validator group across the uploader's workflows. Generation is
	// idempotent: an upload with existing tasks is left untouched.
	GenerateForUpload(ctx context.Context, actor *auth.Actor, uploadID uint) error
	ListForValidator(ctx context.Context, actor *auth.Actor, ordering types.ValidationOrdering) ([]models.UploadValidation, error)
	Get(ctx context.Context, actor *auth.Actor, id uint) (*models.UploadValidation, error)
	Mutate(ctx context.Context, actor *auth.Actor, id uint, req *dto.ValidationUpdateRequest) (*models.UploadValidation, error)
	// FullyValidatedUploads returns the pipeline's uploads whose every
	// review task is VALIDATED_OK. Uploads with no tasks never qualify.
	FullyValidatedUploads(ctx context.Context, actor *auth.Actor, pipelineID uint) ([]models.Upload, error)
}

type validationService struct {
	validations repositories.ValidationRepository
	uploads     repositories.UploadRepository
	users       repositories.UserRepository
	mailer      email.Provider
}

func NewValidationService(
	validations repositories.ValidationRepository,
	uploads repositories.UploadRepository,
	users repositories.UserRepository,
	mailer email.Provider,
) ValidationService {
	return &validationService{
		validations: validations,
		uploads:     uploads,
		users:       users,
		mailer:      mailer,
	}
}

func (s *validationService) GenerateForUpload(ctx context.Context, actor *auth.Actor, uploadID uint) error {
	if !actor.IsUploader() {
		return nil
	}

	count, err := s.validations.CountByUpload(ctx, uploadID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count > 0 {
		return nil
	}

	workflows, err := s.validations.WorkflowsByPipeline(ctx, actor.Pipeline.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if len(workflows) == 0 {
		return nil
	}

	// One task per group, deduplicated in first-seen order across the
	// workflows. Every task is attributed to the first workflow.
	firstWorkflowID := workflows[0].ID
	seen := make(map[uint]bool)
	var tasks []models.UploadValidation
	for _, workflow := range workflows {
		for _, group := range workflow.ValidatorGroups {
			if seen[group.ID] {
				continue
			}
			seen[group.ID] = true
			groupID := group.ID
			workflowID := firstWorkflowID
			tasks = append(tasks, models.UploadValidation{
				UploadID:   uploadID,
				WorkflowID: &workflowID,
				GroupID:    &groupID,
				State:      models.StateNotValidated,
			})
		}
	}

	if err := s.validations.CreateTasks(ctx, tasks); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "validation tasks generated", "upload_id", uploadID, "tasks", len(tasks))
	return nil
}

func (s *validationService) ListForValidator(ctx context.Context, actor *auth.Actor, ordering types.ValidationOrdering) ([]models.UploadValidation, error) {
	if !actor.IsValidator() {
		return nil, apperrors.NewUnauthorizedError("validator access required")
	}
	validations, err := s.validations.ListByGroups(ctx, actor.GroupIDs(), ordering)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return validations, nil
}

func (s *validationService) Get(ctx context.Context, actor *auth.Actor, id uint) (*models.UploadValidation, error) {
	if !actor.IsValidator() {
		return nil, apperrors.NewUnauthorizedError("validator access required")
	}
	validation, err := s.validations.FindByID(ctx, id)
	if err != nil {
		return nil, handleValidationError(err)
	}
	if !s.inTaskGroup(actor, validation) {
		return nil, apperrors.NewUnauthorizedError("task belongs to another group")
	}
	return validation, nil
}

func (s *validationService) Mutate(ctx context.Context, actor *auth.Actor, id uint, req *dto.ValidationUpdateRequest) (*models.UploadValidation, error) {
	if !actor.IsValidator() {
		return nil, apperrors.NewUnauthorizedError("validator access required")
	}
	if !models.ValidValidationState(req.State) {
		return nil, apperrors.ErrInvalidStatus("validation", "unknown validation state")
	}

	validation, err := s.validations.FindByID(ctx, id)
	if err != nil {
		return nil, handleValidationError(err)
	}
	if !s.inTaskGroup(actor, validation) {
		return nil, apperrors.NewUnauthorizedError("task belongs to another group")
	}

	validation.State = req.State
	validation.ValidatedBy = req.ValidatedBy
	if validation.ValidatedBy == "" {
		validation.ValidatedBy = actor.Username
	}
	if err := s.validations.Save(ctx, validation); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "validation decided",
		"validation_id", validation.ID,
		"upload_id", validation.UploadID,
		"state", validation.State,
		"validated_by", validation.ValidatedBy)

	s.notifyUploader(ctx, validation)
	return validation, nil
}

func (s *validationService) FullyValidatedUploads(ctx context.Context, actor *auth.Actor, pipelineID uint) ([]models.Upload, error) {
	if !actor.CanAutomate() {
		return nil, apperrors.NewUnauthorizedError("automation access required")
	}

	validations, err := s.validations.ListByPipeline(ctx, pipelineID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	uploadIDs := make([]uint, 0, len(validations))
	seen := make(map[uint]bool)
	for _, validation := range validations {
		if !seen[validation.UploadID] {
			seen[validation.UploadID] = true
			uploadIDs = append(uploadIDs, validation.UploadID)
		}
	}

	// The pipeline query only sees tasks born from its workflows; the
	// verdict must cover every task of the upload, whatever its origin.
	all, err := s.validations.ListByUploadIDs(ctx, uploadIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verdict := make(map[uint]bool)
	for _, validation := range all {
		ok, known := verdict[validation.UploadID]
		if !known {
			ok = true
		}
		verdict[validation.UploadID] = ok && validation.State == models.StateValidatedOK
	}

	var passing []uint
	for _, id := range uploadIDs {
		if verdict[id] {
			passing = append(passing, id)
		}
	}

	uploads, err := s.uploads.FindByIDs(ctx, passing)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return uploads, nil
}

func (s *validationService) inTaskGroup(actor *auth.Actor, validation *models.UploadValidation) bool {
	if actor.CanAutomate() {
		return true
	}
	if validation.GroupID == nil {
		return false
	}
	return actor.InGroup(*validation.GroupID)
}

// notifyUploader mails the upload's owner about the decision. Failures
// are logged and swallowed: the decision is already persisted.
func (s *validationService) notifyUploader(ctx context.Context, validation *models.UploadValidation) {
	upload := validation.Upload
	if upload == nil {
		loaded, err := s.uploads.FindByID(ctx, validation.UploadID)
		if err != nil {
			logger.CtxWarn(ctx, "notify: upload lookup failed", "error", err.Error(), "upload_id", validation.UploadID)
			return
		}
		upload = loaded
	}
	if upload.UserID == nil {
		return
	}

	owner, err := s.users.FindByID(ctx, *upload.UserID)
	if err != nil || owner.Email == "" {
		return
	}

	groupName := ""
	if validation.Group != nil {
		groupName = validation.Group.Description
		if groupName == "" {
			groupName = validation.Group.Name
		}
	}

	subject := email.ValidationDecisionSubject(upload.ID)
	body := email.ValidationDecisionBody(upload.ID, groupName, validation.State)
	if err := s.mailer.Send(ctx, owner.Email, subject, body); err != nil {
		logger.CtxWarn(ctx, "notify: mail delivery failed", "error", err.Error(), "upload_id", upload.ID)
	}
}

func handleValidationError(err error) error {
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
