package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/internal/types"
	"uploadhub_backend/pkg/apperrors"
)

func automationActor() *auth.Actor {
	return &auth.Actor{
		UserID: 20,
		Groups: []models.Group{{ID: 2, Name: models.GroupAutomation}},
	}
}

func validatorActor(groupIDs ...uint) *auth.Actor {
	groups := []models.Group{{ID: 100, Name: models.GroupValidator}}
	for _, id := range groupIDs {
		groups = append(groups, models.Group{ID: id})
	}
	return &auth.Actor{UserID: 10, Username: "bob", Groups: groups}
}

func TestGenerateForUpload_NonUploaderIsNoOp(t *testing.T) {
	validations := new(MockValidationRepo)
	svc := NewValidationService(validations, new(MockUploadRepo), new(MockUserRepo), new(MockEmailProvider))

	err := svc.GenerateForUpload(context.Background(), validatorActor(), 3)
	assert.NoError(t, err)
	validations.AssertNotCalled(t, "CountByUpload", mock.Anything, mock.Anything)
}

func TestGenerateForUpload_ExistingTasksSkip(t *testing.T) {
	validations := new(MockValidationRepo)
	validations.On("CountByUpload", mock.Anything, uint(3)).Return(int64(2), nil)

	svc := NewValidationService(validations, new(MockUploadRepo), new(MockUserRepo), new(MockEmailProvider))
	actor := &auth.Actor{UserID: 7, Pipeline: &models.Pipeline{ID: 1}}

	err := svc.GenerateForUpload(context.Background(), actor, 3)
	assert.NoError(t, err)
	validations.AssertNotCalled(t, "CreateTasks", mock.Anything, mock.Anything)
}

func TestFullyValidatedUploads_AndReduction(t *testing.T) {
	validations := new(MockValidationRepo)
	validations.On("ListByPipeline", mock.Anything, uint(1)).Return([]models.UploadValidation{
		{ID: 1, UploadID: 1, State: models.StateValidatedOK},
		{ID: 2, UploadID: 1, State: models.StateValidatedOK},
		{ID: 3, UploadID: 2, State: models.StateValidatedOK},
		{ID: 4, UploadID: 3, State: models.StateValidatedOK},
	}, nil)
	// Upload 2 carries a NOK, upload 3 a pending task outside the
	// pipeline query. Only upload 1 passes.
	validations.On("ListByUploadIDs", mock.Anything, []uint{1, 2, 3}).Return([]models.UploadValidation{
		{ID: 1, UploadID: 1, State: models.StateValidatedOK},
		{ID: 2, UploadID: 1, State: models.StateValidatedOK},
		{ID: 3, UploadID: 2, State: models.StateValidatedOK},
		{ID: 5, UploadID: 2, State: models.StateValidatedNOK},
		{ID: 4, UploadID: 3, State: models.StateValidatedOK},
		{ID: 6, UploadID: 3, State: models.StateNotValidated},
	}, nil)

	uploads := new(MockUploadRepo)
	uploads.On("FindByIDs", mock.Anything, []uint{1}).Return([]models.Upload{{ID: 1}}, nil)

	svc := NewValidationService(validations, uploads, new(MockUserRepo), new(MockEmailProvider))

	result, err := svc.FullyValidatedUploads(context.Background(), automationActor(), 1)
	assert.NoError(t, err)
	if assert.Len(t, result, 1) {
		assert.Equal(t, uint(1), result[0].ID)
	}
}

func TestFullyValidatedUploads_RequiresAutomation(t *testing.T) {
	svc := NewValidationService(new(MockValidationRepo), new(MockUploadRepo), new(MockUserRepo), new(MockEmailProvider))

	_, err := svc.FullyValidatedUploads(context.Background(), validatorActor(), 1)
	var appErr *apperrors.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, 401, appErr.HTTPCode)
	}
}

func TestListForValidator_GateAndGroups(t *testing.T) {
	validations := new(MockValidationRepo)
	validations.On("ListByGroups", mock.Anything, []uint{100, 5}, types.OrderByUploadedAtDesc).
		Return([]models.UploadValidation{{ID: 1, UploadID: 3}}, nil)

	svc := NewValidationService(validations, new(MockUploadRepo), new(MockUserRepo), new(MockEmailProvider))

	result, err := svc.ListForValidator(context.Background(), validatorActor(5), types.OrderByUploadedAtDesc)
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	_, err = svc.ListForValidator(context.Background(), &auth.Actor{UserID: 1}, types.OrderByID)
	assert.Error(t, err)
}

func TestMutate_InvalidStateRejected(t *testing.T) {
	svc := NewValidationService(new(MockValidationRepo), new(MockUploadRepo), new(MockUserRepo), new(MockEmailProvider))

	req := &dto.ValidationUpdateRequest{State: "MAYBE"}
	_, err := svc.Mutate(context.Background(), validatorActor(5), 1, req)
	var appErr *apperrors.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	}
}

func TestMutate_ForeignGroupDenied(t *testing.T) {
	validations := new(MockValidationRepo)
	validations.On("FindByID", mock.Anything, uint(1)).Return(&models.UploadValidation{
		ID:       1,
		UploadID: 3,
		GroupID:  uintPtr(9),
	}, nil)

	svc := NewValidationService(validations, new(MockUploadRepo), new(MockUserRepo), new(MockEmailProvider))

	req := &dto.ValidationUpdateRequest{State: models.StateValidatedOK}
	_, err := svc.Mutate(context.Background(), validatorActor(5), 1, req)
	assert.Error(t, err)
	validations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMutate_RecordsDecisionAndNotifies(t *testing.T) {
	validations := new(MockValidationRepo)
	validations.On("FindByID", mock.Anything, uint(1)).Return(&models.UploadValidation{
		ID:       1,
		UploadID: 3,
		GroupID:  uintPtr(5),
		Group:    &models.Group{ID: 5, Name: "reviewers", Description: "Reviewers"},
		Upload:   &models.Upload{ID: 3, UserID: uintPtr(7)},
		State:    models.StateNotValidated,
	}, nil)
	validations.On("Save", mock.Anything, mock.MatchedBy(func(v *models.UploadValidation) bool {
		return v.State == models.StateValidatedOK && v.ValidatedBy == "bob"
	})).Return(nil)

	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7, Email: "alice@example.com"}, nil)

	mailer := new(MockEmailProvider)
	mailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := NewValidationService(validations, new(MockUploadRepo), users, mailer)

	req := &dto.ValidationUpdateRequest{State: models.StateValidatedOK}
	result, err := svc.Mutate(context.Background(), validatorActor(5), 1, req)
	assert.NoError(t, err)
	assert.Equal(t, models.StateValidatedOK, result.State)
	validations.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestMutate_MailFailureDoesNotSurface(t *testing.T) {
	validations := new(MockValidationRepo)
	validations.On("FindByID", mock.Anything, uint(1)).Return(&models.UploadValidation{
		ID:       1,
		UploadID: 3,
		GroupID:  uintPtr(5),
		Upload:   &models.Upload{ID: 3, UserID: uintPtr(7)},
	}, nil)
	validations.On("Save", mock.Anything, mock.Anything).Return(nil)

	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7, Email: "alice@example.com"}, nil)

	mailer := new(MockEmailProvider)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := NewValidationService(validations, new(MockUploadRepo), users, mailer)

	_, err := svc.Mutate(context.Background(), validatorActor(5), 1, &dto.ValidationUpdateRequest{State: models.StateValidatedNOK})
	assert.NoError(t, err)
}
