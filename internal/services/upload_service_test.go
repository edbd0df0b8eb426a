package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/internal/types"
	"uploadhub_backend/pkg/apperrors"
)

func uploaderActor() *auth.Actor {
	return &auth.Actor{
		UserID:   7,
		Username: "alice",
		Pipeline: &models.Pipeline{
			ID:                             1,
			Name:                           "invoices",
			DefaultSameMetadataForEachFile: true,
			CanEditSameMetadataForEachFile: true,
			MaxSizeInByte:                  1024,
		},
	}
}

func TestOpenOrResume_ReusesDraft(t *testing.T) {
	uploads := new(MockUploadRepo)
	draft := &models.Upload{
		ID:         3,
		UserID:     uintPtr(7),
		PipelineID: uintPtr(1),
		Status:     models.UploadStatusInit,
		UploadedAt: time.Now().Add(-time.Hour),
	}
	uploads.On("WithUserLock", mock.Anything, uint(7)).Return(nil)
	uploads.On("FindLastByUser", mock.Anything, uint(7)).Return(draft, nil)
	uploads.On("Save", mock.Anything, draft).Return(nil)

	svc := NewUploadService(uploads, new(MockFileRepo), new(MockPipelineRepo), new(MockStorage))

	before := time.Now()
	result, err := svc.OpenOrResume(context.Background(), uploaderActor(), nil)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), result.ID)
	assert.False(t, result.UploadedAt.Before(before))
	uploads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOpenOrResume_NewUploadAfterCompleted(t *testing.T) {
	uploads := new(MockUploadRepo)
	completed := &models.Upload{
		ID:     3,
		UserID: uintPtr(7),
		Status: models.UploadStatusCompleted,
	}
	uploads.On("WithUserLock", mock.Anything, uint(7)).Return(nil)
	uploads.On("FindLastByUser", mock.Anything, uint(7)).Return(completed, nil)
	uploads.On("Create", mock.Anything, mock.AnythingOfType("*models.Upload")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Upload).ID = 4
		}).
		Return(nil)

	svc := NewUploadService(uploads, new(MockFileRepo), new(MockPipelineRepo), new(MockStorage))

	sameMeta := false
	req := &dto.OpenUploadRequest{SameMetaForEachFile: &sameMeta}
	result, err := svc.OpenOrResume(context.Background(), uploaderActor(), req)
	assert.NoError(t, err)
	assert.Equal(t, uint(4), result.ID)
	assert.Equal(t, models.UploadStatusInit, result.Status)
	assert.Equal(t, uintPtr(1), result.PipelineID)
	assert.False(t, result.SameMetaForEachFile)
}

func TestOpenOrResume_OverrideIgnoredWhenLocked(t *testing.T) {
	uploads := new(MockUploadRepo)
	uploads.On("WithUserLock", mock.Anything, uint(7)).Return(nil)
	uploads.On("FindLastByUser", mock.Anything, uint(7)).Return(nil, nil)
	uploads.On("Create", mock.Anything, mock.AnythingOfType("*models.Upload")).Return(nil)

	actor := uploaderActor()
	actor.Pipeline.CanEditSameMetadataForEachFile = false

	svc := NewUploadService(uploads, new(MockFileRepo), new(MockPipelineRepo), new(MockStorage))

	sameMeta := false
	result, err := svc.OpenOrResume(context.Background(), actor, &dto.OpenUploadRequest{SameMetaForEachFile: &sameMeta})
	assert.NoError(t, err)
	assert.True(t, result.SameMetaForEachFile)
}

func TestOpenOrResume_NoPipelineBinding(t *testing.T) {
	svc := NewUploadService(new(MockUploadRepo), new(MockFileRepo), new(MockPipelineRepo), new(MockStorage))

	_, err := svc.OpenOrResume(context.Background(), &auth.Actor{UserID: 7}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNoPipelineBinding)
}

func attachFixtures(t *testing.T, pipeline *models.Pipeline) (*MockUploadRepo, *MockFileRepo, *MockPipelineRepo, *MockStorage) {
	t.Helper()
	uploads := new(MockUploadRepo)
	uploads.On("FindByID", mock.Anything, uint(3)).Return(&models.Upload{
		ID:         3,
		UserID:     uintPtr(7),
		PipelineID: &pipeline.ID,
		Status:     models.UploadStatusInit,
	}, nil)

	pipelines := new(MockPipelineRepo)
	pipelines.On("FindByID", mock.Anything, pipeline.ID).Return(pipeline, nil)

	return uploads, new(MockFileRepo), pipelines, new(MockStorage)
}

func TestAttachFile_DeclaredSizeOverLimit(t *testing.T) {
	pipeline := &models.Pipeline{ID: 1, Name: "invoices", MaxSizeInByte: 10}
	uploads, files, pipelines, store := attachFixtures(t, pipeline)

	svc := NewUploadService(uploads, files, pipelines, store)
	req := &dto.AttachFileRequest{
		Filename: "big.pdf",
		Size:     11,
		Content:  strings.NewReader("0123456789A"),
	}

	_, err := svc.AttachFile(context.Background(), &auth.Actor{UserID: 7}, 3, req)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachFile_StreamedBytesOverLimit(t *testing.T) {
	pipeline := &models.Pipeline{ID: 1, Name: "invoices", MaxSizeInByte: 10}
	uploads, files, pipelines, store := attachFixtures(t, pipeline)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(int64(-1), nil)
	store.On("Delete", mock.Anything, mock.Anything).Return(nil)

	svc := NewUploadService(uploads, files, pipelines, store)
	req := &dto.AttachFileRequest{
		Filename: "big.pdf",
		Content:  strings.NewReader("0123456789ABCDEF"),
	}

	_, err := svc.AttachFile(context.Background(), &auth.Actor{UserID: 7}, 3, req)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	store.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAttachFile_MimeNotAllowed(t *testing.T) {
	pipeline := &models.Pipeline{
		ID:            1,
		Name:          "invoices",
		MaxSizeInByte: 1024,
		Mimes:         []models.AllowedFileType{{ID: 1, Mime: "application/pdf"}},
	}
	uploads, files, pipelines, store := attachFixtures(t, pipeline)

	svc := NewUploadService(uploads, files, pipelines, store)
	req := &dto.AttachFileRequest{
		Filename:     "notes.txt",
		DeclaredType: "text/plain",
		Content:      strings.NewReader("hello"),
	}

	_, err := svc.AttachFile(context.Background(), &auth.Actor{UserID: 7}, 3, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestAttachFile_ChecksumMismatch(t *testing.T) {
	pipeline := &models.Pipeline{ID: 1, Name: "invoices", MaxSizeInByte: 1024}
	uploads, files, pipelines, store := attachFixtures(t, pipeline)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(int64(-1), nil)
	store.On("Delete", mock.Anything, mock.Anything).Return(nil)

	svc := NewUploadService(uploads, files, pipelines, store)
	req := &dto.AttachFileRequest{
		Filename: "doc.pdf",
		Checksum: "deadbeef",
		Content:  strings.NewReader("hello world"),
	}

	_, err := svc.AttachFile(context.Background(), &auth.Actor{UserID: 7}, 3, req)
	assert.ErrorIs(t, err, apperrors.ErrChecksumMismatch)
	store.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAttachFile_FirstAttachMovesStatus(t *testing.T) {
	pipeline := &models.Pipeline{ID: 1, Name: "invoices", MaxSizeInByte: 1024}
	uploads, files, pipelines, store := attachFixtures(t, pipeline)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(int64(-1), nil)
	files.On("Create", mock.Anything, mock.AnythingOfType("*models.FileUpload")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.FileUpload).ID = 9
		}).
		Return(nil)
	uploads.On("Save", mock.Anything, mock.MatchedBy(func(u *models.Upload) bool {
		return u.Status == models.UploadStatusFileUploaded
	})).Return(nil)

	content := "hello world"
	digest := sha256.Sum256([]byte(content))

	svc := NewUploadService(uploads, files, pipelines, store)
	req := &dto.AttachFileRequest{
		Filename: "doc.pdf",
		Checksum: hex.EncodeToString(digest[:]),
		Content:  strings.NewReader(content),
	}

	file, err := svc.AttachFile(context.Background(), &auth.Actor{UserID: 7}, 3, req)
	assert.NoError(t, err)
	assert.Equal(t, uint(9), file.ID)
	assert.Equal(t, int64(len(content)), file.Size)
	assert.Equal(t, hex.EncodeToString(digest[:]), file.Checksum)
	uploads.AssertExpectations(t)
}

func TestAttachFile_RejectedWhenNotDraft(t *testing.T) {
	uploads := new(MockUploadRepo)
	uploads.On("FindByID", mock.Anything, uint(3)).Return(&models.Upload{
		ID:     3,
		UserID: uintPtr(7),
		Status: models.UploadStatusCompleted,
	}, nil)

	svc := NewUploadService(uploads, new(MockFileRepo), new(MockPipelineRepo), new(MockStorage))
	req := &dto.AttachFileRequest{Filename: "doc.pdf", Content: strings.NewReader("x")}

	_, err := svc.AttachFile(context.Background(), &auth.Actor{UserID: 7}, 3, req)
	var appErr *apperrors.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, 400, appErr.HTTPCode)
	}
}

func TestList_NonAutomationSeesOnlyOwnUploads(t *testing.T) {
	uploads := new(MockUploadRepo)
	uploads.On("List", mock.Anything, mock.MatchedBy(func(f types.UploadFilters) bool {
		return f.UserID != nil && *f.UserID == 7
	})).Return([]models.Upload{{ID: 1, UserID: uintPtr(7)}}, nil)

	svc := NewUploadService(uploads, new(MockFileRepo), new(MockPipelineRepo), new(MockStorage))

	other := uint(99)
	result, err := svc.List(context.Background(), &auth.Actor{UserID: 7}, types.UploadFilters{UserID: &other})
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestListByPipeline_StatusDefaultsToCompleted(t *testing.T) {
	uploads := new(MockUploadRepo)
	pipelines := new(MockPipelineRepo)
	pipelines.On("FindByID", mock.Anything, uint(1)).Return(&models.Pipeline{ID: 1}, nil)
	uploads.On("ListByPipelineUsers", mock.Anything, uint(1), models.UploadStatusCompleted, mock.Anything).
		Return([]models.Upload{{ID: 5}}, nil)

	svc := NewUploadService(uploads, new(MockFileRepo), pipelines, new(MockStorage))
	actor := &auth.Actor{UserID: 9, Groups: []models.Group{{ID: 2, Name: models.GroupAutomation}}}

	result, err := svc.ListByPipeline(context.Background(), actor, 1, "", types.UploadFilters{})
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}
