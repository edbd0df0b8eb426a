package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/types"
)

// MockUploadRepo is a mock implementation of repositories.UploadRepository.
type MockUploadRepo struct {
	mock.Mock
}

func (m *MockUploadRepo) Create(ctx context.Context, upload *models.Upload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *MockUploadRepo) Save(ctx context.Context, upload *models.Upload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *MockUploadRepo) FindByID(ctx context.Context, id uint) (*models.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Upload), args.Error(1)
}

func (m *MockUploadRepo) FindLastByUser(ctx context.Context, userID uint) (*models.Upload, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Upload), args.Error(1)
}

func (m *MockUploadRepo) List(ctx context.Context, filters types.UploadFilters) ([]models.Upload, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Upload), args.Error(1)
}

func (m *MockUploadRepo) ListByPipelineUsers(ctx context.Context, pipelineID uint, status models.UploadStatus, filters types.UploadFilters) ([]models.Upload, error) {
	args := m.Called(ctx, pipelineID, status, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Upload), args.Error(1)
}

func (m *MockUploadRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Upload, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Upload), args.Error(1)
}

func (m *MockUploadRepo) WithUserLock(ctx context.Context, userID uint, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, userID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// MockFileRepo is a mock implementation of repositories.FileRepository.
type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) Create(ctx context.Context, file *models.FileUpload) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepo) FindByID(ctx context.Context, id uint) (*models.FileUpload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FileUpload), args.Error(1)
}

func (m *MockFileRepo) ListByUpload(ctx context.Context, uploadID uint) ([]models.FileUpload, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FileUpload), args.Error(1)
}

func (m *MockFileRepo) ApplyValues(ctx context.Context, creates []models.MetadataValue, updates []models.MetadataValue) error {
	args := m.Called(ctx, creates, updates)
	return args.Error(0)
}

// MockPipelineRepo is a mock implementation of repositories.PipelineRepository.
type MockPipelineRepo struct {
	mock.Mock
}

func (m *MockPipelineRepo) FindByID(ctx context.Context, id uint) (*models.Pipeline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pipeline), args.Error(1)
}

func (m *MockPipelineRepo) FindAll(ctx context.Context) ([]models.Pipeline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pipeline), args.Error(1)
}

func (m *MockPipelineRepo) GroupByID(ctx context.Context, id uint) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

// MockValidationRepo is a mock implementation of repositories.ValidationRepository.
type MockValidationRepo struct {
	mock.Mock
}

func (m *MockValidationRepo) CreateTasks(ctx context.Context, tasks []models.UploadValidation) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockValidationRepo) CountByUpload(ctx context.Context, uploadID uint) (int64, error) {
	args := m.Called(ctx, uploadID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockValidationRepo) FindByID(ctx context.Context, id uint) (*models.UploadValidation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadValidation), args.Error(1)
}

func (m *MockValidationRepo) Save(ctx context.Context, validation *models.UploadValidation) error {
	args := m.Called(ctx, validation)
	return args.Error(0)
}

func (m *MockValidationRepo) ListByGroups(ctx context.Context, groupIDs []uint, ordering types.ValidationOrdering) ([]models.UploadValidation, error) {
	args := m.Called(ctx, groupIDs, ordering)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UploadValidation), args.Error(1)
}

func (m *MockValidationRepo) ListByUploadIDs(ctx context.Context, uploadIDs []uint) ([]models.UploadValidation, error) {
	args := m.Called(ctx, uploadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UploadValidation), args.Error(1)
}

func (m *MockValidationRepo) ListByPipeline(ctx context.Context, pipelineID uint) ([]models.UploadValidation, error) {
	args := m.Called(ctx, pipelineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UploadValidation), args.Error(1)
}

func (m *MockValidationRepo) WorkflowsByPipeline(ctx context.Context, pipelineID uint) ([]models.Workflow, error) {
	args := m.Called(ctx, pipelineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workflow), args.Error(1)
}

// MockUserRepo is a mock implementation of repositories.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockNoteRepo is a mock implementation of repositories.NoteRepository.
type MockNoteRepo struct {
	mock.Mock
}

func (m *MockNoteRepo) Create(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepo) Save(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepo) FindByID(ctx context.Context, id uint) (*models.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepo) ListByUpload(ctx context.Context, uploadID uint) ([]models.Note, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

// MockStorage is a mock implementation of storage.Storage.
type MockStorage struct {
	mock.Mock
}

// Save drains the reader so the hashing tee sees the bytes. A negative
// configured size means "report the actual byte count".
func (m *MockStorage) Save(ctx context.Context, path string, src io.Reader) (int64, error) {
	args := m.Called(ctx, path, src)
	written, _ := io.Copy(io.Discard, src)
	if size := args.Get(0).(int64); size >= 0 {
		return size, args.Error(1)
	}
	return written, args.Error(1)
}

func (m *MockStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MockEmailProvider records sent mail.
type MockEmailProvider struct {
	mock.Mock
}

func (m *MockEmailProvider) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
