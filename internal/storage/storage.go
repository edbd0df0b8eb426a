package storage

import (
	"context"
	"io"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Storage is the collaborator keeping uploaded bytes. The workflow core
// only ever hands it opaque relative paths.
type Storage interface {
	Save(ctx context.Context, path string, src io.Reader) (int64, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type Config struct {
	BasePath string
}

func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg.BasePath)
}

// BuildPath derives the stored location of a file:
// <pipeline>/<user>/<upload>/<random><ext>. The random stored name
// keeps client filenames out of the filesystem; the original name
// lives on the FileUpload record.
func BuildPath(pipelineName string, userID, uploadID uint, filename string) string {
	if pipelineName == "" {
		pipelineName = "no_pipeline"
	}
	name := uuid.NewString() + filepath.Ext(filename)
	return filepath.Join(
		pipelineName,
		strconv.FormatUint(uint64(userID), 10),
		strconv.FormatUint(uint64(uploadID), 10),
		name,
	)
}
