package files

import (
	"context"
	"io"

	"gobarber_backend/platform/apperr"
	"gobarber_backend/platform/config"
)

// FileResponse is the upload result returned to clients.
type FileResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// FileStore is the persistence surface the service needs.
type FileStore interface {
	Create(ctx context.Context, name, path string) (*File, error)
}

// Service uploads avatar files and records them.
type Service struct {
	repo        FileStore
	storage     Storage
	maxSize     int64
	fileBaseURL string
}

// NewService creates a new files service.
func NewService(repo FileStore, storage Storage, cfg config.StorageConfig) *Service {
	return &Service{
		repo:        repo,
		storage:     storage,
		maxSize:     cfg.GetMaxAvatarSize(),
		fileBaseURL: cfg.GetFileBaseURL(),
	}
}

// Upload stores the file body and records it. The returned path is the
// stored object name, not the client's file name.
func (s *Service) Upload(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (*FileResponse, error) {
	if size <= 0 || size > s.maxSize {
		return nil, apperr.Validation("file size not allowed")
	}

	objectName, err := s.storage.Upload(ctx, fileName, contentType, reader, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store file", err)
	}

	f, err := s.repo.Create(ctx, fileName, objectName)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to record file", err)
	}

	return &FileResponse{
		ID:   f.ID,
		Name: f.Name,
		Path: f.Path,
		URL:  s.fileBaseURL + "/" + f.Path,
	}, nil
}
