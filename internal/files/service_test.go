package files

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"gobarber_backend/platform/apperr"
)

type testStorageConfig struct{}

func (testStorageConfig) GetMinIOEndpoint() string  { return "localhost:9000" }
func (testStorageConfig) GetMinIOAccessKey() string { return "test" }
func (testStorageConfig) GetMinIOSecretKey() string { return "test" }
func (testStorageConfig) GetMinIOUseSSL() bool      { return false }
func (testStorageConfig) GetAvatarBucket() string   { return "avatars" }
func (testStorageConfig) GetMaxAvatarSize() int64   { return 1024 }
func (testStorageConfig) GetFileBaseURL() string    { return "http://localhost:3333/files" }

type fakeStorage struct {
	objectName  string
	gotName     string
	gotType     string
	gotSize     int64
	gotContents string
}

func (f *fakeStorage) Upload(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.gotName = fileName
	f.gotType = contentType
	f.gotSize = size
	f.gotContents = string(body)
	return f.objectName, nil
}

type fakeFileStore struct {
	nextID int64
}

func (s *fakeFileStore) Create(ctx context.Context, name, path string) (*File, error) {
	s.nextID++
	return &File{ID: s.nextID, Name: name, Path: path, CreatedAt: time.Now()}, nil
}

func TestUploadRecordsFile(t *testing.T) {
	storage := &fakeStorage{objectName: "uuid-prefixed.png"}
	svc := NewService(&fakeFileStore{}, storage, testStorageConfig{})

	resp, err := svc.Upload(context.Background(), "avatar.png", "image/png", strings.NewReader("png bytes"), 9)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if storage.gotName != "avatar.png" || storage.gotType != "image/png" || storage.gotSize != 9 {
		t.Fatalf("storage received %q %q %d", storage.gotName, storage.gotType, storage.gotSize)
	}
	if storage.gotContents != "png bytes" {
		t.Fatalf("storage received body %q", storage.gotContents)
	}
	if resp.Name != "avatar.png" {
		t.Errorf("response name = %q, want original file name", resp.Name)
	}
	if resp.Path != "uuid-prefixed.png" {
		t.Errorf("response path = %q, want stored object name", resp.Path)
	}
	if resp.URL != "http://localhost:3333/files/uuid-prefixed.png" {
		t.Errorf("response url = %q", resp.URL)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewService(&fakeFileStore{}, &fakeStorage{}, testStorageConfig{})

	_, err := svc.Upload(context.Background(), "big.png", "image/png", strings.NewReader("x"), 2048)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := NewService(&fakeFileStore{}, &fakeStorage{}, testStorageConfig{})

	_, err := svc.Upload(context.Background(), "empty.png", "image/png", strings.NewReader(""), 0)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
