package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockBackend implements object storage on the local filesystem, for
// development and tests without a cloud bucket. Presigned URLs point back
// at the server's own upload/download endpoints.
type MockBackend struct {
	baseURL    string // server URL, e.g. "http://localhost:8080"
	uploadsDir string
}

func NewMockBackend(baseURL, uploadsDir string) (*MockBackend, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &MockBackend{
		baseURL:    baseURL,
		uploadsDir: uploadsDir,
	}, nil
}

// GeneratePresignedUploadURL returns a URL on this server; the key rides
// in a query parameter so the upload handler knows where to save.
func (m *MockBackend) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	uploadToken := uuid.New().String()
	return fmt.Sprintf("%s/api/v1/uploads/%s?key=%s", m.baseURL, uploadToken, url.QueryEscape(key)), nil
}

func (m *MockBackend) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/downloads/file?key=%s", m.baseURL, url.QueryEscape(key)), nil
}

func (m *MockBackend) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := m.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockBackend) DeleteFile(ctx context.Context, key string) error {
	path, err := m.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockBackend) SaveFile(key string, reader io.Reader) error {
	path, err := m.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (m *MockBackend) ReadFile(key string) (io.ReadCloser, error) {
	path, err := m.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// resolve maps a storage key to a local path, refusing keys that escape
// the uploads directory.
func (m *MockBackend) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(m.uploadsDir, clean), nil
}
