package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads to a directory on disk. The directory is
// served statically at publicPath (e.g. /uploads) by the HTTP server.
type LocalStorage struct {
	dir        string
	publicPath string
}

// NewLocalStorage ensures the upload directory exists and returns a
// disk-backed ImageStorage.
func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

func (s *LocalStorage) UploadImage(_ context.Context, r io.Reader, fileName string) (string, error) {
	// Reject anything that could escape the upload directory.
	if fileName != filepath.Base(fileName) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	dst, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.publicPath + "/" + fileName, nil
}

func (s *LocalStorage) DeleteImage(_ context.Context, fileURL string) error {
	name := filepath.Base(fileURL)
	if name == "." || name == "/" {
		return fmt.Errorf("could not extract file name from URL: %s", fileURL)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}
