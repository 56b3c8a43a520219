package storage

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	apperrors "go-zone-diff/internal/errors"
)

// LocalStore writes PNG artifacts into a directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store writing into dir
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Dir returns the output directory
func (s *LocalStore) Dir() string {
	return s.dir
}

// Prepare creates the output directory if needed
func (s *LocalStore) Prepare() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("cannot create output directory %s", s.dir), err)
	}
	return nil
}

// Save encodes img as PNG to dir/name, overwriting any existing file
func (s *LocalStore) Save(ctx context.Context, name string, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.NewTimeoutError("save cancelled", err)
	}
	if err := s.Prepare(); err != nil {
		return "", err
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", apperrors.NewIOError(fmt.Sprintf("cannot encode %s", name), err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.NewIOError(fmt.Sprintf("cannot write %s", path), err)
	}
	return path, nil
}
