package repository

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/pkg/models"
)

// FileImageRepository implements ImageRepository on the local filesystem
type FileImageRepository struct{}

// NewFileImageRepository creates a new filesystem image repository
func NewFileImageRepository() ImageRepository {
	return &FileImageRepository{}
}

// Load opens and decodes a PNG or JPEG file
func (r *FileImageRepository) Load(ctx context.Context, p models.ImagePath) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("image load cancelled", err)
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("cannot open %s", p.ID()), err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("cannot decode %s", p.ID()), err)
	}
	if format != "png" && format != "jpeg" {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("unsupported format %q for %s", format, p.ID()), nil)
	}
	return img, nil
}
