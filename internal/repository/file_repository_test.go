package repository

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/pkg/models"
)

func writeImage(t *testing.T, path string, encode func(f *os.File, img image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(1, 1, color.RGBA{10, 20, 30, 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestFileImageRepository_Load(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), func(f *os.File, img image.Image) error { return png.Encode(f, img) })
	writeImage(t, filepath.Join(dir, "b.jpg"), func(f *os.File, img image.Image) error { return jpeg.Encode(f, img, nil) })

	repo := NewFileImageRepository()

	for _, name := range []string{"a.png", "b.jpg"} {
		t.Run(name, func(t *testing.T) {
			img, err := repo.Load(context.Background(), models.NewImagePath(dir, "", filepath.Join(dir, name)))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 8, 6) {
				t.Errorf("Unexpected bounds %v", img.Bounds())
			}
		})
	}
}

func TestFileImageRepository_DecodeFailure(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewFileImageRepository()

	tests := []struct {
		name string
		path string
	}{
		{"corrupt file", corrupt},
		{"missing file", filepath.Join(dir, "nope.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Load(context.Background(), models.NewImagePath(dir, "", tt.path))
			if !apperrors.IsType(err, apperrors.ErrorTypeDecodeFailure) {
				t.Errorf("Expected decode failure, got %v", err)
			}
		})
	}
}

func TestFileImageRepository_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeImage(t, path, func(f *os.File, img image.Image) error { return png.Encode(f, img) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileImageRepository().Load(ctx, models.NewImagePath(dir, "", path))
	if !apperrors.IsType(err, apperrors.ErrorTypeTimeout) {
		t.Errorf("Expected timeout error, got %v", err)
	}
}
