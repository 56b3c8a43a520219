package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
)

// ArtifactStore persists diff images and returns where they ended up
type ArtifactStore interface {
	Save(ctx context.Context, name string, img image.Image) (string, error)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
