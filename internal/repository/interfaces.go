package repository

import (
	"context"
	"image"

	"go-zone-diff/pkg/models"

	"github.com/google/uuid"
)

// ImageRepository defines the interface for image data access operations
type ImageRepository interface {
	// Load decodes the image stored at the given path
	Load(ctx context.Context, p models.ImagePath) (image.Image, error)
}

// HistoryRepository persists completed comparison runs
type HistoryRepository interface {
	// SaveReport stores a finished report
	SaveReport(ctx context.Context, report *models.Report) error

	// ListRuns returns run summaries, newest first
	ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error)

	// GetRun retrieves a stored report by run ID
	GetRun(ctx context.Context, id uuid.UUID) (*models.Report, error)

	Close() error
}
