package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/pkg/models"
)

const notApplicable = "N/A"

// Writer serializes a report
type Writer interface {
	Write(w io.Writer, report *models.Report) error
	Extension() string
}

// WriteFile writes the report to path with the given writer
func WriteFile(path string, writer Writer, report *models.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("cannot create report directory %s", dir), err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("cannot create report %s", path), err)
	}

	if err := writer.Write(f, report); err != nil {
		f.Close()
		return apperrors.NewIOError(fmt.Sprintf("cannot write report %s", path), err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("cannot close report %s", path), err)
	}
	return nil
}

func formatPercent(z models.ZoneDiff) string {
	if !z.Applicable {
		return notApplicable
	}
	return fmt.Sprintf("%.2f", z.Percent)
}
