package report

import (
	"time"

	"go-zone-diff/pkg/models"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// RunInfo identifies a comparison run
type RunInfo struct {
	RunID     uuid.UUID
	CreatedAt time.Time
	LeftRoot  string
	RightRoot string
	OutputDir string
}

// NewRunInfo stamps a fresh run ID and creation time
func NewRunInfo(leftRoot, rightRoot, outputDir string) RunInfo {
	return RunInfo{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC(),
		LeftRoot:  leftRoot,
		RightRoot: rightRoot,
		OutputDir: outputDir,
	}
}

// Assemble builds the report for a finished run. Records keep their order.
func Assemble(info RunInfo, zones models.ZoneSet, records []models.ComparisonRecord, hints []models.RenameHint) *models.Report {
	names := zones.Names()
	return &models.Report{
		RunID:       info.RunID,
		CreatedAt:   info.CreatedAt,
		LeftRoot:    info.LeftRoot,
		RightRoot:   info.RightRoot,
		OutputDir:   info.OutputDir,
		ZoneNames:   names,
		Records:     records,
		Summary:     Summarize(names, records),
		RenameHints: hints,
	}
}

// Summarize counts record outcomes and aggregates applicable zone values
func Summarize(zoneNames []string, records []models.ComparisonRecord) models.Summary {
	summary := models.Summary{Total: len(records)}
	values := make(map[string][]float64, len(zoneNames))

	for _, rec := range records {
		switch rec.Status {
		case models.StatusCompared:
			summary.Compared++
		case models.StatusMissing:
			summary.Missing++
		case models.StatusFailed:
			summary.Failed++
		}
		for _, z := range rec.Zones.Zones {
			if z.Applicable {
				values[z.Name] = append(values[z.Name], z.Percent)
			}
		}
	}

	summary.Zones = make([]models.ZoneSummary, 0, len(zoneNames))
	for _, name := range zoneNames {
		zs := models.ZoneSummary{Name: name}
		if v := values[name]; len(v) > 0 {
			zs.Mean = roundPercent(stat.Mean(v, nil))
			zs.Max = floats.Max(v)
		}
		summary.Zones = append(summary.Zones, zs)
	}
	return summary
}

func roundPercent(p float64) float64 {
	return scalar.Round(p, 2)
}
