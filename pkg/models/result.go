package models

import (
	"time"

	"github.com/google/uuid"
)

// ZoneDiff holds the difference percentage for one zone
type ZoneDiff struct {
	Name       string  `json:"name"`
	Percent    float64 `json:"percent"`
	Applicable bool    `json:"applicable"`
}

// ZoneResult maps zone names to percentages, in zone-set order
type ZoneResult struct {
	Zones []ZoneDiff `json:"zones"`
}

// NotApplicable returns a result with every zone marked not applicable
func NotApplicable(set ZoneSet) ZoneResult {
	zones := make([]ZoneDiff, len(set.Zones))
	for i, z := range set.Zones {
		zones[i] = ZoneDiff{Name: z.Name}
	}
	return ZoneResult{Zones: zones}
}

// Get returns the percentage for a zone and whether it is applicable
func (r ZoneResult) Get(name string) (float64, bool) {
	for _, z := range r.Zones {
		if z.Name == name {
			return z.Percent, z.Applicable
		}
	}
	return 0, false
}

// RecordStatus classifies the outcome of one comparison
type RecordStatus string

const (
	StatusCompared RecordStatus = "compared"
	StatusMissing  RecordStatus = "missing"
	StatusFailed   RecordStatus = "failed"
)

// ComparisonRecord is one report row
type ComparisonRecord struct {
	Index     int            `json:"index"`
	Subdir    string         `json:"subdir"`
	Left      string         `json:"left"`
	Right     string         `json:"right"`
	Zones     ZoneResult     `json:"zones"`
	DiffImage string         `json:"diff_image,omitempty"`
	Status    RecordStatus   `json:"status"`
	Error     string         `json:"error,omitempty"`
	Pair      ComparisonPair `json:"-"`
}

// RenameHint suggests that two unmatched files may be the same screen
type RenameHint struct {
	Subdir   string `json:"subdir"`
	Left     string `json:"left"`
	Right    string `json:"right"`
	Distance int    `json:"distance"`
}

// ZoneSummary aggregates one zone over the compared records
type ZoneSummary struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

// Summary holds run-level counts and per-zone statistics
type Summary struct {
	Total    int           `json:"total"`
	Compared int           `json:"compared"`
	Missing  int           `json:"missing"`
	Failed   int           `json:"failed"`
	Zones    []ZoneSummary `json:"zones"`
}

// Report is the complete output of a comparison run
type Report struct {
	RunID       uuid.UUID          `json:"run_id"`
	CreatedAt   time.Time          `json:"created_at"`
	LeftRoot    string             `json:"left_root"`
	RightRoot   string             `json:"right_root"`
	OutputDir   string             `json:"output_dir"`
	ZoneNames   []string           `json:"zone_names"`
	Records     []ComparisonRecord `json:"records"`
	Summary     Summary            `json:"summary"`
	RenameHints []RenameHint       `json:"rename_hints,omitempty"`
	Preview     string             `json:"preview,omitempty"`
}
