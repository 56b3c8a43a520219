package models

import (
	"time"

	"github.com/google/uuid"
)

// CompareRequest asks for a comparison of two screenshot folders
type CompareRequest struct {
	LeftDir   string   `json:"left_dir" binding:"required"`
	RightDir  string   `json:"right_dir" binding:"required"`
	OutputDir string   `json:"output_dir,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RunSummary is a stored run as listed by the history endpoints
type RunSummary struct {
	RunID     uuid.UUID `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	LeftRoot  string    `json:"left_root"`
	RightRoot string    `json:"right_root"`
	Total     int       `json:"total"`
	Compared  int       `json:"compared"`
	Missing   int       `json:"missing"`
	Failed    int       `json:"failed"`
}

// SummarizeRun extracts the listing view of a report
func SummarizeRun(r *Report) RunSummary {
	return RunSummary{
		RunID:     r.RunID,
		CreatedAt: r.CreatedAt,
		LeftRoot:  r.LeftRoot,
		RightRoot: r.RightRoot,
		Total:     r.Summary.Total,
		Compared:  r.Summary.Compared,
		Missing:   r.Summary.Missing,
		Failed:    r.Summary.Failed,
	}
}
