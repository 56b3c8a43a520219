package report

import (
	"encoding/json"
	"io"

	"go-zone-diff/pkg/models"
)

// JSONWriter writes the full report as indented JSON
type JSONWriter struct{}

// NewJSONWriter creates a writer emitting the report as indented JSON
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Extension returns the file extension the writer is registered under
func (w *JSONWriter) Extension() string {
	return ".json"
}

// Write encodes the full report, records and summary included
func (w *JSONWriter) Write(out io.Writer, report *models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
