package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"go-zone-diff/pkg/models"
)

// CSVWriter renders one row per record: index, both identifiers, one
// column per zone and the diff image name.
type CSVWriter struct{}

// NewCSVWriter creates a writer producing one row per comparison record
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Extension returns the file extension the writer is registered under
func (w *CSVWriter) Extension() string {
	return ".csv"
}

// Header returns the column titles for the given zone names
func (w *CSVWriter) Header(zoneNames []string) []string {
	header := append([]string{"#", "Left", "Right"}, zoneNames...)
	return append(header, "Diff Image")
}

// Row renders a single record against the report's zone columns
func (w *CSVWriter) Row(zoneNames []string, rec models.ComparisonRecord) []string {
	row := []string{strconv.Itoa(rec.Index), rec.Left, rec.Right}
	for _, name := range zoneNames {
		cell := notApplicable
		for _, z := range rec.Zones.Zones {
			if z.Name == name {
				cell = formatPercent(z)
				break
			}
		}
		row = append(row, cell)
	}
	return append(row, rec.DiffImage)
}

// Write emits the header followed by one row per record in report order
func (w *CSVWriter) Write(out io.Writer, report *models.Report) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(w.Header(report.ZoneNames)); err != nil {
		return err
	}
	for _, rec := range report.Records {
		if err := cw.Write(w.Row(report.ZoneNames, rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
