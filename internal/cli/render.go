package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-zone-diff/pkg/models"
)

// Theme holds the color scheme for command output.
type Theme struct {
	Title   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

var defaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Warning: lipgloss.Color("#FFAF00"), // amber
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

func (t Theme) warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func nameWidth(names []string, min int) int {
	w := min
	for _, n := range names {
		if len(n) > w {
			w = len(n)
		}
	}
	return w
}

func renderReport(r *models.Report, reportPath string) string {
	t := defaultTheme
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", t.titleStyle().Render("Run"), r.RunID)
	fmt.Fprintf(&b, "  left    %s\n", r.LeftRoot)
	fmt.Fprintf(&b, "  right   %s\n", r.RightRoot)
	fmt.Fprintf(&b, "  output  %s\n\n", r.OutputDir)

	s := r.Summary
	fmt.Fprintf(&b, "%d pairs: %s, %s, %s\n\n",
		s.Total,
		t.successStyle().Render(fmt.Sprintf("%d compared", s.Compared)),
		t.warningStyle().Render(fmt.Sprintf("%d missing", s.Missing)),
		t.errorStyle().Render(fmt.Sprintf("%d failed", s.Failed)),
	)

	w := nameWidth(r.ZoneNames, len("Zone"))
	fmt.Fprintf(&b, "%s\n", t.titleStyle().Render(fmt.Sprintf("%-*s  %7s  %7s", w, "Zone", "Mean %", "Max %")))
	for _, z := range s.Zones {
		fmt.Fprintf(&b, "%-*s  %7.2f  %7.2f\n", w, z.Name, z.Mean, z.Max)
	}

	var failed []models.ComparisonRecord
	for _, rec := range r.Records {
		if rec.Status == models.StatusFailed {
			failed = append(failed, rec)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, "\n%s\n", t.errorStyle().Render("Failed pairs"))
		for _, rec := range failed {
			fmt.Fprintf(&b, "  #%d %s: %s\n", rec.Index, rec.Left, rec.Error)
		}
	}

	if len(r.RenameHints) > 0 {
		fmt.Fprintf(&b, "\n%s\n", t.warningStyle().Render("Possible renames"))
		for _, h := range r.RenameHints {
			dir := h.Subdir
			if dir == "" {
				dir = "."
			}
			fmt.Fprintf(&b, "  %s: %s -> %s (distance %d)\n", dir, h.Left, h.Right, h.Distance)
		}
	}

	if reportPath != "" {
		fmt.Fprintf(&b, "\n%s\n", t.hintStyle().Render("Report written to "+reportPath))
	}
	if r.Preview != "" {
		fmt.Fprintf(&b, "%s\n", t.hintStyle().Render("Zone preview written to "+r.Preview))
	}
	return b.String()
}

func renderZones(set models.ZoneSet) string {
	t := defaultTheme
	var b strings.Builder

	fmt.Fprintf(&b, "%s %dx%d\n", t.titleStyle().Render("Canonical resolution"), set.Width, set.Height)
	w := nameWidth(set.Names(), len("Zone"))
	fmt.Fprintf(&b, "%s\n", t.titleStyle().Render(fmt.Sprintf("%-*s  %5s  %5s  %5s  %5s", w, "Zone", "col1", "col2", "row1", "row2")))
	for _, z := range set.Zones {
		fmt.Fprintf(&b, "%-*s  %5d  %5d  %5d  %5d\n", w, z.Name, z.ColStart, z.ColEnd, z.RowStart, z.RowEnd)
	}
	return b.String()
}

func renderRuns(runs []models.RunSummary) string {
	t := defaultTheme
	if len(runs) == 0 {
		return t.hintStyle().Render("No runs recorded") + "\n"
	}

	var b strings.Builder
	for _, run := range runs {
		fmt.Fprintf(&b, "%s  %s\n", t.titleStyle().Render(run.RunID.String()), run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "  %s -> %s\n", run.LeftRoot, run.RightRoot)
		fmt.Fprintf(&b, "  %d pairs, %d compared, %d missing, %d failed\n", run.Total, run.Compared, run.Missing, run.Failed)
	}
	return b.String()
}
