package models

import (
	"fmt"
	"image"
)

// Zone is a named rectangle in pixel coordinates of the canonical resolution
type Zone struct {
	Name     string `json:"name" yaml:"name"`
	ColStart int    `json:"col_start" yaml:"col_start"`
	ColEnd   int    `json:"col_end" yaml:"col_end"`
	RowStart int    `json:"row_start" yaml:"row_start"`
	RowEnd   int    `json:"row_end" yaml:"row_end"`
}

// NewZone builds a zone from (col1, col2, row1, row2) bounds
func NewZone(name string, colStart, colEnd, rowStart, rowEnd int) Zone {
	return Zone{Name: name, ColStart: colStart, ColEnd: colEnd, RowStart: rowStart, RowEnd: rowEnd}
}

// Rect returns the zone as an image rectangle
func (z Zone) Rect() image.Rectangle {
	return image.Rect(z.ColStart, z.RowStart, z.ColEnd, z.RowEnd)
}

// Area returns the zone size in pixels
func (z Zone) Area() int {
	return (z.ColEnd - z.ColStart) * (z.RowEnd - z.RowStart)
}

// Validate checks the zone is a non-empty rectangle with non-negative origin
func (z Zone) Validate() error {
	if z.Name == "" {
		return fmt.Errorf("zone name cannot be empty")
	}
	if z.ColStart < 0 || z.RowStart < 0 {
		return fmt.Errorf("zone %q: negative origin (%d,%d)", z.Name, z.ColStart, z.RowStart)
	}
	if z.ColEnd <= z.ColStart {
		return fmt.Errorf("zone %q: column_end %d must be greater than column_start %d", z.Name, z.ColEnd, z.ColStart)
	}
	if z.RowEnd <= z.RowStart {
		return fmt.Errorf("zone %q: row_end %d must be greater than row_start %d", z.Name, z.RowEnd, z.RowStart)
	}
	return nil
}

// ZoneSet is the ordered zone configuration for a run, defined against
// a canonical image resolution
type ZoneSet struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Zones  []Zone `json:"zones" yaml:"zones"`
}

// DefaultZoneSet returns the zones used for 1024x768 device screenshots
func DefaultZoneSet() ZoneSet {
	return ZoneSet{
		Width:  1024,
		Height: 768,
		Zones: []Zone{
			NewZone("Time", 900, 1024, 0, 50),
			NewZone("Version", 785, 900, 0, 50),
			NewZone("Language", 0, 200, 0, 50),
			NewZone("Entire Image", 0, 1024, 0, 768),
		},
	}
}

// Bounds returns the canonical image rectangle
func (s ZoneSet) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Names returns zone names in configuration order
func (s ZoneSet) Names() []string {
	names := make([]string, len(s.Zones))
	for i, z := range s.Zones {
		names[i] = z.Name
	}
	return names
}

// Validate checks every zone and that each lies within the canonical resolution
func (s ZoneSet) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("canonical resolution must be positive (got %dx%d)", s.Width, s.Height)
	}
	if len(s.Zones) == 0 {
		return fmt.Errorf("zone set is empty")
	}
	seen := make(map[string]bool, len(s.Zones))
	for _, z := range s.Zones {
		if err := z.Validate(); err != nil {
			return err
		}
		if seen[z.Name] {
			return fmt.Errorf("duplicate zone name %q", z.Name)
		}
		seen[z.Name] = true
		if !z.Rect().In(s.Bounds()) {
			return fmt.Errorf("zone %q %v exceeds canonical resolution %dx%d", z.Name, z.Rect(), s.Width, s.Height)
		}
	}
	return nil
}
