// Package config loads the zone set used by every comparison in a run.
package config

import (
	"bytes"
	"fmt"
	"os"

	"go-zone-diff/pkg/models"

	"gopkg.in/yaml.v3"
)

// zoneFile is the on-disk layout:
//
//	canonical:
//	  width: 1024
//	  height: 768
//	zones:
//	  - name: Time
//	    bounds: [900, 1024, 0, 50]   # col1, col2, row1, row2
type zoneFile struct {
	Canonical struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canonical"`
	Zones []zoneEntry `yaml:"zones"`
}

type zoneEntry struct {
	Name   string `yaml:"name"`
	Bounds []int  `yaml:"bounds"`
}

// LoadZones reads a zone set from path, or returns the default set when path is empty
func LoadZones(path string) (models.ZoneSet, error) {
	if path == "" {
		return models.DefaultZoneSet(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ZoneSet{}, fmt.Errorf("read zones file: %w", err)
	}
	return ParseZones(data)
}

// ParseZones decodes and validates a YAML zone set
func ParseZones(data []byte) (models.ZoneSet, error) {
	var file zoneFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return models.ZoneSet{}, fmt.Errorf("parse zones file: %w", err)
	}

	set := models.ZoneSet{
		Width:  file.Canonical.Width,
		Height: file.Canonical.Height,
	}
	for i, entry := range file.Zones {
		if len(entry.Bounds) != 4 {
			return models.ZoneSet{}, fmt.Errorf("zone %d (%q): bounds need 4 values [col1, col2, row1, row2], got %d", i, entry.Name, len(entry.Bounds))
		}
		b := entry.Bounds
		set.Zones = append(set.Zones, models.NewZone(entry.Name, b[0], b[1], b[2], b[3]))
	}

	if err := set.Validate(); err != nil {
		return models.ZoneSet{}, fmt.Errorf("invalid zone set: %w", err)
	}
	return set, nil
}

// MarshalZones encodes a zone set in the same layout LoadZones reads
func MarshalZones(set models.ZoneSet) ([]byte, error) {
	var file zoneFile
	file.Canonical.Width = set.Width
	file.Canonical.Height = set.Height
	for _, z := range set.Zones {
		file.Zones = append(file.Zones, zoneEntry{
			Name:   z.Name,
			Bounds: []int{z.ColStart, z.ColEnd, z.RowStart, z.RowEnd},
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
