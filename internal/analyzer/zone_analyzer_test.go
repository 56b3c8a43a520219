package analyzer

import (
	"image"
	"image/color"
	"testing"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/pkg/models"
)

// createTestImage creates a uniformly filled test image
func createTestImage(width, height int, fillColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fillColor)
		}
	}
	return img
}

// createPatternImage creates a deterministic non-uniform test image
func createPatternImage(width, height, seed int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := (x*31 + y*17 + seed*7) % 256
			img.Set(x, y, color.RGBA{uint8(v), uint8((v * 3) % 256), uint8((x ^ y ^ seed) % 256), 255})
		}
	}
	return img
}

func fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestComputeZones_IdenticalImages(t *testing.T) {
	a := NewPairAnalyzer()
	img := createPatternImage(1024, 768, 1)

	result, err := a.ComputeZones(img, img, models.DefaultZoneSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, z := range result.Zones {
		if !z.Applicable || z.Percent != 0 {
			t.Errorf("Zone %q: expected applicable 0.00, got %+v", z.Name, z)
		}
	}
}

func TestComputeZones_ChangeInsideTimeZone(t *testing.T) {
	a := NewPairAnalyzer()
	left := createTestImage(1024, 768, color.RGBA{30, 30, 30, 255})
	right := createTestImage(1024, 768, color.RGBA{30, 30, 30, 255})
	// 100x10 = 1000 changed pixels, all inside Time [900,1024,0,50]
	fill(right, image.Rect(900, 0, 1000, 10), color.RGBA{200, 200, 200, 255})

	result, err := a.ComputeZones(left, right, models.DefaultZoneSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := map[string]float64{
		"Time":         16.13, // 1000 / (124*50)
		"Version":      0,
		"Language":     0,
		"Entire Image": 0.13, // 1000 / (1024*768)
	}
	for name, w := range want {
		got, ok := result.Get(name)
		if !ok {
			t.Errorf("Zone %q missing or not applicable", name)
			continue
		}
		if got != w {
			t.Errorf("Zone %q: expected %.2f, got %.2f", name, w, got)
		}
	}
}

func TestComputeZones_ZoneOrderFollowsConfiguration(t *testing.T) {
	a := NewPairAnalyzer()
	img := createTestImage(1024, 768, color.RGBA{0, 0, 0, 255})
	set := models.DefaultZoneSet()

	result, err := a.ComputeZones(img, img, set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, name := range set.Names() {
		if result.Zones[i].Name != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, result.Zones[i].Name)
		}
	}
}

func TestComputeZones_SingleChannelChange(t *testing.T) {
	a := NewPairAnalyzer()
	set := models.ZoneSet{Width: 4, Height: 4, Zones: []models.Zone{models.NewZone("All", 0, 4, 0, 4)}}

	tests := []struct {
		name  string
		color color.RGBA
	}{
		{"red channel", color.RGBA{11, 20, 30, 255}},
		{"green channel", color.RGBA{10, 21, 30, 255}},
		{"blue channel", color.RGBA{10, 20, 31, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := createTestImage(4, 4, color.RGBA{10, 20, 30, 255})
			right := createTestImage(4, 4, color.RGBA{10, 20, 30, 255})
			right.Set(1, 1, tt.color)

			result, err := a.ComputeZones(left, right, set)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got, _ := result.Get("All"); got != 6.25 {
				t.Errorf("Expected 6.25%% (1 of 16 pixels), got %.2f", got)
			}
		})
	}
}

func TestComputeZones_SymmetricAndBounded(t *testing.T) {
	a := NewPairAnalyzer()
	set := models.ZoneSet{
		Width:  64,
		Height: 48,
		Zones: []models.Zone{
			models.NewZone("Top", 0, 64, 0, 10),
			models.NewZone("Corner", 50, 64, 38, 48),
			models.NewZone("All", 0, 64, 0, 48),
		},
	}

	for seed := 0; seed < 5; seed++ {
		x := createPatternImage(64, 48, seed)
		y := createPatternImage(64, 48, seed+3)

		xy, err := a.ComputeZones(x, y, set)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		yx, err := a.ComputeZones(y, x, set)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		for i := range xy.Zones {
			if xy.Zones[i] != yx.Zones[i] {
				t.Errorf("Seed %d zone %q: asymmetric %v vs %v", seed, xy.Zones[i].Name, xy.Zones[i].Percent, yx.Zones[i].Percent)
			}
			if p := xy.Zones[i].Percent; p < 0 || p > 100 {
				t.Errorf("Seed %d zone %q: percentage %v out of range", seed, xy.Zones[i].Name, p)
			}
		}
	}
}

func TestComputeZones_FullDifference(t *testing.T) {
	a := NewPairAnalyzer()
	set := models.ZoneSet{Width: 10, Height: 10, Zones: []models.Zone{models.NewZone("All", 0, 10, 0, 10)}}

	result, err := a.ComputeZones(
		createTestImage(10, 10, color.RGBA{255, 0, 0, 255}),
		createTestImage(10, 10, color.RGBA{0, 0, 255, 255}),
		set,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got, _ := result.Get("All"); got != 100 {
		t.Errorf("Expected 100%%, got %v", got)
	}
}

func TestComputeZones_ColorModelIndependent(t *testing.T) {
	a := NewPairAnalyzer()
	set := models.ZoneSet{Width: 8, Height: 8, Zones: []models.Zone{models.NewZone("All", 0, 8, 0, 8)}}

	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range gray.Pix {
		gray.Pix[i] = 100
	}
	rgba := createTestImage(8, 8, color.RGBA{100, 100, 100, 255})

	result, err := a.ComputeZones(gray, rgba, set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got, _ := result.Get("All"); got != 0 {
		t.Errorf("Expected gray and RGBA of the same level to match, got %v", got)
	}
}

func TestComputeZones_OffsetBounds(t *testing.T) {
	a := NewPairAnalyzer()
	set := models.ZoneSet{Width: 4, Height: 4, Zones: []models.Zone{models.NewZone("TopLeft", 0, 2, 0, 2)}}

	left := image.NewRGBA(image.Rect(10, 10, 14, 14))
	right := image.NewRGBA(image.Rect(0, 0, 4, 4))
	// top-left pixel of left in its own coordinates
	left.Set(10, 10, color.RGBA{255, 255, 255, 255})

	result, err := a.ComputeZones(left, right, set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got, _ := result.Get("TopLeft"); got != 25 {
		t.Errorf("Expected zones to be relative to image origin (25%%), got %v", got)
	}
}

func TestComputeZones_DimensionMismatch(t *testing.T) {
	a := NewPairAnalyzer()
	_, err := a.ComputeZones(
		createTestImage(1024, 768, color.RGBA{0, 0, 0, 255}),
		createTestImage(800, 600, color.RGBA{0, 0, 0, 255}),
		models.DefaultZoneSet(),
	)
	if !apperrors.IsType(err, apperrors.ErrorTypeDimensionMismatch) {
		t.Errorf("Expected dimension mismatch, got %v", err)
	}
}

func TestComputeZones_ZoneOutsideImage(t *testing.T) {
	a := NewPairAnalyzer()
	img := createTestImage(800, 600, color.RGBA{0, 0, 0, 255})

	_, err := a.ComputeZones(img, img, models.DefaultZoneSet())
	if !apperrors.IsType(err, apperrors.ErrorTypeDimensionMismatch) {
		t.Errorf("Expected dimension mismatch for zone beyond image bounds, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	a := NewPairAnalyzer()
	left := createTestImage(1024, 768, color.RGBA{0, 0, 0, 255})
	right := createTestImage(1024, 768, color.RGBA{0, 0, 0, 255})
	fill(right, image.Rect(0, 0, 200, 50), color.RGBA{255, 255, 255, 255})

	analysis, err := a.Analyze(left, right, models.DefaultZoneSet(), DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got, _ := analysis.Zones.Get("Language"); got != 100 {
		t.Errorf("Expected Language 100%%, got %v", got)
	}
	if analysis.Diff == nil {
		t.Fatal("Expected diff image")
	}
	if analysis.Diff.NRGBAAt(10, 10) != HighlightColor {
		t.Errorf("Expected highlight at changed pixel, got %v", analysis.Diff.NRGBAAt(10, 10))
	}

	zonesOnly, err := a.Analyze(left, right, models.DefaultZoneSet(), DefaultOptions().WithoutDiffImage())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if zonesOnly.Diff != nil {
		t.Error("Expected no diff image when disabled")
	}
}

func TestAnalyze_DimensionMismatch(t *testing.T) {
	a := NewPairAnalyzer()
	_, err := a.Analyze(
		createTestImage(10, 10, color.RGBA{}),
		createTestImage(10, 11, color.RGBA{}),
		models.DefaultZoneSet(),
		DefaultOptions(),
	)
	if !apperrors.IsType(err, apperrors.ErrorTypeDimensionMismatch) {
		t.Errorf("Expected dimension mismatch, got %v", err)
	}
}
