package analyzer

import (
	"image"
	"image/color"
	"testing"

	apperrors "go-zone-diff/internal/errors"
)

func TestComposite_IdenticalImagesSoftenedBackground(t *testing.T) {
	a := NewPairAnalyzer()
	img := createTestImage(6, 4, color.RGBA{100, 150, 200, 255})

	out, err := a.Composite(img, img, 1.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Errorf("Unexpected bounds %v", out.Bounds())
	}

	// mean luma 141; contrast 0.6 -> (116,146,176); brightness 1.2 -> (139,175,211)
	want := color.NRGBA{139, 175, 211, 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if got := out.NRGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestComposite_HighlightsDifferences(t *testing.T) {
	a := NewPairAnalyzer()
	left := createTestImage(5, 5, color.RGBA{0, 0, 0, 255})
	right := createTestImage(5, 5, color.RGBA{0, 0, 0, 255})
	right.Set(2, 3, color.RGBA{0, 0, 1, 255})

	out, err := a.Composite(left, right, 0.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := out.NRGBAAt(2, 3); got != HighlightColor {
		t.Errorf("Expected highlight at (2,3), got %v", got)
	}
	highlighted := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			p := out.NRGBAAt(x, y)
			if p == HighlightColor {
				highlighted++
				continue
			}
			if p.A != 127 {
				t.Errorf("Pixel (%d,%d): expected background alpha 127, got %d", x, y, p.A)
			}
		}
	}
	if highlighted != 1 {
		t.Errorf("Expected exactly one highlighted pixel, got %d", highlighted)
	}
}

func TestComposite_AlphaOnlyDifferenceNotHighlighted(t *testing.T) {
	a := NewPairAnalyzer()
	left := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	right := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(left.Pix); i += 4 {
		copy(left.Pix[i:i+4], []uint8{10, 10, 10, 255})
		copy(right.Pix[i:i+4], []uint8{10, 10, 10, 0})
	}

	out, err := a.Composite(left, right, 1.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if out.NRGBAAt(x, y) == HighlightColor {
				t.Errorf("Pixel (%d,%d): alpha-only change should not be highlighted", x, y)
			}
		}
	}
}

func TestComposite_BrightnessClipped(t *testing.T) {
	a := NewPairAnalyzer()
	img := createTestImage(3, 3, color.RGBA{255, 255, 255, 255})

	out, err := a.Composite(img, img, 1.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("Expected white to stay white, got %v", got)
	}
}

func TestComposite_ZeroOpacity(t *testing.T) {
	a := NewPairAnalyzer()
	left := createTestImage(2, 1, color.RGBA{0, 0, 0, 255})
	right := createTestImage(2, 1, color.RGBA{0, 0, 0, 255})
	right.Set(0, 0, color.RGBA{255, 255, 255, 255})

	out, err := a.Composite(left, right, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.NRGBAAt(0, 0) != HighlightColor {
		t.Errorf("Expected highlight to stay opaque, got %v", out.NRGBAAt(0, 0))
	}
	if out.NRGBAAt(1, 0).A != 0 {
		t.Errorf("Expected transparent background, got %v", out.NRGBAAt(1, 0))
	}
}

func TestComposite_InvalidOpacity(t *testing.T) {
	a := NewPairAnalyzer()
	img := createTestImage(2, 2, color.RGBA{})

	for _, opacity := range []float64{-0.1, 1.01} {
		_, err := a.Composite(img, img, opacity)
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("Opacity %v: expected validation error, got %v", opacity, err)
		}
	}
}

func TestComposite_DimensionMismatch(t *testing.T) {
	a := NewPairAnalyzer()
	_, err := a.Composite(createTestImage(4, 4, color.RGBA{}), createTestImage(4, 5, color.RGBA{}), 1)
	if !apperrors.IsType(err, apperrors.ErrorTypeDimensionMismatch) {
		t.Errorf("Expected dimension mismatch, got %v", err)
	}
}

func TestComposite_DoesNotModifyInputs(t *testing.T) {
	a := NewPairAnalyzer()
	left := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	right := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range right.Pix {
		right.Pix[i] = 200
	}
	before := append([]uint8(nil), right.Pix...)

	if _, err := a.Composite(left, right, 0.3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range before {
		if right.Pix[i] != before[i] {
			t.Fatal("Expected input image to be left untouched")
		}
	}
}
