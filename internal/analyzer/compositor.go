package analyzer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	apperrors "go-zone-diff/internal/errors"
)

// HighlightColor marks differing pixels in the diff image
var HighlightColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// differenceLayer paints pixels whose RGB channels differ in HighlightColor
// and leaves every other pixel fully transparent
func differenceLayer(left, right *image.NRGBA) *image.NRGBA {
	layer := image.NewNRGBA(left.Bounds())
	for i := 0; i+3 < len(left.Pix); i += 4 {
		if left.Pix[i] != right.Pix[i] || left.Pix[i+1] != right.Pix[i+1] || left.Pix[i+2] != right.Pix[i+2] {
			layer.Pix[i] = HighlightColor.R
			layer.Pix[i+1] = HighlightColor.G
			layer.Pix[i+2] = HighlightColor.B
			layer.Pix[i+3] = HighlightColor.A
		}
	}
	return layer
}

// softenedBackground copies right, sets its alpha from opacity and lowers
// contrast while raising brightness
func softenedBackground(right *image.NRGBA, opacity float64) *image.NRGBA {
	bg := image.NewNRGBA(right.Bounds())
	copy(bg.Pix, right.Pix)
	setAlpha(bg, uint8(opacity*255))
	adjustContrast(bg, backgroundContrast)
	adjustBrightness(bg, backgroundBrightness)
	return bg
}

// alphaCompositeOver draws src over dst in place using non-premultiplied source-over
func alphaCompositeOver(dst, src *image.NRGBA) {
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		sa := float64(src.Pix[i+3]) / 255
		if sa == 0 {
			continue
		}
		if sa == 1 {
			copy(dst.Pix[i:i+4], src.Pix[i:i+4])
			continue
		}
		da := float64(dst.Pix[i+3]) / 255
		oa := sa + da*(1-sa)
		for c := 0; c < 3; c++ {
			sc := float64(src.Pix[i+c])
			dc := float64(dst.Pix[i+c])
			dst.Pix[i+c] = uint8(math.Round((sc*sa + dc*da*(1-sa)) / oa))
		}
		dst.Pix[i+3] = uint8(math.Round(oa * 255))
	}
}

// composite expects normalized images of equal size
func composite(left, right *image.NRGBA, opacity float64) (*image.NRGBA, error) {
	if opacity < 0 || opacity > 1 || math.IsNaN(opacity) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("opacity must be within [0,1], got %v", opacity), nil)
	}
	out := softenedBackground(right, opacity)
	alphaCompositeOver(out, differenceLayer(left, right))
	return out, nil
}
