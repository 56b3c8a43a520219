package analyzer

import (
	"image"
)

const (
	// Background softening applied under the difference layer
	backgroundContrast   = 0.6
	backgroundBrightness = 1.2
)

// luma returns the 8-bit ITU-R 601 luma with the same fixed-point rounding
// common imaging libraries use for RGB to grayscale conversion
func luma(r, g, b uint8) int {
	return (int(r)*19595 + int(g)*38470 + int(b)*7471 + 0x8000) >> 16
}

// meanLuma returns the rounded mean grayscale level of img
func meanLuma(img *image.NRGBA) int {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var total int64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			p := img.Pix[off+x*4:]
			total += int64(luma(p[0], p[1], p[2]))
		}
	}
	return int(float64(total)/float64(n) + 0.5)
}

// blendChannel interpolates from degenerate toward value by factor.
// Factors above 1 extrapolate and are clipped to [0,255].
func blendChannel(degenerate, value int, factor float64) uint8 {
	v := float64(degenerate) + factor*float64(value-degenerate)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// adjustContrast blends the color channels toward the mean luma in place; alpha is kept
func adjustContrast(img *image.NRGBA, factor float64) {
	mean := meanLuma(img)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = blendChannel(mean, int(img.Pix[i]), factor)
		img.Pix[i+1] = blendChannel(mean, int(img.Pix[i+1]), factor)
		img.Pix[i+2] = blendChannel(mean, int(img.Pix[i+2]), factor)
	}
}

// adjustBrightness scales the color channels relative to black in place; alpha is kept
func adjustBrightness(img *image.NRGBA, factor float64) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = blendChannel(0, int(img.Pix[i]), factor)
		img.Pix[i+1] = blendChannel(0, int(img.Pix[i+1]), factor)
		img.Pix[i+2] = blendChannel(0, int(img.Pix[i+2]), factor)
	}
}

// setAlpha replaces the alpha channel of every pixel
func setAlpha(img *image.NRGBA, alpha uint8) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = alpha
	}
}
