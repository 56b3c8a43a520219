package analyzer

import (
	"fmt"
	"image"
	"image/draw"

	apperrors "go-zone-diff/internal/errors"
)

// toNRGBA converts any image to 8-bit non-premultiplied RGBA anchored at (0,0)
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func checkSameSize(left, right image.Image) error {
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dx() != rb.Dx() || lb.Dy() != rb.Dy() {
		return apperrors.NewDimensionMismatchError(
			fmt.Sprintf("images differ in size: %dx%d vs %dx%d", lb.Dx(), lb.Dy(), rb.Dx(), rb.Dy()), nil)
	}
	return nil
}

// BlankImage returns a transparent black image of the given size
func BlankImage(width, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}
