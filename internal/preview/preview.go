// Package preview draws the configured zones onto a screenshot so zone
// coordinates can be checked by eye.
package preview

import (
	"image"
	"image/color"

	"go-zone-diff/pkg/models"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// FileName is the artifact name used for saved previews
const FileName = "zones_preview.png"

const (
	outlineWidth = 2
	labelPadding = 3
)

var (
	outlineColor = color.NRGBA{255, 0, 0, 255}
	labelColor   = color.NRGBA{255, 255, 255, 255}
)

// Render outlines every zone on a copy of sample. A nil sample renders on
// a black canvas of the zone set's canonical size.
func Render(sample image.Image, zones models.ZoneSet) image.Image {
	var dc *gg.Context
	if sample == nil {
		dc = gg.NewContext(zones.Width, zones.Height)
		dc.SetRGB(0, 0, 0)
		dc.Clear()
	} else {
		dc = gg.NewContextForImage(sample)
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineWidth(outlineWidth)

	for _, z := range zones.Zones {
		r := z.Rect()
		dc.SetColor(outlineColor)
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Stroke()

		dc.SetColor(labelColor)
		dc.DrawStringAnchored(z.Name, float64(r.Min.X+labelPadding), float64(r.Min.Y+labelPadding), 0, 1)
	}
	return dc.Image()
}
