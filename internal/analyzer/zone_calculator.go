package analyzer

import (
	"fmt"
	"image"
	"math"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/pkg/models"
)

// computeZones expects normalized images of equal size
func computeZones(left, right *image.NRGBA, zones models.ZoneSet) (models.ZoneResult, error) {
	bounds := left.Bounds()
	result := models.ZoneResult{Zones: make([]models.ZoneDiff, 0, len(zones.Zones))}

	for _, zone := range zones.Zones {
		rect := zone.Rect()
		if zone.Area() <= 0 || !rect.In(bounds) {
			return models.ZoneResult{}, apperrors.NewDimensionMismatchError(
				fmt.Sprintf("zone %q %v does not fit image %dx%d", zone.Name, rect, bounds.Dx(), bounds.Dy()), nil)
		}

		changed := countChangedPixels(left, right, rect)
		result.Zones = append(result.Zones, models.ZoneDiff{
			Name:       zone.Name,
			Percent:    roundPercent(float64(changed) / float64(zone.Area()) * 100),
			Applicable: true,
		})
	}
	return result, nil
}

// countChangedPixels counts pixels in rect whose channel differences sum to non-zero.
// A change in any single channel (alpha included) marks the whole pixel.
func countChangedPixels(left, right *image.NRGBA, rect image.Rectangle) int {
	changed := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		lo := left.PixOffset(rect.Min.X, y)
		ro := right.PixOffset(rect.Min.X, y)
		for x := 0; x < rect.Dx(); x++ {
			l := left.Pix[lo+x*4 : lo+x*4+4]
			r := right.Pix[ro+x*4 : ro+x*4+4]
			sum := absDiff(l[0], r[0]) + absDiff(l[1], r[1]) + absDiff(l[2], r[2]) + absDiff(l[3], r[3])
			if sum != 0 {
				changed++
			}
		}
	}
	return changed
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// roundPercent rounds to two decimal places
func roundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}
