package analyzer

import (
	"image"

	"go-zone-diff/pkg/models"
)

// PairAnalysis is the outcome of analyzing one matched pair
type PairAnalysis struct {
	Zones models.ZoneResult
	Diff  *image.NRGBA
}
