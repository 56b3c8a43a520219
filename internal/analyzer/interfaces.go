package analyzer

import (
	"image"

	"go-zone-diff/pkg/models"
)

// PairAnalyzer computes zone differences and the diff image for one pair of screenshots
type PairAnalyzer interface {
	// ComputeZones returns the percentage of differing pixels in every zone
	ComputeZones(left, right image.Image, zones models.ZoneSet) (models.ZoneResult, error)

	// Composite renders differing pixels in red over a softened copy of right
	Composite(left, right image.Image, opacity float64) (*image.NRGBA, error)

	// Analyze runs both computations on a single normalized copy of each image
	Analyze(left, right image.Image, zones models.ZoneSet, options CompareOptions) (PairAnalysis, error)
}
