package analyzer

import (
	"image"

	"go-zone-diff/pkg/models"
)

// zoneAnalyzer implements PairAnalyzer
type zoneAnalyzer struct{}

// NewPairAnalyzer creates a new pair analyzer
func NewPairAnalyzer() PairAnalyzer {
	return &zoneAnalyzer{}
}

// ComputeZones requires both images to have identical dimensions and every zone to fit them
func (a *zoneAnalyzer) ComputeZones(left, right image.Image, zones models.ZoneSet) (models.ZoneResult, error) {
	if err := checkSameSize(left, right); err != nil {
		return models.ZoneResult{}, err
	}
	return computeZones(toNRGBA(left), toNRGBA(right), zones)
}

// Composite requires both images to have identical dimensions
func (a *zoneAnalyzer) Composite(left, right image.Image, opacity float64) (*image.NRGBA, error) {
	if err := checkSameSize(left, right); err != nil {
		return nil, err
	}
	return composite(toNRGBA(left), toNRGBA(right), opacity)
}

func (a *zoneAnalyzer) Analyze(left, right image.Image, zones models.ZoneSet, options CompareOptions) (PairAnalysis, error) {
	if err := checkSameSize(left, right); err != nil {
		return PairAnalysis{}, err
	}
	l, r := toNRGBA(left), toNRGBA(right)

	result, err := computeZones(l, r, zones)
	if err != nil {
		return PairAnalysis{}, err
	}
	analysis := PairAnalysis{Zones: result}
	if options.SkipDiffImage {
		return analysis, nil
	}

	diff, err := composite(l, r, options.Opacity)
	if err != nil {
		return PairAnalysis{}, err
	}
	analysis.Diff = diff
	return analysis, nil
}
