package models

import "errors"

// ErrBothSidesMissing is returned when a pair would reference no file at all
var ErrBothSidesMissing = errors.New("comparison pair needs at least one present side")

// ComparisonPair associates a left and right image (or an absent marker)
type ComparisonPair struct {
	Left   ImageRef
	Right  ImageRef
	Subdir string
}

// NewPair builds a pair, rejecting two absent sides
func NewPair(left, right ImageRef, subdir string) (ComparisonPair, error) {
	if left.Missing() && right.Missing() {
		return ComparisonPair{}, ErrBothSidesMissing
	}
	return ComparisonPair{Left: left, Right: right, Subdir: subdir}, nil
}

// HasMissing reports whether either side is absent
func (p ComparisonPair) HasMissing() bool {
	return p.Left.Missing() || p.Right.Missing()
}

// Matched reports whether both sides reference a file
func (p ComparisonPair) Matched() bool {
	return !p.HasMissing()
}
