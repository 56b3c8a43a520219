// Package pairing reconciles two screenshot collections into comparison pairs.
package pairing

import (
	"sort"

	"go-zone-diff/internal/locator"
	"go-zone-diff/pkg/models"
)

// Reconcile pairs the images of two groupings.
//
// Subdirectories present on both sides come first, in lexical order, each
// merged by basename; subdirectories present on one side follow, in lexical
// order, with every file paired against an absent counterpart. Every file of
// both groupings appears in exactly one pair.
func Reconcile(left, right locator.Grouping) []models.ComparisonPair {
	var common, exclusive []string
	for subdir := range left {
		if _, ok := right[subdir]; ok {
			common = append(common, subdir)
		} else {
			exclusive = append(exclusive, subdir)
		}
	}
	for subdir := range right {
		if _, ok := left[subdir]; !ok {
			exclusive = append(exclusive, subdir)
		}
	}
	sort.Strings(common)
	sort.Strings(exclusive)

	pairs := make([]models.ComparisonPair, 0, left.Count()+right.Count())
	for _, subdir := range common {
		pairs = append(pairs, mergeByName(subdir, left[subdir], right[subdir])...)
	}
	for _, subdir := range exclusive {
		for _, img := range left[subdir] {
			pairs = append(pairs, models.ComparisonPair{Left: models.Present(img), Right: models.Absent(), Subdir: subdir})
		}
		for _, img := range right[subdir] {
			pairs = append(pairs, models.ComparisonPair{Left: models.Absent(), Right: models.Present(img), Subdir: subdir})
		}
	}
	return pairs
}

// mergeByName performs a sorted merge of two file lists on basename
func mergeByName(subdir string, left, right []models.ImagePath) []models.ComparisonPair {
	a := sortedByName(left)
	b := sortedByName(right)

	pairs := make([]models.ComparisonPair, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		an, bn := a[i].Name(), b[j].Name()
		switch {
		case an == bn:
			pairs = append(pairs, models.ComparisonPair{Left: models.Present(a[i]), Right: models.Present(b[j]), Subdir: subdir})
			i++
			j++
		case an < bn:
			pairs = append(pairs, models.ComparisonPair{Left: models.Present(a[i]), Right: models.Absent(), Subdir: subdir})
			i++
		default:
			pairs = append(pairs, models.ComparisonPair{Left: models.Absent(), Right: models.Present(b[j]), Subdir: subdir})
			j++
		}
	}
	for ; i < len(a); i++ {
		pairs = append(pairs, models.ComparisonPair{Left: models.Present(a[i]), Right: models.Absent(), Subdir: subdir})
	}
	for ; j < len(b); j++ {
		pairs = append(pairs, models.ComparisonPair{Left: models.Absent(), Right: models.Present(b[j]), Subdir: subdir})
	}
	return pairs
}

// sortedByName returns a copy ordered by basename using byte-wise comparison.
// Names differing only in case stay distinct.
func sortedByName(images []models.ImagePath) []models.ImagePath {
	out := make([]models.ImagePath, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}
