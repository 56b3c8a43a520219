package pairing

import (
	"path/filepath"
	"strings"

	"github.com/arbovm/levenshtein"

	"go-zone-diff/pkg/models"
)

// DefaultMaxDistance is the edit distance below which two unmatched names are suggested as a rename
const DefaultMaxDistance = 3

// SuggestRenames looks at files left unmatched within the same subdirectory
// and proposes the closest counterpart by edit distance of the name stem.
// Each unmatched file is used in at most one hint. Pairing is not affected.
func SuggestRenames(pairs []models.ComparisonPair, maxDistance int) []models.RenameHint {
	type unmatched struct {
		left, right []string
	}
	bySubdir := make(map[string]*unmatched)
	var order []string

	for _, p := range pairs {
		if p.Matched() {
			continue
		}
		u, ok := bySubdir[p.Subdir]
		if !ok {
			u = &unmatched{}
			bySubdir[p.Subdir] = u
			order = append(order, p.Subdir)
		}
		if p.Right.Missing() {
			u.left = append(u.left, p.Left.Name())
		} else {
			u.right = append(u.right, p.Right.Name())
		}
	}

	var hints []models.RenameHint
	for _, subdir := range order {
		u := bySubdir[subdir]
		used := make(map[int]bool)
		for _, l := range u.left {
			best, bestDist := -1, maxDistance+1
			for k, r := range u.right {
				if used[k] {
					continue
				}
				d := levenshtein.Distance(stem(l), stem(r))
				if d < bestDist {
					best, bestDist = k, d
				}
			}
			if best >= 0 {
				used[best] = true
				hints = append(hints, models.RenameHint{
					Subdir:   subdir,
					Left:     l,
					Right:    u.right[best],
					Distance: bestDist,
				})
			}
		}
	}
	return hints
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
