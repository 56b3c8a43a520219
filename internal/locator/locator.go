// Package locator finds screenshot files under a directory tree.
package locator

import (
	"io/fs"
	"path/filepath"
	"strings"

	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/internal/logger"
	"go-zone-diff/pkg/models"
	"go-zone-diff/pkg/validation"

	"github.com/sirupsen/logrus"
)

// RootKey is the grouping key for images directly under the root
const RootKey = ""

// Grouping maps a slash-separated subdirectory (relative to the root) to its images
// in directory-listing order
type Grouping map[string][]models.ImagePath

// Count returns the number of images across all groups
func (g Grouping) Count() int {
	n := 0
	for _, images := range g {
		n += len(images)
	}
	return n
}

// IsImageFile reports whether the file extension is png, jpg or jpeg, ignoring case
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// Locate walks root recursively and groups image files by subdirectory
func Locate(root string) (Grouping, error) {
	abs, err := validation.NewPathValidator().ValidateRoot(root)
	if err != nil {
		return nil, err
	}

	groups := make(Grouping)
	err = filepath.WalkDir(abs, collect(abs, groups))
	if err != nil {
		return nil, apperrors.NewIOError("failed to walk directory", err).WithDetails(abs)
	}
	return groups, nil
}

// collect returns the walk callback filling groups. A subdirectory that
// cannot be read is skipped with a warning; only failures on the root
// itself abort the walk.
func collect(abs string, groups Grouping) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == abs || d == nil || !d.IsDir() {
				return walkErr
			}
			logger.WithError(walkErr).WithFields(logrus.Fields{
				"root":   abs,
				"subdir": path,
			}).Warn("Skipping unreadable subdirectory")
			return fs.SkipDir
		}
		if d.IsDir() || !IsImageFile(d.Name()) {
			return nil
		}
		subdir, err := relativeDir(abs, path)
		if err != nil {
			return err
		}
		groups[subdir] = append(groups[subdir], models.NewImagePath(abs, subdir, path))
		return nil
	}
}

func relativeDir(root, file string) (string, error) {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil {
		return "", err
	}
	if rel == "." {
		return RootKey, nil
	}
	return filepath.ToSlash(rel), nil
}
