package validation

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "go-zone-diff/internal/errors"
)

// PathValidator checks comparison roots and output locations. A validator
// built with NewRestrictedPathValidator also confines them to configured
// base directories.
type PathValidator struct {
	allowedRoots []string
	outputBase   string
}

// NewPathValidator creates a path validator that accepts any location
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// NewRestrictedPathValidator creates a path validator that only accepts
// comparison roots under one of allowedRoots and output directories under
// outputBase. An empty outputBase leaves output unrestricted.
func NewRestrictedPathValidator(allowedRoots []string, outputBase string) *PathValidator {
	v := &PathValidator{}
	for _, root := range allowedRoots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		v.allowedRoots = append(v.allowedRoots, resolvePath(root))
	}
	if strings.TrimSpace(outputBase) != "" {
		v.outputBase = resolvePath(outputBase)
	}
	return v
}

// Restricted reports whether the validator confines paths to base directories
func (v *PathValidator) Restricted() bool {
	return len(v.allowedRoots) > 0 || v.outputBase != ""
}

// ValidateRoot checks that root exists and is a directory, returning its cleaned absolute path
func (v *PathValidator) ValidateRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", apperrors.NewNotADirectoryError("directory path cannot be empty", nil)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", apperrors.NewNotADirectoryError("cannot resolve directory path", err).WithDetails(root)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", apperrors.NewNotADirectoryError("directory does not exist", err).WithDetails(abs)
	}
	if !info.IsDir() {
		return "", apperrors.NewNotADirectoryError("path is not a directory", nil).WithDetails(abs)
	}

	if len(v.allowedRoots) > 0 && !withinAny(resolvePath(abs), v.allowedRoots) {
		return "", apperrors.NewValidationError("directory is outside the allowed roots", nil).WithDetails(abs)
	}
	return abs, nil
}

// ValidateOutputDir checks the output directory is not inside either comparison root.
// Diff images written there would be picked up by the next run.
func (v *PathValidator) ValidateOutputDir(outputDir string, roots ...string) error {
	if strings.TrimSpace(outputDir) == "" {
		return apperrors.NewValidationError("output directory cannot be empty", nil)
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return apperrors.NewValidationError("cannot resolve output directory", err)
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		if within(out, root) {
			return apperrors.NewValidationError("output directory must not be inside a compared directory", nil).WithDetails(out)
		}
	}

	if v.outputBase != "" && !within(resolvePath(out), v.outputBase) {
		return apperrors.NewValidationError("output directory is outside the output base", nil).WithDetails(out)
	}
	return nil
}

// within reports whether path equals base or lies below it
func within(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func withinAny(path string, bases []string) bool {
	for _, base := range bases {
		if within(path, base) {
			return true
		}
	}
	return false
}

// resolvePath returns the absolute path with symlinks in its longest
// existing prefix evaluated, so a link cannot lead out of a base directory.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	rest := ""
	cur := abs
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}
