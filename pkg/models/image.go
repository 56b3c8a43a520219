package models

import (
	"path"
	"path/filepath"
)

// MissingID is written wherever an absent counterpart would show a file identifier
const MissingID = "MISSING"

// ImagePath identifies a located image file
type ImagePath struct {
	Path   string `json:"path"`
	Root   string `json:"root"`
	Subdir string `json:"subdir"`
}

// NewImagePath builds an ImagePath for a file found under root.
// subdir is slash separated; the root directory itself is "".
func NewImagePath(root, subdir, file string) ImagePath {
	return ImagePath{
		Path:   filepath.Clean(file),
		Root:   filepath.Clean(root),
		Subdir: subdir,
	}
}

// Name returns the file basename
func (p ImagePath) Name() string {
	return filepath.Base(p.Path)
}

// ID returns subdir/basename, or the basename for files at the root
func (p ImagePath) ID() string {
	if p.Subdir == "" {
		return p.Name()
	}
	return path.Join(p.Subdir, p.Name())
}

// ImageRef is either a present image or an absent counterpart.
// The zero value is Absent.
type ImageRef struct {
	image   ImagePath
	present bool
}

// Present wraps a located image
func Present(p ImagePath) ImageRef {
	return ImageRef{image: p, present: true}
}

// Absent marks a position with no counterpart image
func Absent() ImageRef {
	return ImageRef{}
}

// Missing reports whether the reference has no image
func (r ImageRef) Missing() bool {
	return !r.present
}

// Image returns the referenced path and whether it exists
func (r ImageRef) Image() (ImagePath, bool) {
	return r.image, r.present
}

// ID returns the image identifier or MissingID
func (r ImageRef) ID() string {
	if !r.present {
		return MissingID
	}
	return r.image.ID()
}

// Name returns the basename, empty when absent
func (r ImageRef) Name() string {
	if !r.present {
		return ""
	}
	return r.image.Name()
}

func (r ImageRef) String() string {
	return r.ID()
}
