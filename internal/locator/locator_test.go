package locator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "go-zone-diff/internal/errors"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"a.png":           true,
		"a.PNG":           true,
		"b.jpg":           true,
		"b.JpEg":          true,
		"notes.txt":       false,
		"photo.gif":       false,
		"png":             false,
		"archive.png.zip": false,
	}
	for name, want := range tests {
		if got := IsImageFile(name); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLocate_GroupsBySubdirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "home.png")
	touch(t, root, "readme.txt")
	touch(t, root, "menu/a.PNG")
	touch(t, root, "menu/b.jpeg")
	touch(t, root, "menu/settings/c.jpg")
	touch(t, root, "empty/notes.md")

	groups, err := Locate(root)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if groups.Count() != 4 {
		t.Errorf("Expected 4 images, got %d", groups.Count())
	}
	if len(groups[RootKey]) != 1 || groups[RootKey][0].Name() != "home.png" {
		t.Errorf("Unexpected root group: %+v", groups[RootKey])
	}
	if len(groups["menu"]) != 2 {
		t.Errorf("Expected 2 images in menu, got %d", len(groups["menu"]))
	}
	if len(groups["menu/settings"]) != 1 {
		t.Errorf("Expected nested group keyed menu/settings, got keys %v", keys(groups))
	}
	if _, ok := groups["empty"]; ok {
		t.Error("Expected directory without images to be absent")
	}

	img := groups["menu/settings"][0]
	if img.ID() != "menu/settings/c.jpg" {
		t.Errorf("Unexpected ID %q", img.ID())
	}
	if !filepath.IsAbs(img.Path) {
		t.Errorf("Expected absolute path, got %q", img.Path)
	}
}

func TestLocate_EmptyDirectory(t *testing.T) {
	groups, err := Locate(t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected no groups, got %v", keys(groups))
	}
}

func TestLocate_NotADirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.png")

	for _, bad := range []string{filepath.Join(root, "missing"), filepath.Join(root, "a.png")} {
		_, err := Locate(bad)
		if !apperrors.IsType(err, apperrors.ErrorTypeNotADirectory) {
			t.Errorf("Locate(%q): expected not_a_directory, got %v", bad, err)
		}
	}
}

func TestCollect_SkipsUnreadableSubdirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "locked/a.png")
	info, err := os.Stat(filepath.Join(root, "locked"))
	if err != nil {
		t.Fatal(err)
	}
	dir := fs.FileInfoToDirEntry(info)
	groups := make(Grouping)
	visit := collect(root, groups)

	if got := visit(filepath.Join(root, "locked"), dir, fs.ErrPermission); got != fs.SkipDir {
		t.Errorf("Expected nested read error to skip the subtree, got %v", got)
	}
	if got := visit(root, dir, fs.ErrPermission); !errors.Is(got, fs.ErrPermission) {
		t.Errorf("Expected root read error to abort the walk, got %v", got)
	}
	if got := visit(filepath.Join(root, "gone"), nil, fs.ErrNotExist); !errors.Is(got, fs.ErrNotExist) {
		t.Errorf("Expected error without entry to abort the walk, got %v", got)
	}
}

func TestLocate_UnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced here")
	}
	root := t.TempDir()
	touch(t, root, "a.png")
	touch(t, root, "locked/b.png")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0755)

	groups, err := Locate(root)
	if err != nil {
		t.Fatalf("Expected unreadable subdirectory to be skipped, got %v", err)
	}
	if len(groups) != 1 || len(groups[RootKey]) != 1 {
		t.Errorf("Expected only the root image, got groups %v", keys(groups))
	}
}

func keys(g Grouping) []string {
	var out []string
	for k := range g {
		out = append(out, k)
	}
	return out
}
