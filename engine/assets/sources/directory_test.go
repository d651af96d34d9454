package sources

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/atlas/engine/assets"
)

// Compile-time checks that Directory is a watchable source.
var (
	_ assets.Source    = (*Directory)(nil)
	_ assets.Watchable = (*Directory)(nil)
)

func TestDirectoryLoad(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "textures"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x02, 0x03}
	if err := os.WriteFile(filepath.Join(root, "textures", "a.png"), want, 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDirectory(root)
	got, err := d.Load("textures/a.png")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("Load = %v, want %v", got, want)
	}

	if _, err := d.Load("textures/missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load of missing file = %v, want fs.ErrNotExist", err)
	}
}

func TestDirectoryModifiedAndPath(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.ron")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDirectory(root)
	if got := d.Path("a.ron"); got != path {
		t.Errorf("Path = %q, want %q", got, path)
	}

	mod, err := d.Modified("a.ron")
	if err != nil {
		t.Fatal(err)
	}
	if mod == 0 {
		t.Error("Modified = 0 for an existing file")
	}
	if _, err := d.Modified("missing"); err == nil {
		t.Error("Modified of missing file did not error")
	}
}
