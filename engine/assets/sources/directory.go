package sources

import (
	"os"
	"path/filepath"
)

// Directory serves assets from a directory tree on disk. It is watchable,
// so directory-backed assets participate in hot reload.
type Directory struct {
	root string
}

func NewDirectory(root string) *Directory {
	return &Directory{root: root}
}

func (d *Directory) Load(name string) ([]byte, error) {
	return os.ReadFile(d.Path(name))
}

func (d *Directory) Modified(name string) (int64, error) {
	fi, err := os.Stat(d.Path(name))
	if err != nil {
		return 0, err
	}
	return fi.ModTime().UnixNano(), nil
}

func (d *Directory) Path(name string) string {
	return filepath.Join(d.root, name)
}
