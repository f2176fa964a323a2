// Package workarea is the on-disk cache nested archives are unpacked into.
// An entry is fresh when its directory exists and is no older than the
// archive it came from; there is no other invalidation.
package workarea

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/types"
)

// WorkArea is a cache root plus the freshness rule applied to its entries.
type WorkArea struct {
	fs   types.FS
	root string
}

// New creates a work area rooted at root. Nothing is created on disk yet.
func New(fs types.FS, root string) *WorkArea {
	return &WorkArea{fs: fs, root: root}
}

// Root returns the cache root.
func (w *WorkArea) Root() string {
	return w.root
}

// EntryDir returns the cache directory for key.
func (w *WorkArea) EntryDir(key string) string {
	return filepath.Join(w.root, key)
}

// IsFresh reports whether the entry for key exists and is at least as new
// as source.
func (w *WorkArea) IsFresh(key, source string) (bool, error) {
	srcInfo, err := w.fs.Stat(source)
	if err != nil {
		return false, errors.IO(err, source, "cannot read archive")
	}
	dirInfo, err := w.fs.Stat(w.EntryDir(key))
	if err != nil || !dirInfo.IsDir() {
		return false, nil
	}
	return !dirInfo.ModTime().Before(srcInfo.ModTime()), nil
}

// Prepare creates the entry directory for key.
func (w *WorkArea) Prepare(key string) (string, error) {
	dir := w.EntryDir(key)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.IO(err, dir, "cannot create work directory")
	}
	return dir, nil
}

// MarkFresh stamps the entry for key with now, which is after any
// archive modification it was unpacked from.
func (w *WorkArea) MarkFresh(key string, now time.Time) error {
	dir := w.EntryDir(key)
	if err := w.fs.Chtimes(dir, now, now); err != nil {
		return errors.IO(err, dir, "cannot stamp work directory")
	}
	return nil
}

// Clean removes the whole cache.
func (w *WorkArea) Clean() error {
	if err := w.fs.RemoveAll(w.root); err != nil {
		return errors.IO(err, w.root, "cannot remove work area")
	}
	return nil
}
