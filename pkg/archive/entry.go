package archive

import (
	"bytes"
	"io"
	"path/filepath"
	"time"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/types"
)

// extractFile writes r to target and stamps it with mtime.
func extractFile(fs types.FS, target string, r io.Reader, mtime time.Time) (err error) {
	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.IO(err, filepath.Dir(target), "cannot create directory")
	}
	out, err := fs.Create(target)
	if err != nil {
		return errors.IO(err, target, "cannot create file")
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = errors.IO(closeErr, target, "cannot write file")
		}
	}()

	//nolint:gosec // archives come from the local build
	if _, err := io.Copy(out, r); err != nil {
		return errors.IO(err, target, "cannot write file")
	}
	return nil
}

// stamp sets both times of path to mtime.
func stamp(fs types.FS, path string, mtime time.Time) error {
	if err := fs.Chtimes(path, mtime, mtime); err != nil {
		return errors.IO(err, path, "cannot set modification time")
	}
	return nil
}

// entryContent opens the content of e for packing and fills in its
// modification time when unset.
func entryContent(fs types.FS, e *Entry) (io.ReadCloser, int64, error) {
	if e.Source == "" {
		return io.NopCloser(bytes.NewReader(e.Data)), int64(len(e.Data)), nil
	}
	info, err := fs.Stat(e.Source)
	if err != nil {
		return nil, 0, errors.IO(err, e.Source, "cannot read file")
	}
	if e.ModTime.IsZero() {
		e.ModTime = info.ModTime()
	}
	rc, err := fs.Open(e.Source)
	if err != nil {
		return nil, 0, errors.IO(err, e.Source, "cannot open file")
	}
	return rc, info.Size(), nil
}
