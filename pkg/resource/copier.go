package resource

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/fileset"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Stats counts what a Copier actually did.
type Stats struct {
	Copied    int `json:"copied"`
	Skipped   int `json:"skipped"`
	Filtered  int `json:"filtered"`
	Unchanged int `json:"unchanged"`
}

// Add returns the sum of two counters.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Copied:    s.Copied + o.Copied,
		Skipped:   s.Skipped + o.Skipped,
		Filtered:  s.Filtered + o.Filtered,
		Unchanged: s.Unchanged + o.Unchanged,
	}
}

// Copier performs plain and filtered copies through a types.FS.
type Copier struct {
	fs      types.FS
	scanner *fileset.Scanner
	logger  zerolog.Logger
	stats   Stats
}

// NewCopier creates a copier over fs.
func NewCopier(fs types.FS) *Copier {
	return &Copier{
		fs:      fs,
		scanner: fileset.NewScanner(fs),
		logger:  logging.GetLogger("resource.copier"),
	}
}

// Stats returns the counters accumulated so far.
func (c *Copier) Stats() Stats {
	return c.stats
}

// CopyIfModified copies src to dst unless dst is a regular file whose
// modification time is not older than src. The copy keeps the source
// modification time. It reports whether bytes were written.
func (c *Copier) CopyIfModified(src, dst string) (bool, error) {
	srcInfo, err := c.fs.Stat(src)
	if err != nil {
		return false, errors.IO(err, src, "cannot read source file")
	}

	if dstInfo, err := c.fs.Stat(dst); err == nil && !dstInfo.IsDir() {
		if !dstInfo.ModTime().Before(srcInfo.ModTime()) {
			c.stats.Skipped++
			c.logger.Trace().Str("dest", dst).Msg("destination is up to date")
			return false, nil
		}
	}

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, errors.IO(err, filepath.Dir(dst), "cannot create directory")
	}
	if err := c.stream(src, dst); err != nil {
		return false, err
	}
	if err := c.fs.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return false, errors.IO(err, dst, "cannot set modification time")
	}

	c.stats.Copied++
	c.logger.Debug().Str("source", src).Str("dest", dst).Msg("copied")
	return true, nil
}

func (c *Copier) stream(src, dst string) error {
	in, err := c.fs.Open(src)
	if err != nil {
		return errors.IO(err, src, "cannot open source file")
	}
	defer func() { _ = in.Close() }()

	out, err := c.fs.Create(dst)
	if err != nil {
		return errors.IO(err, dst, "cannot create destination file")
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.IO(err, dst, "cannot write destination file")
	}
	if err := out.Close(); err != nil {
		return errors.IO(err, dst, "cannot write destination file")
	}
	return nil
}

// FilterCopy writes src to dst through pipeline, creating parent
// directories. When dst already holds exactly the filtered content it is
// left alone, so repeated runs do not rewrite it.
func (c *Copier) FilterCopy(src, dst string, pipeline Pipeline) (bool, error) {
	data, err := c.fs.ReadFile(src)
	if err != nil {
		return false, errors.IO(err, src, "cannot read source file")
	}
	filtered := []byte(pipeline.Apply(string(data)))

	if existing, err := c.fs.ReadFile(dst); err == nil && bytes.Equal(existing, filtered) {
		c.stats.Unchanged++
		c.logger.Trace().Str("dest", dst).Msg("filtered content unchanged")
		return false, nil
	}

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, errors.IO(err, filepath.Dir(dst), "cannot create directory")
	}
	if err := c.fs.WriteFile(dst, filtered, 0644); err != nil {
		return false, errors.IO(err, dst, "cannot write destination file")
	}

	c.stats.Filtered++
	c.logger.Debug().Str("source", src).Str("dest", dst).Msg("filtered")
	return true, nil
}

// CopyTree mirrors the files of srcDir selected by includes and excludes into
// dstDir. Every selected directory is created, including empty ones. A nil
// pipeline means a plain change-aware copy.
func (c *Copier) CopyTree(srcDir, dstDir string, includes, excludes []string, pipeline *Pipeline) error {
	result, err := c.scanner.Scan(srcDir, includes, excludes)
	if err != nil {
		return err
	}

	for _, dir := range result.Dirs {
		target := filepath.Join(dstDir, filepath.FromSlash(dir))
		if err := c.fs.MkdirAll(target, 0755); err != nil {
			return errors.IO(err, target, "cannot create directory")
		}
	}

	for _, file := range result.Files {
		src := filepath.Join(srcDir, filepath.FromSlash(file))
		dst := filepath.Join(dstDir, filepath.FromSlash(file))
		if pipeline != nil {
			_, err = c.FilterCopy(src, dst, *pipeline)
		} else {
			_, err = c.CopyIfModified(src, dst)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
