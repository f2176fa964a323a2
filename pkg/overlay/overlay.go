package overlay

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/archive"
	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/fileset"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/resource"
	"github.com/arthur-debert/warforge/pkg/types"
	"github.com/arthur-debert/warforge/pkg/workarea"
)

// Options select what an overlay contributes.
type Options struct {
	Includes []string
	Excludes []string
	// Overwrite makes unpacking replace cached files that look up to date.
	Overwrite bool
}

// Unpacked is a nested archive extracted into the work area.
type Unpacked struct {
	Artifact types.Artifact `json:"artifact"`
	Dir      string         `json:"dir"`
	Reused   bool           `json:"reused"`
}

// Result counts what one overlay contributed.
type Result struct {
	Artifact string `json:"artifact"`
	Dirs     int    `json:"dirs"`
	Copied   int    `json:"copied"`
	Current  int    `json:"current"`
	Shadowed int    `json:"shadowed"`
}

// Overlayer unpacks and applies nested archives.
type Overlayer struct {
	fs      types.FS
	codecs  *archive.Registry
	work    *workarea.WorkArea
	copier  *resource.Copier
	scanner *fileset.Scanner
	opts    Options
	now     func() time.Time
	logger  zerolog.Logger
}

// New creates an Overlayer. Copies go through copier so they share its
// freshness policy and counters.
func New(fs types.FS, codecs *archive.Registry, work *workarea.WorkArea, copier *resource.Copier, opts Options) *Overlayer {
	return &Overlayer{
		fs:      fs,
		codecs:  codecs,
		work:    work,
		copier:  copier,
		scanner: fileset.NewScanner(fs),
		opts:    opts,
		now:     time.Now,
		logger:  logging.GetLogger("overlay"),
	}
}

// Unpack extracts the artifact into its work area entry, reusing the entry
// when it is fresh. The second result is false when no codec handles the
// artifact's file; the caller should skip it.
func (o *Overlayer) Unpack(a types.Artifact) (Unpacked, bool, error) {
	codec, err := o.codecs.ForFile(a.File)
	if err != nil {
		o.logger.Warn().
			Str("artifact", a.ID()).
			Str("file", a.File).
			Strs("supported", o.codecs.Extensions()).
			Msg("unknown archive type, skipping overlay")
		return Unpacked{}, false, nil
	}

	key := o.codecs.TrimExtension(a.File)
	u := Unpacked{Artifact: a, Dir: o.work.EntryDir(key)}

	fresh, err := o.work.IsFresh(key, a.File)
	if err != nil {
		return u, false, err
	}
	if fresh {
		o.logger.Debug().Str("artifact", a.ID()).Str("dir", u.Dir).Msg("reusing unpacked archive")
		u.Reused = true
		return u, true, nil
	}

	if _, err := o.work.Prepare(key); err != nil {
		return u, false, err
	}
	result, err := codec.Unpack(o.fs, a.File, u.Dir, archive.UnpackOptions{Overwrite: o.opts.Overwrite})
	if err != nil {
		return u, false, err
	}

	stampTime := o.now()
	if info, err := o.fs.Stat(a.File); err == nil && info.ModTime().After(stampTime) {
		stampTime = info.ModTime()
	}
	if err := o.work.MarkFresh(key, stampTime); err != nil {
		return u, false, err
	}

	o.logger.Info().
		Str("artifact", a.ID()).
		Str("dir", u.Dir).
		Int("files", result.Files).
		Msg("unpacked nested archive")
	return u, true, nil
}

// Apply merges an unpacked archive into targetDir. Every selected directory
// is created first. A file is copied only when sourceDir, the owning
// project's own source tree, has nothing at the same relative path.
func (o *Overlayer) Apply(u Unpacked, sourceDir, targetDir string) (Result, error) {
	result := Result{Artifact: u.Artifact.ID()}

	scan, err := o.scanner.Scan(u.Dir, o.opts.Includes, o.opts.Excludes)
	if err != nil {
		return result, err
	}

	for _, dir := range scan.Dirs {
		target := filepath.Join(targetDir, filepath.FromSlash(dir))
		if err := o.fs.MkdirAll(target, 0755); err != nil {
			return result, errors.IO(err, target, "cannot create directory")
		}
		result.Dirs++
	}

	for _, file := range scan.Files {
		rel := filepath.FromSlash(file)
		if sourceDir != "" {
			if _, err := o.fs.Stat(filepath.Join(sourceDir, rel)); err == nil {
				result.Shadowed++
				o.logger.Trace().Str("path", file).Msg("kept project file over overlay")
				continue
			}
		}
		copied, err := o.copier.CopyIfModified(filepath.Join(u.Dir, rel), filepath.Join(targetDir, rel))
		if err != nil {
			return result, err
		}
		if copied {
			result.Copied++
		} else {
			result.Current++
		}
	}

	o.logger.Info().
		Str("artifact", result.Artifact).
		Int("copied", result.Copied).
		Int("shadowed", result.Shadowed).
		Msg("applied overlay")
	return result, nil
}
