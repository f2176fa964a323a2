package fileset

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Result holds the relative, slash-separated paths selected by a scan.
// Directories are listed before anything inside them.
type Result struct {
	Files []string
	Dirs  []string
}

// Scanner walks a base directory and applies include/exclude patterns
type Scanner struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewScanner creates a scanner reading through fs
func NewScanner(fs types.FS) *Scanner {
	return &Scanner{
		fs:     fs,
		logger: logging.GetLogger("fileset.scanner"),
	}
}

// Scan returns the files and directories under baseDir that match at least
// one include pattern and no exclude pattern. The default excludes are always
// applied. Symbolic links to directories are not followed, and a file link is
// only selected when its target resolves inside baseDir.
func (s *Scanner) Scan(baseDir string, includes, excludes []string) (*Result, error) {
	info, err := s.fs.Stat(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "scan base directory %s does not exist", baseDir).
				WithDetail("path", baseDir)
		}
		return nil, errors.IO(err, baseDir, "cannot stat scan base directory")
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "scan base %s is not a directory", baseDir).
			WithDetail("path", baseDir)
	}

	inc, err := normalizeAll(includes, "include")
	if err != nil {
		return nil, err
	}
	if len(inc) == 0 {
		inc = []string{MatchAll}
	}
	exc, err := normalizeAll(append(DefaultExcludes(), excludes...), "exclude")
	if err != nil {
		return nil, err
	}

	realBase, err := s.fs.EvalSymlinks(baseDir)
	if err != nil {
		return nil, errors.IO(err, baseDir, "cannot resolve scan base directory")
	}

	s.logger.Trace().
		Str("base", baseDir).
		Strs("includes", inc).
		Int("excludes", len(exc)).
		Msg("Scanning directory")

	w := &walker{Scanner: s, realBase: realBase, inc: inc, exc: exc, result: &Result{}}
	if err := w.walk(baseDir, ""); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("base", baseDir).
		Int("files", len(w.result.Files)).
		Int("dirs", len(w.result.Dirs)).
		Msg("Scan complete")

	return w.result, nil
}

// walker carries one scan's patterns and the resolved base directory.
type walker struct {
	*Scanner
	realBase string
	inc, exc []string
	result   *Result
}

// inside reports whether the resolved path target lies within the base.
func (w *walker) inside(target string) bool {
	rel, err := filepath.Rel(w.realBase, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *walker) walk(dir, relDir string) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return errors.IO(err, dir, "cannot read directory")
	}

	for _, entry := range entries {
		rel := entry.Name()
		if relDir != "" {
			rel = path.Join(relDir, entry.Name())
		}
		full := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := w.fs.Stat(full)
			if err != nil {
				w.logger.Debug().Str("path", full).Msg("Skipping dangling symlink")
				continue
			}
			if target.IsDir() {
				w.logger.Debug().Str("path", full).Msg("Not following directory symlink")
				continue
			}
			resolved, err := w.fs.EvalSymlinks(full)
			if err != nil || !w.inside(resolved) {
				w.logger.Debug().
					Str("path", full).
					Str("target", resolved).
					Msg("Skipping symlink that leaves the base directory")
				continue
			}
			isDir = false
		}

		selected := matchesAny(w.inc, rel) && !matchesAny(w.exc, rel)

		if !isDir {
			if selected {
				w.result.Files = append(w.result.Files, rel)
			}
			continue
		}

		if selected {
			w.result.Dirs = append(w.result.Dirs, rel)
		}
		if prunes(w.exc, rel) {
			continue
		}
		if err := w.walk(full, rel); err != nil {
			return err
		}
	}
	return nil
}
