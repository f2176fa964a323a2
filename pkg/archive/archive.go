package archive

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Entry is one member of an archive being packed. Name is slash separated
// and relative. Exactly one of Source or Data supplies file content; Dir
// entries carry neither.
type Entry struct {
	Name    string
	Source  string
	Data    []byte
	Dir     bool
	ModTime time.Time
}

// UnpackOptions control extraction.
type UnpackOptions struct {
	// Overwrite replaces files that are at least as new as the archive entry.
	Overwrite bool
}

// UnpackResult counts what an extraction did.
type UnpackResult struct {
	Files   int
	Dirs    int
	Skipped int
}

// Codec reads and writes one archive format.
type Codec interface {
	Name() string
	Unpack(fs types.FS, archive, dest string, opts UnpackOptions) (UnpackResult, error)
	Pack(fs types.FS, archive string, entries []Entry) error
}

// Registry maps file extensions to codecs.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// DefaultRegistry knows the zip family and tar archives.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	zipCodec := NewZipCodec()
	for _, ext := range []string{"zip", "jar", "war", "ear", "par", "rar", "sar", "configuration"} {
		r.Register(ext, zipCodec)
	}
	r.Register("tar", NewTarCodec(false))
	r.Register("tgz", NewTarCodec(true))
	r.Register("tar.gz", NewTarCodec(true))
	return r
}

// Register binds an extension, without the leading dot, to codec.
func (r *Registry) Register(ext string, codec Codec) {
	r.codecs[strings.ToLower(strings.TrimPrefix(ext, "."))] = codec
}

// Extensions lists the registered extensions in order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ForFile returns the codec for path, preferring the longest registered
// extension so that "x.tar.gz" resolves to "tar.gz" rather than "gz".
func (r *Registry) ForFile(path string) (Codec, error) {
	ext, ok := r.match(path)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownArchiveType, "no archive codec for %s", filepath.Base(path)).
			WithDetail("path", path)
	}
	return r.codecs[ext], nil
}

func (r *Registry) match(path string) (string, bool) {
	name := strings.ToLower(filepath.Base(path))
	best := ""
	for ext := range r.codecs {
		if strings.HasSuffix(name, "."+ext) && len(ext) > len(best) {
			best = ext
		}
	}
	return best, best != ""
}

// TrimExtension strips the registered extension from the base name of path.
// Unregistered names lose their last extension.
func (r *Registry) TrimExtension(path string) string {
	name := filepath.Base(path)
	if ext, ok := r.match(path); ok {
		return name[:len(name)-len(ext)-1]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// targetPath joins an entry name onto dest and rejects names that would
// land outside it.
func targetPath(archive, dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrArchive, "invalid path in archive: %s", name).
			WithDetail("entry", name).
			WithDetail("path", archive)
	}
	return target, nil
}

// upToDate reports whether path exists as a file no older than mtime.
func upToDate(fs types.FS, path string, mtime time.Time) bool {
	info, err := fs.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return !info.ModTime().Before(mtime)
}

// entryTime falls back to the archive's own time for undated entries.
func entryTime(mtime, fallback time.Time) time.Time {
	if mtime.IsZero() {
		return fallback
	}
	return mtime
}
