package fileset

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/warforge/pkg/errors"
)

// MatchAll is the include pattern applied when none is given.
const MatchAll = "**"

// defaultExcludes lists version-control and OS metadata that never belongs in
// an assembled web application.
var defaultExcludes = []string{
	// editors and temp files
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",

	// CVS, RCS, SCCS, Visual SourceSafe
	"**/CVS",
	"**/CVS/**",
	"**/.cvsignore",
	"**/RCS",
	"**/RCS/**",
	"**/SCCS",
	"**/SCCS/**",
	"**/vssver.scc",

	// Subversion
	"**/.svn",
	"**/.svn/**",

	// Bazaar, Arch, Monotone
	"**/.bzr",
	"**/.bzr/**",
	"**/.bzrignore",
	"**/.arch-ids",
	"**/.arch-ids/**",
	"**/_MTN",
	"**/_MTN/**",

	// Git
	"**/.git",
	"**/.git/**",
	"**/.gitattributes",
	"**/.gitignore",
	"**/.gitmodules",

	// Mercurial
	"**/.hg",
	"**/.hg/**",
	"**/.hgignore",
	"**/.hgsub",
	"**/.hgsubstate",
	"**/.hgtags",

	// OS metadata
	"**/.DS_Store",
	"**/Thumbs.db",
}

// DefaultExcludes returns a copy of the built-in exclude patterns.
func DefaultExcludes() []string {
	out := make([]string, len(defaultExcludes))
	copy(out, defaultExcludes)
	return out
}

// SplitPatterns splits a comma separated pattern list, dropping blanks.
func SplitPatterns(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizePattern converts a pattern to the slash-separated form the matcher
// expects. Backslashes become slashes, a leading slash is dropped, and a
// trailing slash is expanded to `/**`.
func NormalizePattern(pattern string) string {
	p := strings.TrimSpace(pattern)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "/")
	if strings.HasSuffix(p, "/") {
		p += MatchAll
	}
	return p
}

// normalizeAll normalizes and validates a pattern list.
func normalizeAll(patterns []string, label string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		p := NormalizePattern(raw)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid %s pattern %q", label, raw).
				WithDetail("pattern", raw)
		}
		for _, seg := range strings.Split(p, "/") {
			if seg == ".." {
				return nil, errors.Newf(errors.ErrInvalidInput, "%s pattern %q escapes the base directory", label, raw).
					WithDetail("pattern", raw)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// matchesAny reports whether rel matches at least one pattern.
func matchesAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// prunes reports whether an exclude pattern removes everything below rel, so
// the walk does not need to descend into it.
func prunes(excludes []string, rel string) bool {
	for _, pat := range excludes {
		if !strings.HasSuffix(pat, "/"+MatchAll) {
			continue
		}
		dirPattern := strings.TrimSuffix(pat, "/"+MatchAll)
		if matched, err := doublestar.Match(dirPattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
