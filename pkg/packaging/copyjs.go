package packaging

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/warforge/pkg/errors"
)

// ErrorPolicy decides what a JavaScript copy does when something fails.
type ErrorPolicy string

const (
	// OnErrorIgnore continues without reporting.
	OnErrorIgnore ErrorPolicy = "ignore"
	// OnErrorWarn continues and records a warning.
	OnErrorWarn ErrorPolicy = "warn"
	// OnErrorFail stops at the first failure.
	OnErrorFail ErrorPolicy = "fail"
)

// ParseErrorPolicy accepts ignore, warn or fail. Empty means ignore.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return OnErrorIgnore, nil
	case OnErrorIgnore, OnErrorWarn, OnErrorFail:
		return p, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown error policy %q", s).
			WithDetail("allowed", "ignore, warn, fail")
	}
}

// CopyJSOptions configure CopyJS.
type CopyJSOptions struct {
	SourceDir string
	TargetDir string
	// Query is appended as ?Query to module paths in import and export
	// lines. Empty copies files unchanged.
	Query   string
	OnError ErrorPolicy
}

// CopyJSResult counts what CopyJS did.
type CopyJSResult struct {
	Files     int      `json:"files"`
	Dirs      int      `json:"dirs"`
	Rewritten int      `json:"rewritten"`
	Warnings  []string `json:"warnings,omitempty"`
}

var moduleLine = regexp.MustCompile(`^(import|export).*["'];$`)

// CopyJS mirrors the directory tree under SourceDir into TargetDir and copies
// every .js file, rewriting module import lines when a query is set.
func (p *Packager) CopyJS(opts CopyJSOptions) (*CopyJSResult, error) {
	result := &CopyJSResult{}
	policy := opts.OnError
	if policy == "" {
		policy = OnErrorIgnore
	}

	// handle applies the policy; a non-nil return stops the copy
	handle := func(err error) error {
		switch policy {
		case OnErrorFail:
			return err
		case OnErrorWarn:
			p.logger.Warn().Err(err).Msg("JavaScript copy problem")
			result.Warnings = append(result.Warnings, err.Error())
		default:
			p.logger.Debug().Err(err).Msg("Ignoring JavaScript copy problem")
		}
		return nil
	}

	scan, err := p.scanner.Scan(opts.SourceDir, nil, nil)
	if err != nil {
		return result, handle(err)
	}

	if err := p.fs.MkdirAll(opts.TargetDir, 0755); err != nil {
		if stop := handle(errors.IO(err, opts.TargetDir, "cannot create directory")); stop != nil {
			return result, stop
		}
	}
	for _, dir := range scan.Dirs {
		target := filepath.Join(opts.TargetDir, filepath.FromSlash(dir))
		if err := p.fs.MkdirAll(target, 0755); err != nil {
			if stop := handle(errors.IO(err, target, "cannot create directory")); stop != nil {
				return result, stop
			}
			continue
		}
		result.Dirs++
	}

	for _, file := range scan.Files {
		if !strings.HasSuffix(file, ".js") {
			continue
		}
		src := filepath.Join(opts.SourceDir, filepath.FromSlash(file))
		dst := filepath.Join(opts.TargetDir, filepath.FromSlash(file))
		rewritten, err := p.transformJS(src, dst, opts.Query)
		if err != nil {
			if stop := handle(err); stop != nil {
				return result, stop
			}
			continue
		}
		result.Files++
		result.Rewritten += rewritten
	}

	p.logger.Info().
		Int("files", result.Files).
		Int("rewritten", result.Rewritten).
		Msg("Copied JavaScript")
	return result, nil
}

func (p *Packager) transformJS(src, dst, query string) (int, error) {
	data, err := p.fs.ReadFile(src)
	if err != nil {
		return 0, errors.IO(err, src, "cannot read file")
	}

	var out bytes.Buffer
	rewritten := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if query != "" {
			if changed, ok := AppendImportQuery(line, query); ok {
				line = changed
				rewritten++
			}
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.IO(err, src, "cannot read file")
	}

	if err := p.fs.WriteFile(dst, out.Bytes(), 0644); err != nil {
		return 0, errors.IO(err, dst, "cannot write file")
	}
	return rewritten, nil
}

// AppendImportQuery adds ?query to the quoted module path of an import or
// export line. It reports false for lines that are not module lines.
func AppendImportQuery(line, query string) (string, bool) {
	if !moduleLine.MatchString(line) {
		return line, false
	}
	first := strings.Index(line, `"`)
	if first < 0 {
		first = strings.Index(line, "'")
	}
	last := strings.Index(line[first+1:], `"`)
	if last < 0 {
		last = strings.Index(line[first+1:], "'")
	}
	if last < 0 {
		return line, false
	}
	last += first + 1
	return line[:last] + "?" + query + line[last:], true
}
