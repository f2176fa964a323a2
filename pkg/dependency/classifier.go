package dependency

import (
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Decision is the placement chosen for one artifact.
type Decision struct {
	Artifact types.Artifact `json:"artifact"`
	Kind     Kind           `json:"kind"`
	// FileName is the output name after duplicate prefixing and extension
	// rewriting.
	FileName string `json:"file_name,omitempty"`
	// Target is the slash separated path under the output root. It is empty
	// for overlays and skipped artifacts.
	Target    string `json:"target,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Options configure a Classifier.
type Options struct {
	Scopes ScopeFilter
	// LibDir and TldDir are slash separated and relative to the output root.
	LibDir string
	TldDir string
}

// DefaultOptions places libraries under WEB-INF/lib and tag library
// descriptors under WEB-INF/tld, admitting runtime scopes.
func DefaultOptions() Options {
	return Options{
		Scopes: RuntimeScopeFilter(),
		LibDir: "WEB-INF/lib",
		TldDir: "WEB-INF/tld",
	}
}

// Classifier turns a resolved artifact set into placement decisions.
type Classifier struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// NewClassifier creates a classifier. fs is used to confirm that artifact
// files exist.
func NewClassifier(fs types.FS, opts Options) *Classifier {
	if opts.Scopes.allowed == nil {
		opts.Scopes = RuntimeScopeFilter()
	}
	return &Classifier{
		fs:     fs,
		opts:   opts,
		logger: logging.GetLogger("dependency.classifier"),
	}
}

// Classify returns one decision per artifact, in input order. An eligible
// artifact whose file is missing fails the whole classification.
func (c *Classifier) Classify(artifacts []types.Artifact) ([]Decision, error) {
	duplicates := FindDuplicates(artifacts)
	decisions := make([]Decision, 0, len(artifacts))
	claimed := make(map[string]string)

	for _, a := range artifacts {
		d := Decision{Artifact: a, Kind: KindOf(a.Type)}
		fileName := a.DefaultFileName()

		switch {
		case a.Optional:
			d.Skipped, d.Reason = true, "optional"
		case !c.opts.Scopes.Includes(a.Scope):
			d.Skipped, d.Reason = true, "scope "+string(a.Scope.Normalize())
		case d.Kind == Unsupported:
			d.Skipped, d.Reason = true, "unsupported type "+a.Type
			c.logger.Debug().Str("artifact", a.ID()).Str("type", a.Type).Msg("skipping artifact of unsupported type")
		}
		if d.Skipped {
			decisions = append(decisions, d)
			continue
		}

		if err := c.checkFile(a); err != nil {
			return nil, err
		}

		if duplicates[fileName] {
			d.Duplicate = true
			fileName = a.GroupID + "-" + fileName
		}
		if d.Kind == PackedModule {
			fileName = strings.TrimSuffix(fileName, path.Ext(fileName)) + ".jar"
		}
		d.FileName = fileName

		switch d.Kind {
		case Library, PackedModule:
			d.Target = path.Join(c.opts.LibDir, fileName)
		case TldDescriptor:
			d.Target = path.Join(c.opts.TldDir, fileName)
		}

		if d.Target != "" {
			if owner, taken := claimed[d.Target]; taken {
				d.Skipped = true
				d.Reason = "placement conflict with " + owner
				c.logger.Warn().
					Str("artifact", a.ID()).
					Str("target", d.Target).
					Str("owner", owner).
					Msg("artifact would overwrite another placement, skipping")
			} else {
				claimed[d.Target] = a.ID()
			}
		}

		c.logger.Trace().
			Str("artifact", a.ID()).
			Stringer("kind", d.Kind).
			Str("target", d.Target).
			Bool("duplicate", d.Duplicate).
			Msg("classified")
		decisions = append(decisions, d)
	}
	return decisions, nil
}

func (c *Classifier) checkFile(a types.Artifact) error {
	if a.File == "" {
		return errors.Newf(errors.ErrResolutionGap, "artifact %s has no resolved file", a.ID()).
			WithDetail("artifact", a.ID())
	}
	info, err := c.fs.Stat(a.File)
	if err != nil {
		return errors.Wrapf(err, errors.ErrResolutionGap, "artifact %s file is missing", a.ID()).
			WithDetail("artifact", a.ID()).
			WithDetail("path", a.File)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrResolutionGap, "artifact %s resolves to a directory", a.ID()).
			WithDetail("artifact", a.ID()).
			WithDetail("path", a.File)
	}
	return nil
}

// FindDuplicates returns the default file names shared by more than one
// artifact. Every artifact takes part, whatever its scope.
func FindDuplicates(artifacts []types.Artifact) map[string]bool {
	seen := make(map[string]int, len(artifacts))
	for _, a := range artifacts {
		seen[a.DefaultFileName()]++
	}
	duplicates := make(map[string]bool)
	for name, n := range seen {
		if n > 1 {
			duplicates[name] = true
		}
	}
	return duplicates
}

// Placements returns the decisions copied directly into the output.
func Placements(decisions []Decision) []Decision {
	var out []Decision
	for _, d := range decisions {
		if !d.Skipped && d.Kind.Placed() {
			out = append(out, d)
		}
	}
	return out
}

// Overlays returns the nested archives scheduled for unpack and overlay.
func Overlays(decisions []Decision) []Decision {
	var out []Decision
	for _, d := range decisions {
		if !d.Skipped && d.Kind == NestedOverlay {
			out = append(out, d)
		}
	}
	return out
}
