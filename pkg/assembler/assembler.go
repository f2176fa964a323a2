package assembler

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/archive"
	"github.com/arthur-debert/warforge/pkg/dependency"
	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/overlay"
	"github.com/arthur-debert/warforge/pkg/resource"
	"github.com/arthur-debert/warforge/pkg/types"
	"github.com/arthur-debert/warforge/pkg/workarea"
)

// Assembler builds exploded web applications through a types.FS.
type Assembler struct {
	fs     types.FS
	codecs *archive.Registry
	logger zerolog.Logger
}

// New creates an assembler using the default archive codecs.
func New(fs types.FS) *Assembler {
	return NewWithCodecs(fs, archive.DefaultRegistry())
}

// NewWithCodecs creates an assembler that unpacks and packs with codecs.
func NewWithCodecs(fs types.FS, codecs *archive.Registry) *Assembler {
	return &Assembler{
		fs:     fs,
		codecs: codecs,
		logger: logging.GetLogger("assembler"),
	}
}

// run holds the state of one assembly.
type run struct {
	*Assembler
	opts    Options
	layout  Layout
	copier  *resource.Copier
	report  *Report
	overlay []dependency.Decision
}

type step struct {
	state State
	fn    func(*run) error
}

var steps = []step{
	{StateInitialize, (*run).initialize},
	{StatePlaceDeclaredResources, (*run).placeDeclaredResources},
	{StatePlacePrimarySource, (*run).placePrimarySource},
	{StatePlaceWebDescriptor, (*run).placeWebDescriptor},
	{StatePlaceContainerConfig, (*run).placeContainerConfig},
	{StatePlaceClasses, (*run).placeClasses},
	{StateClassifyAndPlaceDependencies, (*run).classifyAndPlaceDependencies},
	{StateOverlayNestedWars, (*run).overlayNestedWars},
}

// Run assembles the web application described by opts into opts.OutputDir.
// The report is returned even when a state fails.
func (a *Assembler) Run(opts Options) (*Report, error) {
	if opts.OutputDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output directory is required")
	}

	r := &run{
		Assembler: a,
		opts:      opts,
		layout:    Layout{Root: opts.OutputDir},
		copier:    resource.NewCopier(a.fs),
		report: &Report{
			Project: opts.Project.ID(),
			Output:  opts.OutputDir,
		},
	}

	a.logger.Info().
		Str("project", opts.Project.ArtifactID).
		Str("output", opts.OutputDir).
		Msg("Assembling webapp")
	done := logging.LogOperationStart(a.logger, "assemble")
	defer done()

	for _, s := range steps {
		r.report.State = s.state
		start := time.Now()
		a.logger.Debug().Stringer("state", s.state).Msg("Entering state")

		err := s.fn(r)
		r.report.Steps = append(r.report.Steps, Step{State: s.state, Duration: time.Since(start)})
		r.report.Copy = r.copier.Stats()
		if err != nil {
			a.logger.Error().Err(err).Stringer("state", s.state).Msg("Assembly failed")
			return r.report, withState(err, s.state)
		}
	}

	r.report.State = StateDone
	a.logger.Info().
		Int("copied", r.report.Copy.Copied).
		Int("skipped", r.report.Copy.Skipped).
		Int("filtered", r.report.Copy.Filtered).
		Msg("Webapp assembled")
	return r.report, nil
}

func withState(err error, state State) error {
	var fe *errors.ForgeError
	if stderrors.As(err, &fe) {
		fe.WithDetail("state", state.String())
		return err
	}
	return errors.Wrapf(err, errors.ErrInternal, "assembly failed in %s", state).
		WithDetail("state", state.String())
}

func (r *run) warn(msg string) {
	r.report.Warnings = append(r.report.Warnings, msg)
}

func (r *run) exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}

func (r *run) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func (r *run) initialize() error {
	for _, dir := range []string{r.layout.Root, r.layout.WebInf(), r.layout.MetaInf()} {
		if err := r.fs.MkdirAll(dir, 0755); err != nil {
			return errors.IO(err, dir, "cannot create output directory")
		}
	}
	return nil
}

func (r *run) placeDeclaredResources() error {
	if len(r.opts.Resources) == 0 {
		return nil
	}

	props, err := resource.BuildPropertyMap(r.fs, resource.PropertySources{
		Project: r.opts.Project,
		Filters: r.opts.Filters,
		Environ: r.opts.Environ,
	})
	if err != nil {
		return err
	}
	pipeline := resource.DefaultPipeline(props)
	r.logger.Debug().Int("properties", props.Len()).Msg("Built filter properties")

	for _, rs := range r.opts.Resources {
		if samePath(rs.Directory, r.layout.Root) {
			r.logger.Debug().Str("dir", rs.Directory).Msg("Resource set is the output root, skipping")
			continue
		}
		if !r.isDir(rs.Directory) {
			r.logger.Warn().Str("dir", rs.Directory).Msg("Resource directory does not exist, skipping")
			r.warn("resource directory " + rs.Directory + " does not exist")
			continue
		}

		dest, err := r.resourceTarget(rs)
		if err != nil {
			return err
		}

		var p *resource.Pipeline
		if rs.Filtering {
			p = &pipeline
		}
		r.logger.Info().
			Str("dir", rs.Directory).
			Str("target", dest).
			Bool("filtering", rs.Filtering).
			Msg("Copying webapp resources")
		if err := r.copier.CopyTree(rs.Directory, dest, rs.Includes, rs.Excludes, p); err != nil {
			return err
		}
		r.report.ResourceSets++
	}
	return nil
}

func (r *run) resourceTarget(rs types.ResourceSet) (string, error) {
	if rs.TargetPath == "" {
		return r.layout.Root, nil
	}
	rel := filepath.Clean(filepath.FromSlash(rs.TargetPath))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "resource target path %q leaves the output directory", rs.TargetPath).
			WithDetail("dir", rs.Directory)
	}
	return filepath.Join(r.layout.Root, rel), nil
}

// sourceExcludes adds the descriptors placed by their own states to the
// configured excludes.
func (r *run) sourceExcludes() []string {
	excludes := append([]string{}, r.opts.Excludes...)
	if r.opts.WebXML != "" {
		excludes = append(excludes, "**/"+WebInfDir+"/"+DescriptorName)
	}
	if r.opts.ContainerConfig != "" {
		excludes = append(excludes, "**/"+MetaInfDir+"/"+filepath.Base(r.opts.ContainerConfig))
	}
	return excludes
}

func (r *run) placePrimarySource() error {
	src := r.opts.SourceDir
	if src == "" || samePath(src, r.layout.Root) {
		return nil
	}
	if !r.isDir(src) {
		r.logger.Debug().Str("dir", src).Msg("No webapp source directory")
		return nil
	}

	r.logger.Info().Str("dir", src).Msg("Copying webapp sources")
	return r.copier.CopyTree(src, r.layout.Root, r.opts.Includes, r.sourceExcludes(), nil)
}

func (r *run) placeWebDescriptor() error {
	target := r.layout.Descriptor()

	if r.opts.WebXML != "" {
		if !r.exists(r.opts.WebXML) {
			return errors.Newf(errors.ErrConfiguration, "the specified web.xml file '%s' does not exist", r.opts.WebXML).
				WithDetail("path", r.opts.WebXML)
		}
		r.checkDescriptor(r.opts.WebXML)
		if _, err := r.copier.CopyIfModified(r.opts.WebXML, target); err != nil {
			return err
		}
	}

	if r.exists(target) {
		return nil
	}
	if err := r.fs.WriteFile(target, []byte{}, 0644); err != nil {
		return errors.IO(err, target, "cannot create web descriptor")
	}
	r.report.DescriptorCreated = true
	r.logger.Info().Str("path", target).Msg("Created empty web descriptor")
	return nil
}

func (r *run) placeContainerConfig() error {
	if r.opts.ContainerConfig == "" {
		return nil
	}
	target := filepath.Join(r.layout.MetaInf(), filepath.Base(r.opts.ContainerConfig))
	_, err := r.copier.CopyIfModified(r.opts.ContainerConfig, target)
	return err
}

func (r *run) placeClasses() error {
	classes := r.opts.ClassesDir
	if classes == "" || !r.isDir(classes) || samePath(classes, r.layout.Classes()) {
		return nil
	}

	if r.opts.ArchiveClasses {
		return r.archiveClasses()
	}
	r.logger.Info().Str("dir", classes).Msg("Copying classes")
	return r.copier.CopyTree(classes, r.layout.Classes(), nil, nil, nil)
}

func (r *run) classifyAndPlaceDependencies() error {
	libOpts := dependency.DefaultOptions()
	libOpts.LibDir = RelLibDir
	libOpts.TldDir = RelTldDir
	libOpts.Scopes = r.opts.Scopes

	decisions, err := dependency.NewClassifier(r.fs, libOpts).Classify(r.opts.Artifacts)
	if err != nil {
		return err
	}
	r.report.Decisions = decisions

	for _, d := range decisions {
		if d.Skipped && strings.HasPrefix(d.Reason, "placement conflict") {
			r.warn(d.Artifact.ID() + ": " + d.Reason)
		}
	}

	for _, d := range dependency.Placements(decisions) {
		if _, err := r.copier.CopyIfModified(d.Artifact.File, r.layout.Path(d.Target)); err != nil {
			return err
		}
	}
	r.overlay = dependency.Overlays(decisions)
	return nil
}

func (r *run) overlayNestedWars() error {
	if len(r.overlay) == 0 {
		return nil
	}

	workDir := r.opts.WorkDir
	if workDir == "" {
		workDir = filepath.Join(filepath.Dir(r.layout.Root), "war", "work")
	}
	ov := overlay.New(r.fs, r.codecs, workarea.New(r.fs, workDir), r.copier, overlay.Options{
		Includes:  r.opts.OverlayIncludes,
		Excludes:  r.opts.OverlayExcludes,
		Overwrite: r.opts.UnpackOverwrite,
	})

	var unpacked []overlay.Unpacked
	for _, d := range r.overlay {
		u, ok, err := ov.Unpack(d.Artifact)
		if err != nil {
			return err
		}
		if !ok {
			r.warn(d.Artifact.ID() + ": unknown archive type, not overlaid")
			continue
		}
		unpacked = append(unpacked, u)
	}

	r.logger.Info().Int("count", len(unpacked)).Msg("Overlaying wars")
	for _, u := range unpacked {
		result, err := ov.Apply(u, r.opts.SourceDir, r.layout.Root)
		if err != nil {
			return err
		}
		r.report.Overlays = append(r.report.Overlays, result)
	}
	return nil
}

// newest returns the latest modification time among files under dir.
func (r *run) newest(dir string, files []string) (time.Time, error) {
	var latest time.Time
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		info, err := r.fs.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return latest, errors.IO(err, p, "cannot stat file")
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}
