package config

import (
	"path/filepath"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/pom"
	"github.com/arthur-debert/warforge/pkg/types"
)

// PomFileName is picked up from the base directory when dependencies.pom
// is not set.
const PomFileName = "pom.xml"

const (
	defaultBuildDir  = "target"
	defaultPackaging = "war"
)

// resolve fills in derived values and makes every path absolute.
func (c *Config) resolve(fs types.FS, searchDir string) error {
	base := ExpandPath(c.Project.BaseDir)
	if base == "" {
		base = searchDir
	} else if !filepath.IsAbs(base) {
		base = filepath.Join(searchDir, base)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfiguration, "cannot resolve base directory %s", base).
			WithDetail("path", base)
	}
	c.Project.BaseDir = abs

	if err := c.mergePom(fs); err != nil {
		return err
	}

	p := &c.Project
	if p.Packaging == "" {
		p.Packaging = defaultPackaging
	}
	if p.BuildDir == "" {
		p.BuildDir = defaultBuildDir
	}
	p.BuildDir = c.Path(p.BuildDir)
	if p.ArtifactID == "" {
		p.ArtifactID = filepath.Base(abs)
	}
	p.FinalName = p.EffectiveFinalName()

	build := func(elem ...string) string {
		return filepath.Join(append([]string{p.BuildDir}, elem...)...)
	}

	w := &c.War
	w.SourceDir = c.pathOr(w.SourceDir, filepath.Join(abs, "src", "main", "webapp"))
	w.ClassesDir = c.pathOr(w.ClassesDir, build("classes"))
	w.OutputDir = c.pathOr(w.OutputDir, build(p.FinalName))
	w.WorkDir = c.pathOr(w.WorkDir, build("war", "work"))
	w.PackageDir = c.pathOr(w.PackageDir, p.BuildDir)
	w.WebXML = c.pathOr(w.WebXML, "")
	w.ContainerConfig = c.pathOr(w.ContainerConfig, "")

	for i := range c.Resources {
		c.Resources[i].Directory = c.Path(c.Resources[i].Directory)
	}
	for i := range c.Filters {
		c.Filters[i] = c.Path(c.Filters[i])
	}

	cf := &c.Configuration
	cf.Directory = c.pathOr(cf.Directory, build("configuration"))
	cf.OutputDir = c.pathOr(cf.OutputDir, p.BuildDir)

	c.CopyJS.SourceDir = c.pathOr(c.CopyJS.SourceDir, "")
	c.CopyJS.TargetDir = c.pathOr(c.CopyJS.TargetDir, "")
	return nil
}

// mergePom fills unset project fields from the pom and appends its direct
// dependencies, located in the local repository.
func (c *Config) mergePom(fs types.FS) error {
	d := &c.Dependencies
	pomPath := d.Pom
	if pomPath == "" {
		candidate := filepath.Join(c.Project.BaseDir, PomFileName)
		if info, err := fs.Stat(candidate); err != nil || info.IsDir() {
			d.Artifacts = c.locate(d.Artifacts)
			return nil
		}
		pomPath = candidate
	}
	pomPath = c.Path(pomPath)
	d.Pom = pomPath

	model, err := pom.Load(fs, pomPath)
	if err != nil {
		return err
	}
	fromPom := model.Project()
	p := &c.Project
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.GroupID, fromPom.GroupID)
	fill(&p.ArtifactID, fromPom.ArtifactID)
	fill(&p.Version, fromPom.Version)
	fill(&p.Packaging, fromPom.Packaging)
	fill(&p.FinalName, fromPom.FinalName)
	fill(&p.BuildDir, fromPom.BuildDir)

	if len(fromPom.Properties) > 0 {
		merged := make(map[string]string, len(fromPom.Properties)+len(p.Properties))
		for k, v := range fromPom.Properties {
			merged[k] = v
		}
		for k, v := range p.Properties {
			merged[k] = v
		}
		p.Properties = merged
	}

	deps := model.Dependencies()
	logger := logging.GetLogger("config")
	logger.Debug().
		Str("pom", pomPath).
		Int("dependencies", len(deps)).
		Msg("Merged pom")
	d.Artifacts = c.locate(append(deps, d.Artifacts...))
	return nil
}

// locate fills in missing artifact files from the local repository and
// resolves relative ones against the base directory.
func (c *Config) locate(artifacts []types.Artifact) []types.Artifact {
	if len(artifacts) == 0 {
		return artifacts
	}
	root := c.Dependencies.Repository
	if root == "" {
		root = pom.DefaultRepositoryRoot()
	} else {
		root = c.Path(root)
	}
	c.Dependencies.Repository = root
	for i := range artifacts {
		if artifacts[i].File != "" {
			artifacts[i].File = c.Path(artifacts[i].File)
		}
	}
	return pom.NewRepository(root).Locate(artifacts)
}

// Path expands p and resolves it against the project base directory.
func (c *Config) Path(p string) string {
	p = ExpandPath(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Project.BaseDir, p)
}

func (c *Config) pathOr(p, fallback string) string {
	if p == "" {
		return fallback
	}
	return c.Path(p)
}
