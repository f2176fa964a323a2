package config

import (
	"github.com/arthur-debert/warforge/pkg/types"
)

// Config is the complete warforge configuration.
type Config struct {
	Project       types.Project       `koanf:"project" toml:"project" yaml:"project"`
	War           WarConfig           `koanf:"war" toml:"war" yaml:"war"`
	Overlay       OverlayConfig       `koanf:"overlay" toml:"overlay" yaml:"overlay"`
	Resources     []types.ResourceSet `koanf:"resources" toml:"resources,omitempty" yaml:"resources,omitempty"`
	Filters       []string            `koanf:"filters" toml:"filters,omitempty" yaml:"filters,omitempty"`
	Dependencies  DependencyConfig    `koanf:"dependencies" toml:"dependencies" yaml:"dependencies"`
	Configuration ConfigurationConfig `koanf:"configuration" toml:"configuration" yaml:"configuration"`
	CopyJS        CopyJSConfig        `koanf:"copyjs" toml:"copyjs" yaml:"copyjs"`
	Output        OutputConfig        `koanf:"output" toml:"output" yaml:"output"`

	// Sources lists the files that contributed, lowest layer first.
	Sources []string `koanf:"-" toml:"-" yaml:"-"`
}

// WarConfig drives web application assembly and packaging.
type WarConfig struct {
	SourceDir       string   `koanf:"source_dir" toml:"source_dir" yaml:"source_dir"`
	ClassesDir      string   `koanf:"classes_dir" toml:"classes_dir" yaml:"classes_dir"`
	OutputDir       string   `koanf:"output_dir" toml:"output_dir" yaml:"output_dir"`
	WorkDir         string   `koanf:"work_dir" toml:"work_dir" yaml:"work_dir"`
	PackageDir      string   `koanf:"package_dir" toml:"package_dir" yaml:"package_dir"`
	WebXML          string   `koanf:"web_xml" toml:"web_xml" yaml:"web_xml"`
	ContainerConfig string   `koanf:"container_config" toml:"container_config" yaml:"container_config"`
	ArchiveClasses  bool     `koanf:"archive_classes" toml:"archive_classes" yaml:"archive_classes"`
	Includes        []string `koanf:"includes" toml:"includes" yaml:"includes"`
	Excludes        []string `koanf:"excludes" toml:"excludes" yaml:"excludes"`
}

// OverlayConfig selects what nested web archives contribute.
type OverlayConfig struct {
	Includes  []string `koanf:"includes" toml:"includes" yaml:"includes"`
	Excludes  []string `koanf:"excludes" toml:"excludes" yaml:"excludes"`
	Overwrite bool     `koanf:"overwrite" toml:"overwrite" yaml:"overwrite"`
}

// DependencyConfig lists the artifacts to place.
type DependencyConfig struct {
	// Pom, when set, contributes its direct dependencies and fills in
	// project coordinates left unset.
	Pom        string           `koanf:"pom" toml:"pom" yaml:"pom"`
	Repository string           `koanf:"repository" toml:"repository" yaml:"repository"`
	Scopes     []string         `koanf:"scopes" toml:"scopes" yaml:"scopes"`
	Artifacts  []types.Artifact `koanf:"artifacts" toml:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// ConfigurationConfig drives the configuration bundle.
type ConfigurationConfig struct {
	Directory  string `koanf:"directory" toml:"directory" yaml:"directory"`
	OutputDir  string `koanf:"output_dir" toml:"output_dir" yaml:"output_dir"`
	Classifier string `koanf:"classifier" toml:"classifier" yaml:"classifier"`
}

// CopyJSConfig drives the JavaScript copy.
type CopyJSConfig struct {
	SourceDir string `koanf:"source_dir" toml:"source_dir" yaml:"source_dir"`
	TargetDir string `koanf:"target_dir" toml:"target_dir" yaml:"target_dir"`
	Query     string `koanf:"query" toml:"query" yaml:"query"`
	OnError   string `koanf:"on_error" toml:"on_error" yaml:"on_error"`
}

// OutputConfig selects how command results are printed.
type OutputConfig struct {
	// Format is auto, term, text or json. Auto picks rich output only on a
	// color terminal.
	Format string `koanf:"format" toml:"format" yaml:"format"`
}
