package types

// ResourceSet is a declared directory of extra web resources.
type ResourceSet struct {
	Directory string `koanf:"directory" json:"directory" yaml:"directory" toml:"directory"`
	// TargetPath is relative to the output root; empty means the root itself.
	TargetPath string   `koanf:"target_path" json:"targetPath,omitempty" yaml:"target_path,omitempty" toml:"target_path,omitempty"`
	Includes   []string `koanf:"includes" json:"includes,omitempty" yaml:"includes,omitempty" toml:"includes,omitempty"`
	Excludes   []string `koanf:"excludes" json:"excludes,omitempty" yaml:"excludes,omitempty" toml:"excludes,omitempty"`
	Filtering  bool     `koanf:"filtering" json:"filtering" yaml:"filtering" toml:"filtering"`
}

// Project describes the module being assembled.
type Project struct {
	GroupID    string            `koanf:"group_id" json:"groupId" yaml:"group_id" toml:"group_id"`
	ArtifactID string            `koanf:"artifact_id" json:"artifactId" yaml:"artifact_id" toml:"artifact_id"`
	Version    string            `koanf:"version" json:"version" yaml:"version" toml:"version"`
	Packaging  string            `koanf:"packaging" json:"packaging" yaml:"packaging" toml:"packaging"`
	FinalName  string            `koanf:"final_name" json:"finalName" yaml:"final_name" toml:"final_name"`
	BaseDir    string            `koanf:"base_dir" json:"baseDir" yaml:"base_dir" toml:"base_dir"`
	BuildDir   string            `koanf:"build_dir" json:"buildDir" yaml:"build_dir" toml:"build_dir"`
	Properties map[string]string `koanf:"properties" json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// ID returns group:artifact:packaging:version.
func (p Project) ID() string {
	return p.GroupID + ":" + p.ArtifactID + ":" + p.Packaging + ":" + p.Version
}

// EffectiveFinalName returns FinalName, or artifactId-version when unset.
// Without a version it is the artifact id alone.
func (p Project) EffectiveFinalName() string {
	switch {
	case p.FinalName != "":
		return p.FinalName
	case p.Version == "":
		return p.ArtifactID
	}
	return p.ArtifactID + "-" + p.Version
}
