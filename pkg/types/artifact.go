package types

import (
	"fmt"
	"strings"
)

// Scope is the dependency scope an artifact was resolved in.
type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeProvided Scope = "provided"
	ScopeSystem   Scope = "system"
	ScopeTest     Scope = "test"
)

// Normalize returns the scope in lower case, treating an empty scope as compile.
func (s Scope) Normalize() Scope {
	if s == "" {
		return ScopeCompile
	}
	return Scope(strings.ToLower(string(s)))
}

// Known reports whether s is one of the five dependency scopes.
func (s Scope) Known() bool {
	switch s.Normalize() {
	case ScopeCompile, ScopeRuntime, ScopeProvided, ScopeSystem, ScopeTest:
		return true
	}
	return false
}

// typeExtensions maps an artifact type to the file extension its handler
// produces. Types missing from the table use the type itself as extension.
var typeExtensions = map[string]string{
	"jar":          "jar",
	"war":          "war",
	"ear":          "ear",
	"rar":          "rar",
	"par":          "par",
	"tld":          "tld",
	"pom":          "pom",
	"ejb":          "jar",
	"ejb-client":   "jar",
	"test-jar":     "jar",
	"maven-plugin": "jar",
	"java-source":  "jar",
	"javadoc":      "jar",
}

// ExtensionForType returns the packaged file extension for an artifact type.
func ExtensionForType(artifactType string) string {
	if ext, ok := typeExtensions[artifactType]; ok {
		return ext
	}
	return artifactType
}

// Artifact identifies a resolved dependency and the file it resolved to.
type Artifact struct {
	GroupID    string `koanf:"group_id" json:"groupId" yaml:"group_id" toml:"group_id"`
	ArtifactID string `koanf:"artifact_id" json:"artifactId" yaml:"artifact_id" toml:"artifact_id"`
	Version    string `koanf:"version" json:"version" yaml:"version" toml:"version"`
	Classifier string `koanf:"classifier" json:"classifier,omitempty" yaml:"classifier,omitempty" toml:"classifier,omitempty"`
	Type       string `koanf:"type" json:"type" yaml:"type" toml:"type"`
	// Extension overrides the extension derived from Type.
	Extension string `koanf:"extension" json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty"`
	Scope     Scope  `koanf:"scope" json:"scope" yaml:"scope" toml:"scope"`
	Optional  bool   `koanf:"optional" json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	File      string `koanf:"file" json:"file" yaml:"file" toml:"file"`
}

// ID returns the group:artifact:type[:classifier]:version coordinate.
func (a Artifact) ID() string {
	if strings.TrimSpace(a.Classifier) != "" {
		return fmt.Sprintf("%s:%s:%s:%s:%s", a.GroupID, a.ArtifactID, a.Type, a.Classifier, a.Version)
	}
	return fmt.Sprintf("%s:%s:%s:%s", a.GroupID, a.ArtifactID, a.Type, a.Version)
}

// FileExtension returns the extension of the packaged file, without the dot.
func (a Artifact) FileExtension() string {
	if a.Extension != "" {
		return a.Extension
	}
	if a.Type == "" {
		return "jar"
	}
	return ExtensionForType(a.Type)
}

// DefaultFileName converts the artifact to the artifactId-version[-classifier].ext
// form used for files placed into the web application.
func (a Artifact) DefaultFileName() string {
	name := a.ArtifactID + "-" + a.Version
	if c := strings.TrimSpace(a.Classifier); c != "" {
		name += "-" + c
	}
	return name + "." + a.FileExtension()
}
