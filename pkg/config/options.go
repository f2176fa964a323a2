package config

import (
	"github.com/arthur-debert/warforge/pkg/assembler"
	"github.com/arthur-debert/warforge/pkg/dependency"
	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/packaging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// AssemblerOptions maps a resolved configuration onto one assembly run.
// environ feeds env.* filter properties.
func (c *Config) AssemblerOptions(environ []string) (assembler.Options, error) {
	scopes, err := dependency.ParseScopeFilter(c.Dependencies.Scopes)
	if err != nil {
		return assembler.Options{}, errors.Wrap(err, errors.ErrConfiguration, "invalid dependencies.scopes")
	}

	resources := make([]types.ResourceSet, len(c.Resources))
	copy(resources, c.Resources)
	artifacts := make([]types.Artifact, len(c.Dependencies.Artifacts))
	copy(artifacts, c.Dependencies.Artifacts)

	return assembler.Options{
		Project:         c.Project,
		Artifacts:       artifacts,
		Resources:       resources,
		Filters:         c.Filters,
		Environ:         environ,
		ClassesDir:      c.War.ClassesDir,
		SourceDir:       c.War.SourceDir,
		OutputDir:       c.War.OutputDir,
		WorkDir:         c.War.WorkDir,
		WebXML:          c.War.WebXML,
		ContainerConfig: c.War.ContainerConfig,
		ArchiveClasses:  c.War.ArchiveClasses,
		Includes:        c.War.Includes,
		Excludes:        c.War.Excludes,
		OverlayIncludes: c.Overlay.Includes,
		OverlayExcludes: c.Overlay.Excludes,
		UnpackOverwrite: c.Overlay.Overwrite,
		Scopes:          scopes,
	}, nil
}

// WarFile is where the packaged web application is written.
func (c *Config) WarFile() string {
	return packaging.WarFile(c.War.PackageDir, c.Project.FinalName)
}

// ConfigurationFile is where the configuration bundle is written.
func (c *Config) ConfigurationFile() string {
	return packaging.ConfigurationFile(c.Configuration.OutputDir, c.Project.FinalName, c.Configuration.Classifier)
}

// CopyJSOptions maps the copyjs section. Both directories are required.
func (c *Config) CopyJSOptions() (packaging.CopyJSOptions, error) {
	if c.CopyJS.SourceDir == "" || c.CopyJS.TargetDir == "" {
		return packaging.CopyJSOptions{}, errors.New(errors.ErrConfiguration, "copyjs requires both source_dir and target_dir")
	}
	policy, err := packaging.ParseErrorPolicy(c.CopyJS.OnError)
	if err != nil {
		return packaging.CopyJSOptions{}, err
	}
	return packaging.CopyJSOptions{
		SourceDir: c.CopyJS.SourceDir,
		TargetDir: c.CopyJS.TargetDir,
		Query:     c.CopyJS.Query,
		OnError:   policy,
	}, nil
}
