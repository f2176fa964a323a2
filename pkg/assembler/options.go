package assembler

import (
	"github.com/arthur-debert/warforge/pkg/dependency"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Options describe one assembly run. Paths are used as given; callers
// resolve relative paths beforehand.
type Options struct {
	Project   types.Project
	Artifacts []types.Artifact
	Resources []types.ResourceSet

	// Filters are property files layered into the filter property map.
	Filters []string
	// Environ feeds env.* filter properties, in KEY=VALUE form.
	Environ []string

	ClassesDir string
	SourceDir  string
	OutputDir  string
	WorkDir    string

	// WebXML, when set, must exist and becomes WEB-INF/web.xml.
	WebXML string
	// ContainerConfig, when set, is copied into META-INF under its own name.
	ContainerConfig string

	ArchiveClasses bool

	// Includes and Excludes select the primary source tree and the classes
	// packed into the classes jar.
	Includes []string
	Excludes []string

	OverlayIncludes []string
	OverlayExcludes []string
	// UnpackOverwrite replaces cached files that look up to date when a
	// nested archive is unpacked again.
	UnpackOverwrite bool

	// Scopes admits dependencies; the zero value means the runtime filter.
	Scopes dependency.ScopeFilter
}
