package assembler

import (
	"time"

	"github.com/arthur-debert/warforge/pkg/dependency"
	"github.com/arthur-debert/warforge/pkg/overlay"
	"github.com/arthur-debert/warforge/pkg/resource"
)

// Step records how long a state took.
type Step struct {
	State    State         `json:"state"`
	Duration time.Duration `json:"duration"`
}

// Report summarizes an assembly run. On failure State is the state that
// failed.
type Report struct {
	Project           string                `json:"project"`
	Output            string                `json:"output"`
	State             State                 `json:"state"`
	Steps             []Step                `json:"steps"`
	ResourceSets      int                   `json:"resource_sets"`
	DescriptorCreated bool                  `json:"descriptor_created"`
	ClassesArchive    string                `json:"classes_archive,omitempty"`
	ClassesArchived   bool                  `json:"classes_archived,omitempty"`
	Decisions         []dependency.Decision `json:"decisions"`
	Overlays          []overlay.Result      `json:"overlays"`
	Copy              resource.Stats        `json:"copy"`
	Warnings          []string              `json:"warnings,omitempty"`
}

// Succeeded reports whether the run reached the end.
func (r *Report) Succeeded() bool {
	return r.State == StateDone
}

// Placed returns the dependency decisions that put a file in the output.
func (r *Report) Placed() []dependency.Decision {
	return dependency.Placements(r.Decisions)
}

// Skipped returns the dependency decisions that placed nothing.
func (r *Report) Skipped() []dependency.Decision {
	var out []dependency.Decision
	for _, d := range r.Decisions {
		if d.Skipped {
			out = append(out, d)
		}
	}
	return out
}

// BytesWritten reports whether the run wrote any file content.
func (r *Report) BytesWritten() bool {
	return r.Copy.Copied > 0 || r.Copy.Filtered > 0 || r.DescriptorCreated || r.ClassesArchived
}
