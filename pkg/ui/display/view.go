// Package display turns command results into a neutral view that the text
// and terminal renderers lay out.
package display

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/warforge/pkg/assembler"
	"github.com/arthur-debert/warforge/pkg/dependency"
	"github.com/arthur-debert/warforge/pkg/packaging"
	"github.com/arthur-debert/warforge/pkg/style"
)

// Fact is one labelled value in a view header.
type Fact struct {
	Name  string
	Value string
}

// Row is one item line.
type Row struct {
	Status style.Status
	Label  string
	Detail string
}

// Section groups rows under a heading.
type Section struct {
	Title string
	Rows  []Row
}

// View is what the renderers draw.
type View struct {
	Title    string
	Failed   bool
	Facts    []Fact
	Sections []Section
	Warnings []string
}

// Packaged is the result of a packaging command.
type Packaged struct {
	Kind   string
	File   string
	Report *assembler.Report
}

// FromReport builds the view of an assembly run.
func FromReport(r *assembler.Report) *View {
	v := &View{
		Title:    "Assembled " + r.Project,
		Failed:   !r.Succeeded(),
		Warnings: r.Warnings,
	}
	if v.Failed {
		v.Title = fmt.Sprintf("Assembly of %s failed in %s", r.Project, r.State)
	}
	v.Facts = []Fact{
		{"output", r.Output},
		{"copied", strconv.Itoa(r.Copy.Copied)},
		{"filtered", strconv.Itoa(r.Copy.Filtered)},
		{"up to date", strconv.Itoa(r.Copy.Skipped + r.Copy.Unchanged)},
		{"resources", strconv.Itoa(r.ResourceSets)},
	}
	if r.DescriptorCreated {
		v.Facts = append(v.Facts, Fact{"descriptor", "created empty web.xml"})
	}
	if r.ClassesArchive != "" {
		state := "up to date"
		if r.ClassesArchived {
			state = "rebuilt"
		}
		v.Facts = append(v.Facts, Fact{"classes jar", r.ClassesArchive + " (" + state + ")"})
	}

	if len(r.Decisions) > 0 {
		deps := Section{Title: "Dependencies"}
		for _, d := range r.Decisions {
			deps.Rows = append(deps.Rows, decisionRow(d))
		}
		v.Sections = append(v.Sections, deps)
	}
	if len(r.Overlays) > 0 {
		overlays := Section{Title: "Overlays"}
		for _, o := range r.Overlays {
			overlays.Rows = append(overlays.Rows, Row{
				Status: style.StatusOverlay,
				Label:  o.Artifact,
				Detail: fmt.Sprintf("%d copied, %d current, %d shadowed", o.Copied, o.Current, o.Shadowed),
			})
		}
		v.Sections = append(v.Sections, overlays)
	}
	return v
}

func decisionRow(d dependency.Decision) Row {
	row := Row{Label: d.Artifact.ID()}
	switch {
	case d.Skipped:
		row.Status = style.StatusSkipped
		row.Detail = d.Reason
	case d.Kind == dependency.NestedOverlay:
		row.Status = style.StatusOverlay
		row.Detail = "nested web archive"
	case d.Duplicate:
		row.Status = style.StatusDuplicate
		row.Detail = d.Target
	default:
		row.Status = style.StatusPlaced
		row.Detail = d.Target
	}
	return row
}

// FromCopyJS builds the view of a JavaScript copy.
func FromCopyJS(r *packaging.CopyJSResult) *View {
	return &View{
		Title: "Copied JavaScript",
		Facts: []Fact{
			{"files", strconv.Itoa(r.Files)},
			{"directories", strconv.Itoa(r.Dirs)},
			{"rewritten", strconv.Itoa(r.Rewritten)},
		},
		Warnings: r.Warnings,
	}
}

// FromPackaged builds the view of a packaging command, including the
// assembly that preceded it.
func FromPackaged(p *Packaged) *View {
	v := &View{}
	if p.Report != nil {
		v = FromReport(p.Report)
	}
	v.Title = "Packaged " + p.Kind
	v.Facts = append([]Fact{{"archive", p.File}}, v.Facts...)
	return v
}

// Of converts a known result to a view. ok is false for anything else.
func Of(result interface{}) (v *View, ok bool) {
	switch r := result.(type) {
	case *View:
		return r, true
	case *assembler.Report:
		return FromReport(r), true
	case *packaging.CopyJSResult:
		return FromCopyJS(r), true
	case *Packaged:
		return FromPackaged(r), true
	}
	return nil, false
}
