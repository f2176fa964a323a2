// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/warforge/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	v, ok := display.Of(result)
	if !ok {
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	return r.renderView(v)
}

func (r *Renderer) renderView(v *display.View) error {
	w := &errWriter{w: r.output}
	w.printf("%s\n", v.Title)
	for _, f := range v.Facts {
		w.printf("  %-12s %s\n", f.Name+":", f.Value)
	}
	for _, s := range v.Sections {
		w.printf("\n%s:\n", s.Title)
		for _, row := range s.Rows {
			if row.Detail == "" {
				w.printf("  %-9s %s\n", row.Status, row.Label)
				continue
			}
			w.printf("  %-9s %s -> %s\n", row.Status, row.Label, row.Detail)
		}
	}
	if len(v.Warnings) > 0 {
		w.printf("\nWarnings:\n")
		for _, warning := range v.Warnings {
			w.printf("  - %s\n", warning)
		}
	}
	return w.err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
