// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/style"
	"github.com/arthur-debert/warforge/pkg/ui/display"
)

// Renderer provides rich terminal output using lipgloss and pterm styling
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	v, ok := display.Of(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, r.renderView(v))
	return err
}

func (r *Renderer) renderView(v *display.View) string {
	var b strings.Builder

	title := style.SuccessIndicator + " " + v.Title
	if v.Failed {
		title = style.ErrorIndicator + " " + v.Title
	}
	b.WriteString(style.SubtitleStyle.Render(title) + "\n")

	if len(v.Facts) > 0 {
		facts := make([]string, 0, len(v.Facts))
		for _, f := range v.Facts {
			facts = append(facts, style.KeyStyle.Render(f.Name)+style.NormalStyle.Render(f.Value))
		}
		b.WriteString(style.BoxStyle.Render(strings.Join(facts, "\n")) + "\n")
	}

	for _, s := range v.Sections {
		b.WriteString("\n" + pterm.Bold.Sprint(s.Title+":") + "\n")
		for _, row := range s.Rows {
			detail := row.Detail
			if detail != "" && row.Status != style.StatusSkipped {
				detail = style.PathStyle.Render(detail)
			}
			b.WriteString(style.RenderStatusLine(row.Status, row.Label, detail) + "\n")
		}
	}

	if len(v.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range v.Warnings {
			b.WriteString(style.WarningIndicator + " " + style.WarningStyle.Render(w) + "\n")
		}
	}
	return b.String()
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(style.ErrorIndicator + " " + style.ErrorStyle.Render(err.Error()) + "\n")
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		b.WriteString(style.Indent(style.MutedStyle.Render("code: "+string(code)), 1) + "\n")
	}
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(style.Indent(style.MutedStyle.Render(fmt.Sprintf("%s: %v", k, details[k])), 1) + "\n")
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.InfoIndicator+" "+msg)
	return err
}
