package ui

import (
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/arthur-debert/warforge/pkg/errors"
)

// Format names an output renderer. It is the value of the output.format
// setting and of the --format flag.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

var formatNames = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// ParseFormat accepts a format name or one of its aliases, in any case.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("allowed", "auto, term, text, json")
}

// Resolve turns FormatAuto into the renderer out can display: rich
// terminal output on a color terminal, plain text anywhere else. NO_COLOR
// and CLICOLOR_FORCE are honored. Explicit formats are returned unchanged.
func (f Format) Resolve(out io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if termenv.NewOutput(out).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
