package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status is the outcome shown for one placed or skipped item.
type Status string

const (
	StatusPlaced    Status = "placed"    // copied into the web application
	StatusDuplicate Status = "duplicate" // placed under a group-qualified name
	StatusOverlay   Status = "overlay"   // nested web archive merged in
	StatusSkipped   Status = "skipped"   // left out on purpose
	StatusWarning   Status = "warning"
	StatusFailed    Status = "failed"
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusPlaced:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusDuplicate:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusOverlay:
		return pterm.NewStyle(pterm.FgMagenta)
	case StatusWarning:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderStatusLine renders "    <status> : <label> : <detail>" with the
// status column padded and colored.
func RenderStatusLine(status Status, label, detail string) string {
	styled := StatusStyle(status).Sprint(fmt.Sprintf("%-9s", status))
	if detail == "" {
		return fmt.Sprintf("    %s : %s", styled, label)
	}
	return fmt.Sprintf("    %s : %s : %s", styled, label, detail)
}
