// Package style holds the colors, lipgloss styles and pterm status styles
// used by the terminal renderer.
package style
