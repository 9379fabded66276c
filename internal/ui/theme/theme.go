// Package theme holds the colors and lipgloss styles shared by views,
// the footer and the selection widget.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent  = "#7477D8" // Periwinkle - pointers, marks, hint keys
	ColorText    = "15"      // Bright white - current option
	ColorMuted   = "8"       // Gray - other options, help lines
	ColorWarning = "3"       // Yellow - work in progress notices
	ColorDanger  = "1"       // Red - failed builds
)

// Styles contains shared style definitions.
var Styles = struct {
	Title   lipgloss.Style // Accent - product name in the header
	Bold    lipgloss.Style // Prompts, headings
	Version lipgloss.Style // Muted - version in the header

	Pointer lipgloss.Style // Accent - cursor arrow and checked marks
	Dim     lipgloss.Style // Faint - unchecked marks, separators
	Current lipgloss.Style // Bold bright - label under the cursor
	Option  lipgloss.Style // Muted - other labels
	Help    lipgloss.Style // Muted - help line under lists

	HintKey   lipgloss.Style // Bold accent - footer hint key
	HintLabel lipgloss.Style // Faint - footer hint label

	Warning lipgloss.Style
	Danger  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Bold: lipgloss.NewStyle().
		Bold(true),
	Version: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Pointer: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Dim: lipgloss.NewStyle().
		Faint(true),
	Current: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Option: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	HintKey: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	HintLabel: lipgloss.NewStyle().
		Faint(true),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Danger: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
}
