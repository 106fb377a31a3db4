// Package style holds the colors and icons shared by the logger and the report writers.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#C71A36")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Module  = "■"
)

// Title returns the section heading style for terminal reports drawn by r.
func Title(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Accent)
}

// Faint returns the style for secondary report text drawn by r.
func Faint(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Muted)
}
