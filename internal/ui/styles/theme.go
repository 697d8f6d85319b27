// Package styles holds the picker colour palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the picker.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - selected options, check marks
	Secondary lipgloss.Color // Gold/orange - group headers

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Option labels
	FgMuted  lipgloss.Color // Hints, counts
	FgSubtle lipgloss.Color // Disabled options, separators

	// Backgrounds
	BgCursor lipgloss.Color // Highlighted row

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Gradient for the popup title / breadcrumb
	GradientFrom lipgloss.Color
	GradientTo   lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for picker rows.
type Styles struct {
	Base     lipgloss.Style // Default text
	Muted    lipgloss.Style // Dimmed text
	Subtle   lipgloss.Style // Very dim text
	Title    lipgloss.Style // Bold, bright
	Selected lipgloss.Style // Selected option label
	Partial  lipgloss.Style // Menu with some children selected
	Cursor   lipgloss.Style // Cursor background highlight
	Header   lipgloss.Style // Group header row
	Disabled lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	GradientFrom: lipgloss.Color("#a78bfa"),
	GradientTo:   lipgloss.Color("#f1a208"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Partial: lipgloss.NewStyle().Foreground(t.Primary),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Header: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(t.FgSubtle).
			Strikethrough(true),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
