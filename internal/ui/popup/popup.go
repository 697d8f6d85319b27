// Package popup renders the bordered picker box and places it over a host
// view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/picker/internal/ui/styles"
)

// Box is a bordered frame with fixed outer dimensions.
type Box struct {
	Width  int // outer width including border
	Height int // outer height including border; 0 = fit content
	Focus  bool
}

// Render wraps content in a rounded border, padded one column on each side.
// Lines wider than the box are cut.
func (b Box) Render(content string) string {
	border := styles.T().Border
	if b.Focus {
		border = styles.T().BorderFocus
	}
	inner := max(b.Width-4, 1)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > inner {
			lines[i] = ansi.Truncate(line, inner, "")
		}
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(inner + 2)
	if b.Height > 2 {
		style = style.Height(b.Height - 2).MaxHeight(b.Height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		w := lipgloss.Width(line)
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}

// Center centers pre-rendered content in the terminal.
// Useful when you have custom-styled content that just needs centering.
func Center(content string, termWidth, termHeight int) string {
	return centerBox(content, termWidth, termHeight)
}

func centerBox(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxHeight := len(lines)
	boxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}

	padTop := (termHeight - boxHeight) / 2
	padLeft := (termWidth - boxWidth) / 2

	if padTop < 0 {
		padTop = 0
	}
	if padLeft < 0 {
		padLeft = 0
	}

	var result strings.Builder
	for range padTop {
		result.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}

// SizeConfig defines how a popup should be sized.
type SizeConfig struct {
	WidthPct  int // Percentage of screen width (0 = auto-fit)
	HeightPct int // Percentage of screen height (0 = auto-fit)
	MinWidth  int // Minimum width in columns (0 = no limit)
	MaxWidth  int // Maximum width in columns (0 = no limit)
}

// Dimensions returns the outer popup size for a screen. Percentages win
// over content fitting; the result always fits on screen.
func (s SizeConfig) Dimensions(content string, screenW, screenH int) (width, height int) {
	if s.WidthPct > 0 {
		width = screenW * s.WidthPct / 100
	} else {
		width = maxLineWidth(content) + 4 // padding + border
	}
	if s.HeightPct > 0 {
		height = screenH * s.HeightPct / 100
	} else {
		height = strings.Count(content, "\n") + 3 // border
	}
	if s.MinWidth > 0 {
		width = max(width, s.MinWidth)
	}
	if s.MaxWidth > 0 {
		width = min(width, s.MaxWidth)
	}
	return min(width, screenW), min(height, screenH)
}

// Compose overlays popupView on top of base, line by line. Leading and
// trailing blanks of each overlay line let the base show through. ANSI
// sequences and wide characters on either side are preserved.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(popupView, "\n") {
		if i >= len(baseLines) {
			break
		}
		baseLines[i] = overlayLine(baseLines[i], line, width)
	}
	return strings.Join(baseLines, "\n")
}

func overlayLine(baseLine, overlay string, width int) string {
	plain := ansi.Strip(overlay)
	if strings.TrimSpace(plain) == "" {
		return baseLine
	}

	startCol := len(plain) - len(strings.TrimLeft(plain, " "))
	endCol := ansi.StringWidth(strings.TrimRight(plain, " "))
	content := ansi.Cut(overlay, startCol, endCol)

	if w := ansi.StringWidth(baseLine); w < width {
		baseLine += strings.Repeat(" ", width-w)
	}

	// A wide rune cut at startCol is dropped by ansi.Cut; pad its column.
	prefix := ansi.Cut(baseLine, 0, startCol)
	if w := ansi.StringWidth(prefix); w < startCol {
		prefix += strings.Repeat(" ", startCol-w)
	}

	result := prefix + content
	if endCol >= width {
		return result
	}
	suffix := ansi.Cut(baseLine, endCol, width)
	want := width - endCol
	switch w := ansi.StringWidth(suffix); {
	case w > want:
		suffix = " " + ansi.Cut(suffix, w-want+1, w)
	case w < want:
		suffix += strings.Repeat(" ", want-w)
	}
	return result + suffix
}
