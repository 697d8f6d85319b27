package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean text unchanged", "Apple", "Apple"},
		{"strips newline", "Ap\nple", "Apple"},
		{"keeps tab", "a\tb", "a\tb"},
		{"strips escape", "a\x1b[31mb", "a[31mb"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"drops invalid byte", "a\xffb", "ab"},
		{"keeps wide runes", "日本", "日本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello w…"},
		{"very short max width", "hello", 3, "he…"},
		{"zero width", "hello", 0, ""},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestFit_Styled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("Strawberry")

	got := Fit(styled, 6)
	if w := ansi.StringWidth(got); w > 6 {
		t.Errorf("Fit() width = %d, want <= 6", w)
	}
	if plain := ansi.Strip(got); !strings.HasPrefix(plain, "Straw") {
		t.Errorf("Fit() = %q, want prefix Straw", plain)
	}

	if got := Fit(styled, 20); got != styled {
		t.Errorf("Fit() should leave short text unchanged")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 2, "abcd"},
		{"日", 4, "日  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Pad(tt.input, tt.width); got != tt.want {
				t.Errorf("Pad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, width := range []int{1, 5, 12} {
		got := TruncateAndPad("Blueberry pie", width)
		if w := lipgloss.Width(got); w != width {
			t.Errorf("TruncateAndPad(_, %d) width = %d", width, w)
		}
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		width int
	}{
		{"basic row", "left", "right", 20},
		{"tight fit", "left", "right", 10},
		{"left is cut", "a rather long label", "12", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Row(tt.left, tt.right, tt.width)
			if w := lipgloss.Width(got); w != tt.width {
				t.Errorf("Row(%q, %q, %d) width = %d", tt.left, tt.right, tt.width, w)
			}
			if !strings.HasSuffix(got, tt.right) {
				t.Errorf("Row(%q, %q, %d) should end with %q", tt.left, tt.right, tt.width, tt.right)
			}
		})
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(4); got != "────" {
		t.Errorf("Separator(4) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
}
