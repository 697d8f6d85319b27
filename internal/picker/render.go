package picker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/ui/render"
	"github.com/llehouerou/picker/internal/ui/styles"
)

// RowState describes how an option row should look.
type RowState struct {
	Selected bool // option selected, or every child of a menu selected
	Partial  bool // some children of a menu selected
	Cursor   bool
	Disabled bool
	Multiple bool
	Width    int
}

// Renderers are the presentation hooks of a picker. Nil fields use the
// built-in rendering. Renderers hold no state; a row may render over
// several lines.
type Renderers[T any] struct {
	Item  func(o option.Option[T], label string, st RowState) string
	Group func(key string, width int) string
	// Menu renders the breadcrumb shown inside a submenu; path holds the
	// labels of the entered menus.
	Menu func(path []string, width int) string
}

func (r Renderers[T]) withDefaults() Renderers[T] {
	if r.Item == nil {
		r.Item = defaultItem[T]
	}
	if r.Group == nil {
		r.Group = defaultGroup
	}
	if r.Menu == nil {
		r.Menu = defaultMenu
	}
	return r
}

// UngroupedLabel is shown for the header of options with an empty group key.
const UngroupedLabel = "Other"

func checkMark(st RowState) string {
	switch {
	case st.Multiple && st.Selected:
		return "[x] "
	case st.Multiple && st.Partial:
		return "[-] "
	case st.Multiple:
		return "[ ] "
	case st.Selected:
		return "● "
	default:
		return "  "
	}
}

func defaultItem[T any](o option.Option[T], label string, st RowState) string {
	s := styles.T().S()

	right := ""
	if o.IsMenu() {
		right = humanize.Comma(int64(len(o.SubMenu))) + " ›"
	}
	mark := checkMark(st)
	avail := st.Width - lipgloss.Width(mark) - lipgloss.Width(right) - 1
	line := render.Row(mark+render.Truncate(label, avail), right, st.Width)

	style := s.Base
	switch {
	case st.Disabled:
		style = s.Disabled
	case st.Selected:
		style = s.Selected
	case st.Partial:
		style = s.Partial
	}
	if st.Cursor {
		style = style.Background(styles.T().BgCursor)
	}
	return style.Render(line)
}

func defaultGroup(key string, width int) string {
	if key == "" {
		key = UngroupedLabel
	}
	return styles.T().S().Header.Render(render.Truncate(key, width))
}

func defaultMenu(path []string, width int) string {
	text := "‹ " + strings.Join(path, " › ")
	return styles.T().Title(render.Truncate(text, width))
}
