package picker

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/picker/internal/keymap"
	"github.com/llehouerou/picker/internal/ui"
	"github.com/llehouerou/picker/internal/ui/popup"
	"github.com/llehouerou/picker/internal/ui/render"
	"github.com/llehouerou/picker/internal/ui/styles"
	"github.com/llehouerou/picker/internal/virtual"
)

// maxMeasurePasses bounds how often one layout re-renders after a row
// turned out taller or shorter than its estimate.
const maxMeasurePasses = 3

// View renders the popup, or nothing while closed.
func (m *Model[T]) View() string {
	if !m.open {
		return ""
	}
	width := m.ContentWidth()

	var parts []string
	if m.cfg.Title != "" {
		parts = append(parts, styles.T().Title(render.Truncate(m.cfg.Title, width)))
	}
	parts = append(parts, m.searchLine(width), render.Separator(width))
	if !m.nav.AtRoot() {
		parts = append(parts, m.menuLine(width))
	}

	lines := m.lines
	if len(lines) == 0 {
		lines = []string{styles.T().S().Muted.Render(m.emptyText())}
	}
	for i := range m.listHeight() {
		if i < len(lines) {
			parts = append(parts, lines[i])
		} else {
			parts = append(parts, "")
		}
	}

	parts = append(parts, render.Separator(width), m.footer(width))
	box := popup.Box{Width: m.Width(), Height: m.Height(), Focus: true}
	return box.Render(strings.Join(parts, "\n"))
}

func (m *Model[T]) searchLine(width int) string {
	right := ""
	if m.search.Loading() {
		right = m.spinner.View()
	}
	return render.Row(m.input.View(), right, width)
}

func (m *Model[T]) menuLine(width int) string {
	menus := m.nav.Path()
	path := make([]string, len(menus))
	for i, o := range menus {
		path[i] = render.Sanitize(m.cfg.Label(o.Value))
	}
	return m.cfg.Renderers.Menu(path, width)
}

func (m *Model[T]) emptyText() string {
	if m.search.Loading() {
		return "Searching…"
	}
	return "No options"
}

func (m *Model[T]) footer(width int) string {
	s := styles.T().S()

	var left string
	if m.status != "" {
		left = s.Error.Render(m.status)
	} else {
		count := len(m.seq.Options())
		left = humanize.Comma(int64(count)) + " " + plural(count, "option", "options")
		if m.multi != nil {
			left += " · " + humanize.Comma(int64(m.multi.Len())) + " selected"
		}
		left = s.Muted.Render(left)
	}

	var hints []string
	if m.multi != nil {
		scope := m.nav.Scope()
		hints = append(hints,
			hintStyle(m.multi.IsAllSelected(scope)).Render(m.cfg.Keys.Hint(keymap.ActionSelectAll, "all")),
			hintStyle(m.multi.IsNoneSelected(scope)).Render(m.cfg.Keys.Hint(keymap.ActionClearAll, "clear")),
		)
	}
	if !m.nav.AtRoot() {
		hints = append(hints, s.Muted.Render(m.cfg.Keys.Hint(keymap.ActionGoBack, "back")))
	}
	return render.Row(left, strings.Join(hints, "  "), width)
}

// hintStyle greys out a hint whose action would do nothing.
func hintStyle(inert bool) lipgloss.Style {
	if inert {
		return styles.T().S().Subtle
	}
	return styles.T().S().Muted
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// listHeight is the number of lines available to rows.
func (m *Model[T]) listHeight() int {
	return m.ListHeight(ui.PopupOverhead + m.chromeExtra())
}

// listTop is the line of the first row, relative to the popup's top edge.
func (m *Model[T]) listTop() int {
	return ui.BorderHeight/2 + ui.SearchHeight + m.chromeExtra()
}

// chromeExtra counts the optional title and breadcrumb lines.
func (m *Model[T]) chromeExtra() int {
	extra := 0
	if m.cfg.Title != "" {
		extra++
	}
	if !m.nav.AtRoot() {
		extra += ui.MenuHeaderHeight
	}
	return extra
}

// relayout renders the rows in view into m.lines. It runs from Update so
// that View stays free of side effects.
func (m *Model[T]) relayout() {
	width := m.ContentWidth()
	height := m.listHeight()
	if !m.cfg.Virtualize {
		m.layoutAll(width, height)
		return
	}

	n := m.seq.Len()
	var (
		frame    virtual.Frame
		rendered []string
	)
	for range maxMeasurePasses {
		if m.follow && m.cursor.Valid(n) {
			m.scroll = m.window.ScrollTo(m.cursor.Pos(), m.scroll, height)
		}
		frame = m.window.Compute(m.scroll, height)
		m.scroll = frame.Scroll

		rendered = rendered[:0]
		changed := false
		for _, it := range frame.Items {
			row := m.renderRow(it.Index, width)
			rendered = append(rendered, row)
			if m.window.Measure(it.Index, it.Key, lipgloss.Height(row)) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	m.follow = false

	m.lines = m.lines[:0]
	if frame.Empty() {
		return
	}
	pos := frame.Items[0].Offset
	for _, row := range rendered {
		for line := range strings.SplitSeq(row, "\n") {
			if pos >= m.scroll && pos < m.scroll+height {
				m.lines = append(m.lines, line)
			}
			pos++
		}
	}
}

// layoutAll renders every row and keeps the lines in view.
func (m *Model[T]) layoutAll(width, height int) {
	n := m.seq.Len()
	all := make([]string, 0, n)
	m.starts = m.starts[:0]
	for i := range n {
		m.starts = append(m.starts, len(all))
		all = append(all, strings.Split(m.renderRow(i, width), "\n")...)
	}
	m.starts = append(m.starts, len(all))

	if m.follow && m.cursor.Valid(n) {
		top, bottom := m.starts[m.cursor.Pos()], m.starts[m.cursor.Pos()+1]
		if top < m.scroll {
			m.scroll = top
		} else if bottom > m.scroll+height {
			m.scroll = bottom - height
		}
	}
	m.scroll = min(max(m.scroll, 0), max(len(all)-height, 0))
	m.follow = false
	m.lines = all[m.scroll:min(m.scroll+height, len(all))]
}

func (m *Model[T]) renderRow(i, width int) string {
	row := m.seq.Rows[i]
	if row.IsHeader() {
		return m.cfg.Renderers.Group(render.Sanitize(row.Group), width)
	}

	o := row.Option
	st := RowState{
		Cursor:   m.cursor.Valid(m.seq.Len()) && m.cursor.Pos() == i,
		Disabled: o.Disabled,
		Multiple: m.multi != nil,
		Width:    width,
	}
	switch {
	case o.IsMenu() && m.multi != nil:
		st.Selected = m.multi.IsAllSubmenuSelected(o)
		st.Partial = m.multi.IsPartiallySubmenuSelected(o)
	case !o.IsMenu():
		st.Selected = m.sel.IsSelected(o)
	}
	return m.cfg.Renderers.Item(o, render.Sanitize(m.cfg.Label(o.Value)), st)
}

// rowAt maps a screen cell to a row index, or -1.
func (m *Model[T]) rowAt(x, y int) int {
	if x < m.originX || x >= m.originX+m.Width() {
		return -1
	}
	line := y - m.originY - m.listTop()
	if line < 0 || line >= len(m.lines) {
		return -1
	}
	pos := m.scroll + line
	if m.cfg.Virtualize {
		return m.window.IndexAt(pos)
	}
	n := len(m.starts) - 1
	i := sort.Search(n, func(i int) bool { return m.starts[i+1] > pos })
	if i >= n {
		return -1
	}
	return i
}
