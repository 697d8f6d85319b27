package picker

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/picker/internal/errmsg"
	"github.com/llehouerou/picker/internal/keymap"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/search"
	"github.com/llehouerou/picker/internal/selection"
	"github.com/llehouerou/picker/internal/ui"
)

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

// Update handles a message. Search messages are processed while closed so
// that late results do not leak into the next session.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case search.DebounceMsg:
		return m, m.handleDebounce(msg)
	case search.ResultMsg[T]:
		return m, m.handleResult(msg)
	case spinner.TickMsg:
		if !m.search.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.open {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model[T]) handleDebounce(msg search.DebounceMsg) tea.Cmd {
	current, cmd := m.search.HandleDebounce(msg)
	if !current {
		return nil
	}
	m.status = ""
	if cmd != nil {
		// Async query issued; the last results stay until it answers.
		m.relayout()
		return m.withSpinner(cmd)
	}
	m.rebuild(true)
	return nil
}

func (m *Model[T]) handleResult(msg search.ResultMsg[T]) tea.Cmd {
	if !m.search.Owns(msg) {
		return nil
	}
	applied, err := m.search.HandleResult(msg)
	switch {
	case err != nil:
		m.log.Warn("async search failed", "query", msg.Query, "error", err)
		m.status = errmsg.FormatWith(errmsg.OpSearch, msg.Query, err)
		m.relayout()
	case applied:
		m.log.Debug("async search applied", "query", msg.Query, "results", len(msg.Options))
		m.rebuild(true)
	default:
		m.log.Debug("stale search result dropped", "query", msg.Query, "seq", msg.Seq)
	}
	return nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	n := m.seq.Len()
	page := max(m.listHeight()-ui.PageOverlap, 1)

	switch m.cfg.Keys.Resolve(msg.String()) {
	case keymap.ActionClose:
		return m.Close()
	case keymap.ActionQuit:
		// The host owns the program lifecycle.
		return nil
	case keymap.ActionMoveUp:
		return m.move(m.cursor.Move(-1, n, m.seq.IsHeader))
	case keymap.ActionMoveDown:
		return m.move(m.cursor.Move(1, n, m.seq.IsHeader))
	case keymap.ActionPageUp:
		return m.move(m.cursor.Move(-page, n, m.seq.IsHeader))
	case keymap.ActionPageDown:
		return m.move(m.cursor.Move(page, n, m.seq.IsHeader))
	case keymap.ActionJumpStart:
		m.cursor.JumpStart(n, m.seq.IsHeader)
		return m.move(true)
	case keymap.ActionJumpEnd:
		m.cursor.JumpEnd(n, m.seq.IsHeader)
		return m.move(true)
	case keymap.ActionSelect:
		if !m.cursor.Valid(n) {
			return nil
		}
		return m.activate(m.cursor.Pos())
	case keymap.ActionToggle:
		if m.multi != nil && m.Query() == "" {
			m.toggleCursor()
			return nil
		}
	case keymap.ActionGoBack:
		if !m.nav.AtRoot() && m.Query() == "" {
			return m.goBack()
		}
	case keymap.ActionSelectAll:
		if m.multi != nil {
			m.SelectAll()
			return nil
		}
	case keymap.ActionClearAll:
		if m.multi != nil {
			m.ClearAll()
			return nil
		}
	}
	return m.updateInput(msg)
}

func (m *Model[T]) move(moved bool) tea.Cmd {
	if moved {
		m.follow = true
		m.relayout()
	}
	return nil
}

func (m *Model[T]) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.search.SetQuery(m.input.Value()))
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		i := m.rowAt(msg.X, msg.Y)
		if i < 0 || m.seq.IsHeader(i) {
			return nil
		}
		m.cursor.Jump(i, m.seq.Len(), m.seq.IsHeader)
		return m.activate(i)
	}
	return nil
}

func (m *Model[T]) scrollBy(delta int) {
	m.scroll += delta
	m.follow = false
	m.relayout()
}

// activate applies a click or enter on row i: menus are entered, other
// options toggled.
func (m *Model[T]) activate(i int) tea.Cmd {
	if i < 0 || i >= m.seq.Len() || m.seq.IsHeader(i) {
		return nil
	}
	o := m.seq.Rows[i].Option
	if o.Disabled {
		return nil
	}
	if o.IsMenu() {
		return m.drillIn(o)
	}
	return m.toggle(o)
}

func (m *Model[T]) toggle(o option.Option[T]) tea.Cmd {
	if menu := m.nav.Menu(); menu != nil && o.Menu == nil {
		o = o.WithMenu(menu)
	}
	changed, closePopup := m.sel.Toggle(o)
	if closePopup {
		return m.close(true)
	}
	if changed {
		m.relayout()
	}
	return nil
}

// toggleCursor toggles the highlighted option. On a menu row every leaf of
// the menu is selected, or cleared when all already are.
func (m *Model[T]) toggleCursor() {
	if !m.cursor.Valid(m.seq.Len()) {
		return
	}
	o := m.seq.Rows[m.cursor.Pos()].Option
	if o.Disabled {
		return
	}
	if !o.IsMenu() {
		m.toggle(o)
		return
	}
	scope := selection.MenuScope(o)
	if m.multi.IsAllSelected(scope) {
		m.multi.ClearAll(scope)
	} else {
		m.multi.SelectAll(scope)
	}
	m.relayout()
}

// SelectAll adds every selectable leaf of the current scope: the whole tree
// at root, the entered menu otherwise. No-op in single select.
func (m *Model[T]) SelectAll() int {
	if m.multi == nil {
		return 0
	}
	added := m.multi.SelectAll(m.nav.Scope())
	m.log.Debug("select all", "added", added, "root", m.nav.AtRoot())
	m.relayout()
	return added
}

// ClearAll empties the selection at root and removes the entered menu's
// leaves otherwise. No-op in single select.
func (m *Model[T]) ClearAll() int {
	if m.multi == nil {
		return 0
	}
	removed := m.multi.ClearAll(m.nav.Scope())
	m.log.Debug("clear all", "removed", removed, "root", m.nav.AtRoot())
	m.relayout()
	return removed
}

// DrillIn enters the menu option o. The typed query is kept and applied to
// the menu's children.
func (m *Model[T]) DrillIn(o option.Option[T]) tea.Cmd {
	if !m.open {
		return nil
	}
	return m.drillIn(o)
}

func (m *Model[T]) drillIn(o option.Option[T]) tea.Cmd {
	if !m.nav.DrillIn(o) {
		return nil
	}
	m.log.Debug("drill in", "menu", m.cfg.Key.Key(o), "depth", m.nav.Depth())
	cmd := m.search.SetOptions(o.SubMenu, false)
	m.rebuild(true)
	return m.withSpinner(cmd)
}

// GoBack leaves the entered menu. The query is cleared and the highlight
// returns to the menu that was left.
func (m *Model[T]) GoBack() tea.Cmd {
	if !m.open {
		return nil
	}
	return m.goBack()
}

func (m *Model[T]) goBack() tea.Cmd {
	from := m.nav.Menu()
	if !m.nav.GoBack() {
		return nil
	}
	m.search.Reset(m.nav.Current().Options, m.nav.AtRoot())
	m.input.Reset()
	m.rebuild(true)
	if from != nil {
		if i := m.seq.IndexOf(m.cfg.Key, m.cfg.Key.Key(*from)); i >= 0 {
			m.cursor.Jump(i, m.seq.Len(), m.seq.IsHeader)
			m.follow = true
			m.relayout()
		}
	}
	m.log.Debug("go back", "depth", m.nav.Depth())
	return nil
}
