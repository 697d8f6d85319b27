// Package picker is the option picker widget: a bubbletea component that
// searches, groups and windows an option tree, drills into menus and keeps
// a single or multiple selection.
package picker

import (
	"log/slog"

	textcursor "github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/picker/internal/navigation"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/rows"
	"github.com/llehouerou/picker/internal/search"
	"github.com/llehouerou/picker/internal/selection"
	"github.com/llehouerou/picker/internal/ui"
	"github.com/llehouerou/picker/internal/ui/cursor"
	"github.com/llehouerou/picker/internal/ui/styles"
	"github.com/llehouerou/picker/internal/virtual"
)

// Model is the picker component. It is driven through Update and must be
// used from a single goroutine.
type Model[T any] struct {
	ui.Base
	cfg Config[T]
	log *slog.Logger

	root   []option.Option[T]
	nav    *navigation.Stack[T]
	search *search.Searcher[T]

	sel    selection.Model[T]
	multi  *selection.Multi[T]  // nil in single select
	single *selection.Single[T] // nil in multi select

	seq     rows.Sequence[T]
	window  *virtual.Window
	cursor  cursor.Cursor
	scroll  int
	follow  bool // keep the cursor row in view on the next layout
	lines   []string
	starts  []int // first line of each row, non-virtualized mode only
	originX int
	originY int

	input   textinput.Model
	spinner spinner.Model
	open    bool
	status  string
}

// New creates a closed picker over opts.
func New[T any](opts []option.Option[T], cfg Config[T]) (*Model[T], error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = cfg.Placeholder
	input.Cursor.SetMode(textcursor.CursorStatic)
	input.PromptStyle = styles.T().S().Muted
	input.PlaceholderStyle = styles.T().S().Subtle

	m := &Model[T]{
		cfg:  cfg,
		log:  cfg.Logger.With("component", Source),
		root: opts,
		nav:  navigation.New(opts, cfg.MaxDepth),
		search: search.NewSearcher(search.Config[T]{
			Mode:     cfg.Search,
			Matcher:  cfg.matcher(),
			Async:    cfg.Async,
			Debounce: cfg.Debounce,
		}),
		window:  virtual.New(cfg.Estimate, cfg.Overscan),
		cursor:  cursor.New(),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.T().S().Muted)),
	}
	if cfg.Multiple {
		m.multi = selection.NewMulti(cfg.Key)
		m.sel = m.multi
	} else {
		m.single = selection.NewSingle(cfg.Key)
		m.sel = m.single
	}
	m.search.Reset(opts, true)
	m.rebuild(true)
	return m, nil
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// IsOpen reports whether the popup is shown.
func (m *Model[T]) IsOpen() bool {
	return m.open
}

// Open shows the popup at the root menu with an empty query.
func (m *Model[T]) Open() tea.Cmd {
	m.open = true
	m.status = ""
	m.resetToRoot()
	m.log.Debug("picker opened", "options", len(m.root))
	return m.input.Focus()
}

// Close hides the popup and reports the selection.
func (m *Model[T]) Close() tea.Cmd {
	return m.close(false)
}

// Toggle opens a closed popup and closes an open one.
func (m *Model[T]) Toggle() tea.Cmd {
	if m.open {
		return m.Close()
	}
	return m.Open()
}

func (m *Model[T]) close(committed bool) tea.Cmd {
	if !m.open {
		return nil
	}
	m.open = false
	m.input.Blur()
	m.resetToRoot()
	m.log.Debug("picker closed", "selected", m.sel.Len(), "committed", committed)
	return resultCmd(Result[T]{Values: m.sel.Values(), Committed: committed})
}

func (m *Model[T]) resetToRoot() {
	m.nav.Reset(m.root)
	m.search.Reset(m.root, true)
	m.input.Reset()
	m.rebuild(true)
}

// SetOptions replaces the option tree. Navigation returns to the root; the
// current query is applied to the new options.
func (m *Model[T]) SetOptions(opts []option.Option[T]) tea.Cmd {
	m.root = opts
	m.nav.Reset(opts)
	cmd := m.search.SetOptions(opts, true)
	m.rebuild(false)
	return m.withSpinner(cmd)
}

// Options returns the root option tree.
func (m *Model[T]) Options() []option.Option[T] {
	return m.root
}

// Selection returns the selection state.
func (m *Model[T]) Selection() selection.Model[T] {
	return m.sel
}

// Multi returns the multi selection, or nil in single select.
func (m *Model[T]) Multi() *selection.Multi[T] {
	return m.multi
}

// Values returns the selected options in selection order.
func (m *Model[T]) Values() []option.Option[T] {
	return m.sel.Values()
}

// SetValues replaces the selection without emitting a result. In single
// select only the first value is kept.
func (m *Model[T]) SetValues(values []option.Option[T]) {
	if m.multi != nil {
		m.multi.Set(values)
	} else if len(values) > 0 {
		m.single.Set(values[0])
	} else {
		m.single.Clear()
	}
	m.relayout()
}

// Query returns the text typed in the search box.
func (m *Model[T]) Query() string {
	return m.input.Value()
}

// Loading reports whether an async search is in flight.
func (m *Model[T]) Loading() bool {
	return m.search.Loading()
}

// Navigation returns the menu stack.
func (m *Model[T]) Navigation() *navigation.Stack[T] {
	return m.nav
}

// Rows returns the flattened rows currently shown.
func (m *Model[T]) Rows() rows.Sequence[T] {
	return m.seq
}

// Cursor returns the highlighted row index, or -1.
func (m *Model[T]) Cursor() int {
	if !m.cursor.Valid(m.seq.Len()) {
		return -1
	}
	return m.cursor.Pos()
}

// Status returns the footer message, set when an async search fails.
func (m *Model[T]) Status() string {
	return m.status
}

// SetSize sets the outer popup dimensions.
func (m *Model[T]) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(m.ContentWidth()-lipgloss.Width(m.input.Prompt)-2, 1)
	m.follow = true
	m.relayout()
}

// SetOrigin records where the host draws the popup, for mouse hit testing.
func (m *Model[T]) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// rebuild re-flattens the search results. With reset the cursor returns to
// the first row.
func (m *Model[T]) rebuild(reset bool) {
	m.seq = rows.Flatten(m.search.Results(), m.cfg.GroupBy)
	if m.cfg.Virtualize {
		m.window.SetRows(m.seq.Keys(m.cfg.Key))
	}
	if reset {
		m.cursor.JumpStart(m.seq.Len(), m.seq.IsHeader)
		m.scroll = 0
	} else {
		m.cursor.Clamp(m.seq.Len(), m.seq.IsHeader)
	}
	m.follow = true
	m.relayout()
}

func (m *Model[T]) withSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil || !m.search.Loading() {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}
