package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/picker/internal/catalog"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/picker"
	"github.com/llehouerou/picker/internal/ui/action"
	"github.com/llehouerou/picker/internal/ui/popup"
	"github.com/llehouerou/picker/internal/ui/render"
	"github.com/llehouerou/picker/internal/ui/styles"
)

// app hosts the picker popup over a full screen background.
type app struct {
	picker *picker.Model[catalog.Record]
	size   popup.SizeConfig
	width  int
	height int
	values []option.Option[catalog.Record]
}

func newApp(p *picker.Model[catalog.Record], size popup.SizeConfig) *app {
	return &app{picker: p, size: size}
}

func (a *app) Init() tea.Cmd {
	return a.picker.Open()
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case action.Msg:
		if res, ok := msg.Action.(picker.Result[catalog.Record]); ok && msg.Source == picker.Source {
			a.values = res.Values
			return a, tea.Quit
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

// layout sizes the popup and records where Center will draw it.
func (a *app) layout() {
	w, h := a.size.Dimensions("", a.width, a.height)
	a.picker.SetSize(w, h)
	a.picker.SetOrigin(max((a.width-w)/2, 0), max((a.height-h)/2, 0))
}

func (a *app) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	base := a.background()
	if !a.picker.IsOpen() {
		return base
	}
	return popup.Compose(base, popup.Center(a.picker.View(), a.width, a.height), a.width)
}

func (a *app) background() string {
	s := styles.T().S()
	lines := make([]string, a.height)
	lines[0] = styles.T().Title(render.Truncate(" picker", a.width))
	if a.height > 1 {
		count := len(a.picker.Values())
		status := " " + humanize.Comma(int64(count)) + " selected · esc to finish · ctrl+c to quit"
		lines[a.height-1] = s.Muted.Render(render.Truncate(status, a.width))
	}
	return strings.Join(lines, "\n")
}

// selectedIDs returns the ids of the final selection.
func (a *app) selectedIDs() []string {
	ids := make([]string, len(a.values))
	for i, v := range a.values {
		ids[i] = v.Value.ID
	}
	return ids
}
