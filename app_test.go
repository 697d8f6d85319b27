package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/picker/internal/catalog"
	"github.com/llehouerou/picker/internal/config"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/picker"
	"github.com/llehouerou/picker/internal/search"
	"github.com/llehouerou/picker/internal/ui/action"
	"github.com/llehouerou/picker/internal/ui/popup"
	"github.com/llehouerou/picker/internal/ui/testutil"
)

func demoOptions() []option.Option[catalog.Record] {
	return []option.Option[catalog.Record]{
		option.New(catalog.Record{ID: "apple", Label: "Apple", Group: "Fruit"}),
		option.New(catalog.Record{ID: "kale", Label: "Kale", Group: "Veg"}),
	}
}

func newTestApp(t *testing.T, pc config.PickerConfig) *app {
	t.Helper()
	p, err := picker.New(demoOptions(), pickerConfig(pc, nil))
	require.NoError(t, err)
	a := newApp(p, popup.SizeConfig{WidthPct: 50, HeightPct: 50})
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a
}

func TestApp_ComposesPopupOverBackground(t *testing.T) {
	a := newTestApp(t, (&config.Config{}).Picker())

	view := testutil.StripANSI(a.View())
	lines := testutil.SplitLines(view)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "picker")
	assert.True(t, testutil.ContainsLine(view, "Apple"))
	assert.True(t, testutil.ContainsLine(view, "0 selected"))

	// 40x12 popup centered on 80x24.
	assert.Equal(t, 6, testutil.LineIndex(view, "╭"))
}

func TestApp_ClickHitsCenteredPopup(t *testing.T) {
	pc := (&config.Config{Multiple: true}).Picker()
	a := newTestApp(t, pc)

	// Popup top is line 6, title line 7, search 8, separator 9, first row 10.
	a.Update(tea.MouseMsg{X: 25, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	require.Len(t, a.picker.Values(), 1)
	assert.Equal(t, "kale", a.picker.Values()[0].Value.ID)
}

func TestApp_ResultQuits(t *testing.T) {
	a := newTestApp(t, (&config.Config{}).Picker())

	_, cmd := a.Update(action.Msg{
		Source: picker.Source,
		Action: picker.Result[catalog.Record]{Values: demoOptions()[:1]},
	})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, []string{"apple"}, a.selectedIDs())
}

func TestPickerConfig(t *testing.T) {
	tests := []struct {
		name   string
		search string
		group  bool
		want   search.Mode
	}{
		{"sync", config.SearchSync, false, search.ModeSync},
		{"off", config.SearchOff, false, search.ModeOff},
		{"grouped", config.SearchSync, true, search.ModeSync},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := (&config.Config{Search: tt.search, Group: tt.group}).Picker()
			cfg := pickerConfig(pc, nil)
			assert.Equal(t, tt.want, cfg.Search)
			assert.Equal(t, tt.group, cfg.GroupBy != nil)
			assert.Nil(t, cfg.Async)
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}
