package selection

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/picker/internal/option"
)

type item struct {
	ID    int
	Label string
}

func keyOf(i item) string { return fmt.Sprint(i.ID) }

var key = option.KeyFunc[item](keyOf)

func leaf(id int, label string) option.Option[item] {
	return option.New(item{ID: id, Label: label})
}

// scenarioOptions is A, B{B1, B2}.
func scenarioOptions() []option.Option[item] {
	return []option.Option[item]{
		leaf(1, "A"),
		option.NewMenu(item{ID: 2, Label: "B"}, leaf(3, "B1"), leaf(4, "B2")),
	}
}

func richOptions() []option.Option[item] {
	disabled := leaf(7, "D")
	disabled.Disabled = true
	return []option.Option[item]{
		leaf(1, "A"),
		option.NewMenu(item{ID: 2, Label: "B"}, leaf(3, "B1"), leaf(4, "B2")),
		option.NewMenu(item{ID: 5, Label: "C"}, leaf(6, "C1"), disabled),
		leaf(8, "E"),
	}
}

func sortedKeys(m *Multi[item]) []string {
	ks := m.Keys()
	sort.Strings(ks)
	return ks
}

func TestSingle_Toggle(t *testing.T) {
	s := NewSingle(key)

	changed, closePopup := s.Toggle(leaf(1, "A"))
	assert.True(t, changed)
	assert.True(t, closePopup)
	assert.True(t, s.IsSelected(leaf(1, "other label, same key")))

	changed, closePopup = s.Toggle(leaf(1, "A"))
	assert.True(t, changed, "single select re-selects, it does not toggle off")
	assert.True(t, closePopup)
	assert.Equal(t, 1, s.Len())

	s.Toggle(leaf(2, "B"))
	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, got.Value.ID)
	assert.False(t, s.IsSelected(leaf(1, "A")))
}

func TestSingle_DisabledAndMenuAreNoops(t *testing.T) {
	s := NewSingle(key)
	s.Set(leaf(1, "A"))

	d := leaf(9, "D")
	d.Disabled = true
	changed, closePopup := s.Toggle(d)
	assert.False(t, changed)
	assert.False(t, closePopup)

	changed, _ = s.Toggle(scenarioOptions()[1])
	assert.False(t, changed)

	got, _ := s.Selected()
	assert.Equal(t, 1, got.Value.ID)
}

func TestSingle_Clear(t *testing.T) {
	s := NewSingle(key)
	assert.Nil(t, s.Values())

	s.Set(leaf(1, "A"))
	assert.Len(t, s.Values(), 1)

	s.Clear()
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Multiple())
}

func TestMulti_ToggleInvolution(t *testing.T) {
	for _, o := range option.Leaves(richOptions()) {
		t.Run(o.Value.Label, func(t *testing.T) {
			m := NewMulti(key)
			m.Set([]option.Option[item]{leaf(1, "A"), leaf(4, "B2")})
			before := sortedKeys(m)

			m.Toggle(o)
			m.Toggle(o)

			assert.Equal(t, before, sortedKeys(m))
		})
	}
}

func TestMulti_ToggleKeepsPopupOpen(t *testing.T) {
	m := NewMulti(key)

	changed, closePopup := m.Toggle(leaf(1, "A"))
	assert.True(t, changed)
	assert.False(t, closePopup)
	assert.True(t, m.IsSelected(leaf(1, "A")))

	m.Toggle(leaf(1, "A again"))
	assert.False(t, m.IsSelected(leaf(1, "A")))
	assert.True(t, m.Multiple())
}

func TestMulti_InsertionOrder(t *testing.T) {
	m := NewMulti(key)
	m.Toggle(leaf(8, "E"))
	m.Toggle(leaf(1, "A"))
	m.Toggle(leaf(3, "B1"))
	m.Toggle(leaf(1, "A"))
	m.Toggle(leaf(1, "A"))

	assert.Equal(t, []string{"8", "3", "1"}, m.Keys())
	vals := m.Values()
	require.Len(t, vals, 3)
	assert.Equal(t, "E", vals[0].Value.Label)
}

func TestMulti_SetDropsDuplicates(t *testing.T) {
	m := NewMulti(key)
	m.Set([]option.Option[item]{leaf(1, "A"), leaf(1, "A'"), leaf(2, "B")})
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "A", m.Values()[0].Value.Label)
}

func TestMulti_SelectAllAtRoot(t *testing.T) {
	m := NewMulti(key)
	opts := richOptions()

	added := m.SelectAll(RootScope(opts))

	// Every reachable non-disabled leaf: A, B1, B2, C1, E.
	assert.Equal(t, 5, added)
	assert.Equal(t, []string{"1", "3", "4", "6", "8"}, sortedKeys(m))
	assert.True(t, m.IsAllSelected(RootScope(opts)))
	assert.False(t, m.IsNoneSelected(RootScope(opts)))

	for _, v := range m.Values() {
		if v.Value.ID == 3 {
			require.NotNil(t, v.Menu, "B1 should be tagged with its menu")
			assert.Equal(t, 2, v.Menu.Value.ID)
		}
		if v.Value.ID == 1 {
			assert.Nil(t, v.Menu)
		}
	}

	assert.Equal(t, 0, m.SelectAll(RootScope(opts)), "second select-all adds nothing")
}

func TestMulti_ClearAllAtRoot(t *testing.T) {
	m := NewMulti(key)
	opts := richOptions()
	m.SelectAll(RootScope(opts))

	removed := m.ClearAll(RootScope(opts))
	assert.Equal(t, 5, removed)
	assert.Equal(t, 0, m.Len())
	assert.True(t, m.IsNoneSelected(RootScope(opts)))
}

func TestMulti_SubmenuScopedOperations(t *testing.T) {
	m := NewMulti(key)
	opts := richOptions()
	b := MenuScope(opts[1])
	c := MenuScope(opts[2])

	m.Toggle(leaf(1, "A"))
	m.Toggle(leaf(6, "C1"))

	added := m.SelectAll(b)
	assert.Equal(t, 2, added)
	assert.True(t, m.IsAllSelected(b))
	assert.False(t, m.IsNoneSelected(b))
	assert.True(t, m.IsAllSelected(c), "disabled children do not count")

	removed := m.ClearAll(b)
	assert.Equal(t, 2, removed)
	assert.True(t, m.IsNoneSelected(b))
	assert.Equal(t, []string{"1", "6"}, m.Keys(), "selections outside the menu survive")
}

func TestMulti_SubmenuDerivedState(t *testing.T) {
	m := NewMulti(key)
	opts := richOptions()
	b := opts[1]
	c := opts[2]

	assert.False(t, m.IsAllSubmenuSelected(b))
	assert.False(t, m.IsPartiallySubmenuSelected(b))

	m.Toggle(leaf(3, "B1"))
	assert.False(t, m.IsAllSubmenuSelected(b))
	assert.True(t, m.IsPartiallySubmenuSelected(b))

	m.Toggle(leaf(4, "B2"))
	assert.True(t, m.IsAllSubmenuSelected(b))
	assert.False(t, m.IsPartiallySubmenuSelected(b))

	m.Toggle(leaf(6, "C1"))
	assert.True(t, m.IsAllSubmenuSelected(c))

	empty := option.NewMenu(item{ID: 10, Label: "Empty"})
	assert.False(t, m.IsAllSubmenuSelected(empty))
}

func TestMulti_DisabledToggleIsNoop(t *testing.T) {
	m := NewMulti(key)
	d := leaf(7, "D")
	d.Disabled = true

	changed, _ := m.Toggle(d)
	assert.False(t, changed)
	assert.Equal(t, 0, m.Len())
}

func TestScope_EmptyNeverAllSelected(t *testing.T) {
	m := NewMulti(key)
	assert.False(t, m.IsAllSelected(RootScope[item](nil)))
	assert.True(t, m.IsNoneSelected(RootScope[item](nil)))
}

// Scenario from the picker: drill into B, select all, go back.
func TestMulti_DrillSelectAllBackScenario(t *testing.T) {
	m := NewMulti(key)
	opts := scenarioOptions()

	m.SelectAll(MenuScope(opts[1]))

	assert.True(t, m.IsSelected(leaf(3, "")))
	assert.True(t, m.IsAllSubmenuSelected(opts[1]))
	assert.False(t, m.IsSelected(leaf(1, "")))
}
