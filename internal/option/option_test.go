package option

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item struct {
	id    int
	label string
}

func keyOf(i item) string { return i.label }

func TestLeaves(t *testing.T) {
	opts := []Option[item]{
		New(item{1, "A"}),
		NewMenu(item{2, "B"},
			New(item{3, "B1"}),
			New(item{4, "B2"}),
		),
		NewMenu(item{5, "Empty"}),
		New(item{6, "C"}),
	}

	leaves := Leaves(opts)

	var got []string
	for _, l := range leaves {
		got = append(got, l.Value.label)
	}
	want := []string{"A", "B1", "B2", "C"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Leaves() mismatch (-want +got):\n%s", diff)
	}

	if leaves[0].Menu != nil {
		t.Error("root leaf should not be tagged with a menu")
	}
	if leaves[1].Menu == nil || leaves[1].Menu.Value.label != "B" {
		t.Errorf("B1 should be tagged with menu B, got %+v", leaves[1].Menu)
	}
}

func TestLeavesUnder(t *testing.T) {
	menu := NewMenu(item{2, "B"}, New(item{3, "B1"}), New(item{4, "B2"}))

	leaves := LeavesUnder(menu)
	if len(leaves) != 2 {
		t.Fatalf("LeavesUnder() len = %d, want 2", len(leaves))
	}
	for _, l := range leaves {
		if l.Menu == nil || l.Menu.Value.id != 2 {
			t.Errorf("%s: menu tag = %+v, want B", l.Value.label, l.Menu)
		}
	}
	if menu.SubMenu[0].Menu != nil {
		t.Error("LeavesUnder must not mutate the source options")
	}
}

func TestIsMenuCanDrill(t *testing.T) {
	tests := []struct {
		name      string
		opt       Option[item]
		wantMenu  bool
		wantDrill bool
	}{
		{"leaf", New(item{1, "A"}), false, false},
		{"empty menu", NewMenu(item{2, "B"}), true, false},
		{"menu with children", NewMenu(item{2, "B"}, New(item{3, "B1"})), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opt.IsMenu(); got != tt.wantMenu {
				t.Errorf("IsMenu() = %v, want %v", got, tt.wantMenu)
			}
			if got := tt.opt.CanDrill(); got != tt.wantDrill {
				t.Errorf("CanDrill() = %v, want %v", got, tt.wantDrill)
			}
		})
	}
}

func TestFind(t *testing.T) {
	key := KeyFunc[item](keyOf)
	opts := []Option[item]{
		New(item{1, "A"}),
		NewMenu(item{2, "B"}, New(item{3, "B1"})),
	}

	got, ok := Find(opts, key, "B1")
	if !ok || got.Value.id != 3 {
		t.Errorf("Find(B1) = %+v, %v", got, ok)
	}
	if _, ok := Find(opts, key, "missing"); ok {
		t.Error("Find(missing) should fail")
	}
}

func TestWithMenuCopies(t *testing.T) {
	parent := New(item{2, "B"})
	child := New(item{3, "B1"})

	tagged := child.WithMenu(&parent)
	if child.Menu != nil {
		t.Error("WithMenu mutated the receiver")
	}
	if tagged.Menu != &parent {
		t.Error("WithMenu did not set the menu")
	}
}
