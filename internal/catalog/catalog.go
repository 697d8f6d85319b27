// Package catalog reads option trees from TOML files.
//
// A catalog lists root options as [[options]] tables; a table with a
// [[options.submenu]] list (or menu = true) is a menu:
//
//	[[options]]
//	id = "fruit"
//	label = "Fruit"
//	group = "Food"
//
//	  [[options.submenu]]
//	  id = "apple"
//	  label = "Apple"
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/picker/internal/option"
)

// Errors returned for malformed catalogs.
var (
	ErrMissingID   = errors.New("option without id")
	ErrDuplicateID = errors.New("duplicate option id")
)

// Record is the value carried by catalog options.
type Record struct {
	ID    string
	Label string
	Group string
}

// Key returns the identity of r.
func Key(r Record) string { return r.ID }

// Label returns the display text of r.
func Label(r Record) string { return r.Label }

// Group returns the group key of r.
func Group(r Record) string { return r.Group }

type entry struct {
	ID       string  `koanf:"id"`
	Label    string  `koanf:"label"`
	Group    string  `koanf:"group"`
	Disabled bool    `koanf:"disabled"`
	Menu     bool    `koanf:"menu"`
	Submenu  []entry `koanf:"submenu"`
}

// LoadFile parses the catalog at path.
func LoadFile(path string) ([]option.Option[Record], error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var entries []entry
	if err := k.Unmarshal("options", &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	seen := make(map[string]bool)
	opts, err := build(entries, "options", seen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

func build(entries []entry, where string, seen map[string]bool) ([]option.Option[Record], error) {
	out := make([]option.Option[Record], 0, len(entries))
	for i, e := range entries {
		at := fmt.Sprintf("%s[%d]", where, i)
		if e.ID == "" {
			return nil, fmt.Errorf("%s: %w", at, ErrMissingID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%s: %w %q", at, ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true

		rec := Record{ID: e.ID, Label: e.Label, Group: e.Group}
		if rec.Label == "" {
			rec.Label = e.ID
		}

		var o option.Option[Record]
		if e.Menu || len(e.Submenu) > 0 {
			children, err := build(e.Submenu, at+".submenu", seen)
			if err != nil {
				return nil, err
			}
			o = option.NewMenu(rec, children...)
		} else {
			o = option.New(rec)
		}
		o.Disabled = e.Disabled
		out = append(out, o)
	}
	return out, nil
}
