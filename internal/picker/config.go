package picker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/llehouerou/picker/internal/keymap"
	"github.com/llehouerou/picker/internal/navigation"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/rows"
	"github.com/llehouerou/picker/internal/search"
	"github.com/llehouerou/picker/internal/virtual"
)

// Construction errors.
var (
	ErrNoKeyFunc       = errors.New("picker: key function is required")
	ErrNoSearchKeys    = errors.New("picker: search needs keys or a predicate")
	ErrNoAsyncFunc     = errors.New("picker: async search needs a search function")
	ErrInvalidEstimate = errors.New("picker: row size estimate must be positive")
	ErrInvalidDepth    = errors.New("picker: max depth must be positive")
)

// Config configures a picker. Key is the only required field.
type Config[T any] struct {
	// Key extracts the identity of an option value.
	Key option.KeyFunc[T]
	// Label renders an option value as text. Defaults to fmt.Sprint.
	Label func(T) string

	Search     search.Mode
	SearchKeys search.Keys[T]
	// Predicate replaces key matching when set.
	Predicate search.PredicateFunc[T]
	// Ranked orders matches by relevance instead of keeping option order.
	Ranked   bool
	Async    search.AsyncFunc[T]
	Debounce time.Duration

	GroupBy  rows.GroupFunc[T]
	Multiple bool

	// Virtualize renders only the rows in view.
	Virtualize bool
	// Estimate is the assumed height of an unmeasured row, in lines.
	// Zero means virtual.DefaultEstimate.
	Estimate int
	Overscan int
	// MaxDepth is the number of menu levels below the root. Zero means
	// navigation.DefaultMaxDepth.
	MaxDepth int

	Title       string
	Placeholder string
	Renderers   Renderers[T]
	Keys        *keymap.Resolver
	Logger      *slog.Logger
}

// withDefaults validates c and fills the optional fields.
func (c Config[T]) withDefaults() (Config[T], error) {
	if c.Key == nil {
		return c, ErrNoKeyFunc
	}
	switch c.Search {
	case search.ModeSync:
		if len(c.SearchKeys) == 0 && c.Predicate == nil {
			return c, ErrNoSearchKeys
		}
	case search.ModeAsync:
		if c.Async == nil {
			return c, ErrNoAsyncFunc
		}
	}
	if c.Estimate < 0 {
		return c, fmt.Errorf("%w: %d", ErrInvalidEstimate, c.Estimate)
	}
	if c.MaxDepth < 0 {
		return c, fmt.Errorf("%w: %d", ErrInvalidDepth, c.MaxDepth)
	}

	if c.Estimate == 0 {
		c.Estimate = virtual.DefaultEstimate
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = navigation.DefaultMaxDepth
	}
	c.Overscan = max(c.Overscan, 0)
	if c.Label == nil {
		c.Label = func(v T) string { return fmt.Sprint(v) }
	}
	if c.Placeholder == "" {
		c.Placeholder = "Search…"
	}
	if c.Keys == nil {
		c.Keys = keymap.NewResolver(keymap.Bindings)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Renderers = c.Renderers.withDefaults()
	return c, nil
}

func (c Config[T]) matcher() search.Matcher[T] {
	switch {
	case c.Predicate != nil:
		return search.Predicate[T]{Fn: c.Predicate}
	case c.Ranked:
		return search.Ranked[T]{Keys: c.SearchKeys}
	default:
		return search.Substring[T]{Keys: c.SearchKeys}
	}
}
