// Package search reduces an option list to the entries matching a query.
package search

import (
	"strings"

	"github.com/llehouerou/picker/internal/option"
)

// Keys lists the text fields of an option value that a query is matched
// against.
type Keys[T any] []func(T) string

// Texts returns the key texts of v.
func (k Keys[T]) Texts(v T) []string {
	out := make([]string, 0, len(k))
	for _, fn := range k {
		out = append(out, fn(v))
	}
	return out
}

// Matcher returns the subset of opts matching query. When deep is set, an
// option also matches if any of its immediate submenu children matches.
// Implementations must not mutate opts.
type Matcher[T any] interface {
	Match(opts []option.Option[T], query string, deep bool) []option.Option[T]
}

// Filter applies m to opts. An empty query returns opts unchanged without
// consulting the matcher.
func Filter[T any](m Matcher[T], opts []option.Option[T], query string, deep bool) []option.Option[T] {
	if query == "" || m == nil {
		return opts
	}
	return m.Match(opts, query, deep)
}

// Substring matches case-insensitively on any key text containing the query.
type Substring[T any] struct {
	Keys Keys[T]
}

// Match implements Matcher. Result order follows opts.
func (s Substring[T]) Match(opts []option.Option[T], query string, deep bool) []option.Option[T] {
	q := normalize(query)
	out := make([]option.Option[T], 0, len(opts))
	for _, o := range opts {
		if s.matches(o.Value, q) {
			out = append(out, o)
			continue
		}
		if !deep {
			continue
		}
		for _, child := range o.SubMenu {
			if s.matches(child.Value, q) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func (s Substring[T]) matches(v T, q string) bool {
	for _, text := range s.Keys.Texts(v) {
		if strings.Contains(normalize(text), q) {
			return true
		}
	}
	return false
}

// PredicateFunc decides whether the option at index matches query.
type PredicateFunc[T any] func(opt option.Option[T], index int, query string) bool

// Predicate adapts a caller supplied PredicateFunc to a Matcher. Deep
// matching is left to the predicate.
type Predicate[T any] struct {
	Fn PredicateFunc[T]
}

// Match implements Matcher.
func (p Predicate[T]) Match(opts []option.Option[T], query string, _ bool) []option.Option[T] {
	out := make([]option.Option[T], 0, len(opts))
	for i, o := range opts {
		if p.Fn(o, i, query) {
			out = append(out, o)
		}
	}
	return out
}
