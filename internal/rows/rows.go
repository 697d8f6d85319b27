// Package rows flattens filtered options, optionally grouped, into the single
// addressable sequence the windowing engine and renderer work on.
package rows

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/llehouerou/picker/internal/option"
)

// Kind distinguishes header rows from option rows.
type Kind int

const (
	KindOption Kind = iota
	KindHeader
)

// Row is one positional entry of a Sequence.
type Row[T any] struct {
	Kind   Kind
	Group  string           // set for header rows
	Option option.Option[T] // set for option rows
}

// IsHeader reports whether r is a group header.
func (r Row[T]) IsHeader() bool {
	return r.Kind == KindHeader
}

// GroupFunc returns the group key of an option value.
type GroupFunc[T any] func(T) string

// Sequence is the flattened row list plus the positions of its headers.
type Sequence[T any] struct {
	Rows    []Row[T]
	headers map[int]struct{}
	grouped bool
}

// Flatten serializes opts into a Sequence. Without groupBy the rows are opts
// in order. With groupBy, options are bucketed by key in first-seen order and
// each bucket is emitted as a header row followed by its options.
func Flatten[T any](opts []option.Option[T], groupBy GroupFunc[T]) Sequence[T] {
	if groupBy == nil {
		rows := make([]Row[T], len(opts))
		for i, o := range opts {
			rows[i] = Row[T]{Kind: KindOption, Option: o}
		}
		return Sequence[T]{Rows: rows, headers: map[int]struct{}{}}
	}

	buckets := orderedmap.New[string, []option.Option[T]]()
	for _, o := range opts {
		key := groupBy(o.Value)
		bucket, _ := buckets.Get(key)
		buckets.Set(key, append(bucket, o))
	}

	seq := Sequence[T]{
		Rows:    make([]Row[T], 0, len(opts)+buckets.Len()),
		headers: make(map[int]struct{}, buckets.Len()),
		grouped: true,
	}
	for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
		seq.headers[len(seq.Rows)] = struct{}{}
		seq.Rows = append(seq.Rows, Row[T]{Kind: KindHeader, Group: pair.Key})
		for _, o := range pair.Value {
			seq.Rows = append(seq.Rows, Row[T]{Kind: KindOption, Option: o})
		}
	}
	return seq
}

// Len returns the number of rows.
func (s Sequence[T]) Len() int {
	return len(s.Rows)
}

// Grouped reports whether the sequence was built with a group function.
func (s Sequence[T]) Grouped() bool {
	return s.grouped
}

// IsHeader reports whether position i holds a header row.
func (s Sequence[T]) IsHeader(i int) bool {
	_, ok := s.headers[i]
	return ok
}

// HeaderPositions returns the header positions in ascending order.
func (s Sequence[T]) HeaderPositions() []int {
	out := make([]int, 0, len(s.headers))
	for i := range s.Rows {
		if s.IsHeader(i) {
			out = append(out, i)
		}
	}
	return out
}

// Group is one bucket reconstructed from a Sequence.
type Group[T any] struct {
	Key     string
	Options []option.Option[T]
}

// Groups rebuilds the buckets by scanning the header positions. An ungrouped
// sequence yields a single group with an empty key.
func (s Sequence[T]) Groups() []Group[T] {
	if !s.grouped {
		g := Group[T]{}
		for _, r := range s.Rows {
			g.Options = append(g.Options, r.Option)
		}
		return []Group[T]{g}
	}

	var out []Group[T]
	for i, r := range s.Rows {
		if s.IsHeader(i) {
			out = append(out, Group[T]{Key: r.Group})
			continue
		}
		last := &out[len(out)-1]
		last.Options = append(last.Options, r.Option)
	}
	return out
}

// Options returns the option rows in sequence order.
func (s Sequence[T]) Options() []option.Option[T] {
	out := make([]option.Option[T], 0, len(s.Rows)-len(s.headers))
	for _, r := range s.Rows {
		if !r.IsHeader() {
			out = append(out, r.Option)
		}
	}
	return out
}

// Keys returns a stable identity per row: headers are keyed by group, option
// rows by the option key. Used to key size measurements.
func (s Sequence[T]) Keys(key option.KeyFunc[T]) []string {
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		if r.IsHeader() {
			out[i] = "g\x00" + r.Group
		} else {
			out[i] = "o\x00" + key.Key(r.Option)
		}
	}
	return out
}

// IndexOf returns the position of the option row with key k, or -1.
func (s Sequence[T]) IndexOf(key option.KeyFunc[T], k string) int {
	for i, r := range s.Rows {
		if !r.IsHeader() && key.Key(r.Option) == k {
			return i
		}
	}
	return -1
}
