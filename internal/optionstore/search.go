package optionstore

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/llehouerou/picker/internal/catalog"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/search"
)

// minTrigram is the shortest word the trigram tokenizer can match.
const minTrigram = 3

// Match returns the ids of options whose label contains every word of
// query, case-insensitively. An empty query matches nothing.
func (s *Store) Match(ctx context.Context, query string) (map[string]struct{}, error) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return map[string]struct{}{}, nil
	}

	var (
		stmt string
		args []any
	)
	if shortest(words) >= minTrigram {
		stmt = `SELECT option_id FROM options_fts WHERE search_text MATCH ?`
		args = []any{escapeFTSQuery(words)}
	} else {
		// Trigram FTS cannot match words shorter than three runes.
		conds := make([]string, len(words))
		for i, w := range words {
			conds[i] = `label LIKE ? ESCAPE '\'`
			args = append(args, "%"+escapeLike(w)+"%")
		}
		stmt = `SELECT id FROM options WHERE ` + strings.Join(conds, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// Search returns the root options that match query themselves or through
// one of their children. Children are returned unfiltered; an empty query
// returns the whole catalog.
func (s *Store) Search(ctx context.Context, query string) ([]option.Option[catalog.Record], error) {
	tree, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return tree, nil
	}
	ids, err := s.Match(ctx, query)
	if err != nil {
		return nil, err
	}
	return filter(tree, ids), nil
}

// Searcher adapts the store to the picker's async search. Identical queries
// in flight at the same time share one database round trip.
func (s *Store) Searcher() search.AsyncFunc[catalog.Record] {
	return s.searcher(s.Match)
}

type matchFunc func(ctx context.Context, query string) (map[string]struct{}, error)

func (s *Store) searcher(match matchFunc) search.AsyncFunc[catalog.Record] {
	var group singleflight.Group
	return func(ctx context.Context, opts []option.Option[catalog.Record], query string) ([]option.Option[catalog.Record], error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// The shared call outlives any single caller; each caller stops
		// waiting on its own context.
		shared := context.WithoutCancel(ctx)
		ch := group.DoChan(query, func() (any, error) {
			return match(shared, query)
		})

		var res singleflight.Result
		select {
		case <-ctx.Done():
			s.log.Debug("option search abandoned", "query", query, "error", ctx.Err())
			return nil, ctx.Err()
		case res = <-ch:
		}
		if res.Err != nil {
			s.log.Warn("option search failed", "query", query, "error", res.Err)
			return nil, res.Err
		}
		ids := res.Val.(map[string]struct{})
		s.log.Debug("option search", "query", query, "matches", len(ids), "shared", res.Shared)
		return filter(opts, ids), nil
	}
}

// filter keeps the options in ids, and menus with a child in ids.
func filter(opts []option.Option[catalog.Record], ids map[string]struct{}) []option.Option[catalog.Record] {
	out := make([]option.Option[catalog.Record], 0, len(opts))
	for _, o := range opts {
		if _, ok := ids[o.Value.ID]; ok {
			out = append(out, o)
			continue
		}
		for _, child := range o.SubMenu {
			if _, ok := ids[child.Value.ID]; ok {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func shortest(words []string) int {
	n := -1
	for _, w := range words {
		if c := utf8.RuneCountInString(w); n < 0 || c < n {
			n = c
		}
	}
	return n
}

// escapeFTSQuery quotes each word for trigram substring matching, with an
// implicit AND between words.
func escapeFTSQuery(words []string) string {
	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = `"` + strings.ReplaceAll(word, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
