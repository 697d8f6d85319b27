package search

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/picker/internal/option"
)

// Mode selects how a query is turned into results.
type Mode int

const (
	ModeOff Mode = iota
	ModeSync
	ModeAsync
)

// AsyncFunc resolves a query off the update loop (network, database, heavy
// computation). It should honour ctx cancellation but is not required to.
type AsyncFunc[T any] func(ctx context.Context, opts []option.Option[T], query string) ([]option.Option[T], error)

// DebounceMsg is delivered once a query has settled. Only the message
// carrying the latest version commits the query.
type DebounceMsg struct {
	ID      uint64
	Version int
}

// ResultMsg carries the outcome of an async query. Results whose Seq is not
// the searcher's latest issued sequence are discarded.
type ResultMsg[T any] struct {
	ID      uint64
	Seq     int
	Query   string
	Options []option.Option[T]
	Err     error
}

// Config configures a Searcher.
type Config[T any] struct {
	Mode     Mode
	Matcher  Matcher[T]
	Async    AsyncFunc[T]
	Debounce time.Duration
}

var searcherCounter uint64

// Searcher owns the query, the committed result set and the loading flag
// of one picker. It is driven from a bubbletea update loop and is not safe
// for concurrent use.
type Searcher[T any] struct {
	id  uint64
	cfg Config[T]

	options []option.Option[T]
	deep    bool

	query     string // as typed
	committed string // query the results belong to
	results   []option.Option[T]
	loading   bool
	err       error

	version int // debounce generation
	seq     int // async issuance counter
	cancel  context.CancelFunc
}

// NewSearcher creates a searcher over an empty option set.
func NewSearcher[T any](cfg Config[T]) *Searcher[T] {
	return &Searcher[T]{
		id:  atomic.AddUint64(&searcherCounter, 1),
		cfg: cfg,
	}
}

// Query returns the query as typed.
func (s *Searcher[T]) Query() string { return s.query }

// Committed returns the query whose results are currently displayed.
func (s *Searcher[T]) Committed() string { return s.committed }

// Results returns the committed result set.
func (s *Searcher[T]) Results() []option.Option[T] { return s.results }

// Loading reports whether an async query is in flight.
func (s *Searcher[T]) Loading() bool { return s.loading }

// Err returns the error of the last failed async query, cleared by the next
// commit.
func (s *Searcher[T]) Err() error { return s.err }

// Mode returns the configured search mode.
func (s *Searcher[T]) Mode() Mode { return s.cfg.Mode }

// Reset replaces the option set and clears the query. Any in-flight async
// result becomes stale.
func (s *Searcher[T]) Reset(opts []option.Option[T], deep bool) {
	s.options = opts
	s.deep = deep
	s.query = ""
	s.committed = ""
	s.version++
	s.invalidate()
	s.results = opts
	s.err = nil
}

// SetOptions replaces the option set and re-applies the committed query to
// it. The typed query is kept.
func (s *Searcher[T]) SetOptions(opts []option.Option[T], deep bool) tea.Cmd {
	s.options = opts
	s.deep = deep
	return s.commit(s.committed)
}

// SetQuery records a keystroke and schedules the trailing-edge commit. Every
// call supersedes the pending one.
func (s *Searcher[T]) SetQuery(q string) tea.Cmd {
	if q == s.query {
		return nil
	}
	s.query = q
	s.version++
	msg := DebounceMsg{ID: s.id, Version: s.version}
	if s.cfg.Debounce <= 0 {
		// Deferred by one loop iteration so typing stays responsive.
		return func() tea.Msg { return msg }
	}
	return tea.Tick(s.cfg.Debounce, func(time.Time) tea.Msg { return msg })
}

// HandleDebounce commits the typed query if msg is the latest debounce tick.
// It reports whether the message belonged to this searcher and was current.
func (s *Searcher[T]) HandleDebounce(msg DebounceMsg) (bool, tea.Cmd) {
	if msg.ID != s.id || msg.Version != s.version {
		return false, nil
	}
	return true, s.commit(s.query)
}

// HandleResult applies an async result. Stale or foreign results are
// dropped and reported as not applied. On failure the previous results are
// retained, loading is cleared and the error is returned.
func (s *Searcher[T]) HandleResult(msg ResultMsg[T]) (bool, error) {
	if msg.ID != s.id || msg.Seq != s.seq {
		return false, nil
	}
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if msg.Err != nil {
		s.err = msg.Err
		return false, msg.Err
	}
	s.results = msg.Options
	return true, nil
}

// Owns reports whether msg was produced by this searcher.
func (s *Searcher[T]) Owns(msg ResultMsg[T]) bool {
	return msg.ID == s.id
}

func (s *Searcher[T]) commit(q string) tea.Cmd {
	s.committed = q
	s.err = nil

	if q == "" || s.cfg.Mode == ModeOff {
		s.invalidate()
		s.results = s.options
		return nil
	}

	switch s.cfg.Mode {
	case ModeAsync:
		return s.issue(q)
	default:
		s.invalidate()
		s.results = Filter(s.cfg.Matcher, s.options, q, s.deep)
		return nil
	}
}

// invalidate makes any in-flight async query stale.
func (s *Searcher[T]) invalidate() {
	s.seq++
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher[T]) issue(q string) tea.Cmd {
	s.invalidate()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true

	fn := s.cfg.Async
	opts := s.options
	id, seq := s.id, s.seq
	return func() tea.Msg {
		out, err := fn(ctx, opts, q)
		return ResultMsg[T]{ID: id, Seq: seq, Query: q, Options: out, Err: err}
	}
}
