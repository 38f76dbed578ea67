package approx

import (
	"fmt"
	"runtime"

	"github.com/bastiangx/approxdict/pkg/distance"
	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
	"github.com/bastiangx/approxdict/pkg/trie"
	"github.com/charmbracelet/log"
)

// DefaultMaxQueryLen bounds the query length, and with it the row width and
// the depth of the traversal.
const DefaultMaxQueryLen = 256

// Searcher answers approximate queries against a trie View.
// It keeps no per-query state and is safe for concurrent use.
type Searcher struct {
	view        *trie.View
	mapping     *trie.Mapping
	maxQueryLen int
	workers     int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithMaxQueryLen sets the longest accepted query. Non-positive values keep
// the default.
func WithMaxQueryLen(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.maxQueryLen = n
		}
	}
}

// WithWorkers bounds the number of queries SearchBatch runs at once.
// Non-positive values mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMapping ties the Searcher to the mapping that owns its View. Queries
// fail with ErrMappingClosed once the mapping is closed instead of reading
// unmapped memory.
func WithMapping(m *trie.Mapping) Option {
	return func(s *Searcher) {
		s.mapping = m
	}
}

// NewSearcher creates a Searcher over v. The View's buffer must outlive it.
func NewSearcher(v *trie.View, opts ...Option) *Searcher {
	s := &Searcher{
		view:        v,
		maxQueryLen: DefaultMaxQueryLen,
		workers:     runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxQueryLen returns the longest accepted query in bytes
func (s *Searcher) MaxQueryLen() int {
	return s.maxQueryLen
}

func (s *Searcher) Workers() int {
	return s.workers
}

// Search returns every word of the dictionary whose Damerau-Levenshtein
// distance (optimal string alignment) to query is at most maxDist, sorted
// by Less.
func (s *Searcher) Search(query string, maxDist uint32) ([]Result, error) {
	if s.mapping != nil {
		if err := s.mapping.Err(); err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}
	}
	if len(query) > s.maxQueryLen {
		return nil, fmt.Errorf("query of %d bytes, limit %d: %w", len(query), s.maxQueryLen, approxerrors.ErrQueryTooLong)
	}
	if maxDist > distance.MaxDistance {
		return nil, fmt.Errorf("distance %d, limit %d: %w", maxDist, uint32(distance.MaxDistance), approxerrors.ErrDistanceTooLarge)
	}

	w := walker{
		view:    s.view,
		rows:    distance.NewStack([]byte(query), maxDist),
		maxDist: maxDist,
		results: make([]Result, 0),
	}
	w.children(s.view.Root(), w.rows.Root())

	Sort(w.results)
	log.Debugf("approx %q within %d: %d results", query, maxDist, len(w.results))
	return w.results, nil
}

// walker carries the state of one query through the trie.
type walker struct {
	view    *trie.View
	rows    *distance.Stack
	maxDist uint32
	results []Result
	word    []byte
}

// children visits every child edge of e, all sharing row as their parent.
func (w *walker) children(e trie.Edge, row *distance.Row) {
	count := w.view.ChildCount(e)
	if count == 0 {
		return
	}
	first := w.view.FirstChild(e)
	for i := uint32(0); i < count; i++ {
		w.follow(first+trie.Edge(i), row)
	}
}

// follow extends row with the label of e, records the word ending there and
// descends. A dead row abandons the edge and its subtree.
func (w *walker) follow(e trie.Edge, row *distance.Row) {
	for _, c := range w.view.Label(e) {
		row = w.rows.Extend(row, c)
		if row.Dead() {
			return
		}
	}

	if freq := w.view.Frequency(e); freq != 0 && row.Distance() <= w.maxDist {
		w.word = row.AppendWord(w.word[:0])
		w.results = append(w.results, Result{
			Word:     string(w.word),
			Freq:     freq,
			Distance: row.Distance(),
		})
	}
	w.children(e, row)
}
