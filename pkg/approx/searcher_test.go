package approx

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
	"github.com/bastiangx/approxdict/pkg/trie"
)

type entry struct {
	word string
	freq uint32
}

func buildView(t testing.TB, entries ...entry) *trie.View {
	t.Helper()
	b := trie.NewBuilder()
	for _, e := range entries {
		b.Insert(e.word, e.freq)
	}
	data, err := b.Encode()
	require.NoError(t, err)
	v, err := trie.NewView(data)
	require.NoError(t, err)
	require.NoError(t, v.Validate())
	return v
}

// osa is the textbook optimal string alignment distance.
func osa(a, b string) uint32 {
	d := make([][]uint32, len(a)+1)
	for i := range d {
		d[i] = make([]uint32, len(b)+1)
		d[i][0] = uint32(i)
	}
	for j := range d[0] {
		d[0][j] = uint32(j)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := uint32(1)
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}
	return d[len(a)][len(b)]
}

func TestSearchScenarios(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		query   string
		maxDist uint32
		want    string
	}{
		{
			name:    "shared prefix",
			entries: []entry{{"test", 10}, {"text", 5}, {"tent", 1}, {"tests", 2}},
			query:   "test",
			maxDist: 1,
			want: `[{"word":"test","freq":10,"distance":0},{"word":"text","freq":5,"distance":1},` +
				`{"word":"tests","freq":2,"distance":1},{"word":"tent","freq":1,"distance":1}]` + "\n",
		},
		{
			name:    "pruned",
			entries: []entry{{"cat", 3}},
			query:   "dog",
			maxDist: 1,
			want:    "[]\n",
		},
		{
			name:    "transposition",
			entries: []entry{{"form", 4}, {"from", 9}},
			query:   "from",
			maxDist: 1,
			want:    `[{"word":"from","freq":9,"distance":0},{"word":"form","freq":4,"distance":1}]` + "\n",
		},
		{
			name:    "empty dictionary",
			query:   "anything",
			maxDist: 3,
			want:    "[]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearcher(buildView(t, tt.entries...))
			results, err := s.Search(tt.query, tt.maxDist)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, WriteJSON(&buf, results))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSearchExactMatch(t *testing.T) {
	words := []entry{{"alpha", 1}, {"alphabet", 2}, {"alps", 3}, {"beta", 4}, {"bet", 5}}
	s := NewSearcher(buildView(t, words...))

	for _, w := range words {
		results, err := s.Search(w.word, 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, Result{Word: w.word, Freq: w.freq, Distance: 0}, results[0])
	}

	results, err := s.Search("alph", 0)
	require.NoError(t, err)
	assert.Empty(t, results, "non-terminal prefix is not a word")
}

func TestSearchEmptyQuery(t *testing.T) {
	s := NewSearcher(buildView(t, entry{"a", 1}, entry{"ab", 2}, entry{"abc", 3}))
	results, err := s.Search("", 2)
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Word: "a", Freq: 1, Distance: 1},
		{Word: "ab", Freq: 2, Distance: 2},
	}, results)
}

func TestSearchZeroFrequencyIsNotAWord(t *testing.T) {
	s := NewSearcher(buildView(t, entry{"tent", 0}, entry{"tents", 4}))
	results, err := s.Search("tent", 1)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Word: "tents", Freq: 4, Distance: 1}}, results)
}

// Every word within the bound is reported with its exact distance and no
// other word is, on random dictionaries over a small alphabet.
func TestSearchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = "abcde"[rng.Intn(5)]
		}
		return string(b)
	}

	for round := 0; round < 30; round++ {
		dict := make(map[string]uint32)
		var entries []entry
		for i := 0; i < 200; i++ {
			w := random(1 + rng.Intn(7))
			f := uint32(1 + rng.Intn(100))
			dict[w] = f
			entries = append(entries, entry{w, f})
		}
		s := NewSearcher(buildView(t, entries...))

		for q := 0; q < 20; q++ {
			query := random(rng.Intn(8))
			maxDist := uint32(rng.Intn(4))

			var want []Result
			for w, f := range dict {
				if d := osa(w, query); d <= maxDist {
					want = append(want, Result{Word: w, Freq: f, Distance: d})
				}
			}
			Sort(want)

			got, err := s.Search(query, maxDist)
			require.NoError(t, err)
			if len(want) == 0 {
				require.Empty(t, got, "query %q within %d", query, maxDist)
				continue
			}
			require.Equal(t, want, got, "query %q within %d", query, maxDist)
		}
	}
}

func TestSearchQueryTooLong(t *testing.T) {
	s := NewSearcher(buildView(t, entry{"word", 1}), WithMaxQueryLen(8))
	assert.Equal(t, 8, s.MaxQueryLen())

	_, err := s.Search(strings.Repeat("x", 9), 1)
	require.ErrorIs(t, err, approxerrors.ErrQueryTooLong)

	_, err = s.Search(strings.Repeat("x", 8), 1)
	require.NoError(t, err)
}

func TestSearchDistanceTooLarge(t *testing.T) {
	s := NewSearcher(buildView(t, entry{"word", 1}))
	_, err := s.Search("word", ^uint32(0))
	require.ErrorIs(t, err, approxerrors.ErrDistanceTooLarge)
}

func TestSearcherOptions(t *testing.T) {
	s := NewSearcher(buildView(t), WithMaxQueryLen(0), WithWorkers(3))
	assert.Equal(t, DefaultMaxQueryLen, s.MaxQueryLen())
	assert.Equal(t, 3, s.Workers())

	var _ ISearcher = s
}

func TestSearchAfterMappingClosed(t *testing.T) {
	b := trie.NewBuilder()
	b.Insert("word", 1)
	data, err := b.Encode()
	require.NoError(t, err)
	m, err := trie.OpenBytes(data, trie.OpenOptions{})
	require.NoError(t, err)

	s := NewSearcher(m.View(), WithMapping(m))
	results, err := s.Search("ward", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	require.NoError(t, m.Close())
	_, err = s.Search("ward", 1)
	require.ErrorIs(t, err, approxerrors.ErrMappingClosed)

	_, err = s.SearchBatch(context.Background(), []Query{{Word: "ward", MaxDistance: 1}})
	require.ErrorIs(t, err, approxerrors.ErrMappingClosed)
}
