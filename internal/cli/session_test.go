package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/trie"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
		ok   bool
	}{
		{"approx 1 test", Command{"test", 1}, true},
		{"approx 0 new york", Command{"new york", 0}, true},
		{"approx 2 word\r", Command{"word", 2}, true},
		{"approx 3  lead", Command{" lead", 3}, true},
		{"approx 4294967294 x", Command{"x", 4294967294}, true},
		{"approx 4294967295 x", Command{}, false},
		{"approx 99999999999 x", Command{}, false},
		{"approx -1 x", Command{}, false},
		{"approx 1x word", Command{}, false},
		{"approx  1 word", Command{}, false},
		{"approx 1 ", Command{}, false},
		{"approx 1", Command{}, false},
		{"approx", Command{}, false},
		{"search 1 word", Command{}, false},
		{"APPROX 1 word", Command{}, false},
		{"", Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseCommand(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newSearcher(t *testing.T, opts ...approx.Option) *approx.Searcher {
	t.Helper()
	b := trie.NewBuilder()
	b.Insert("test", 10)
	b.Insert("text", 5)
	b.Insert("tent", 1)
	b.Insert("tests", 2)
	data, err := b.Encode()
	require.NoError(t, err)
	v, err := trie.NewView(data)
	require.NoError(t, err)
	return approx.NewSearcher(v, opts...)
}

func TestSessionRun(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"approx 1 test",
		"garbage",
		"approx 0 nothing",
		"approx 9999999999 test",
		"approx 0 tent",
	}, "\n"))
	var out bytes.Buffer

	s := NewSession(newSearcher(t), in, &out)
	require.NoError(t, s.Run())

	assert.Equal(t,
		`[{"word":"test","freq":10,"distance":0},{"word":"text","freq":5,"distance":1},{"word":"tests","freq":2,"distance":1},{"word":"tent","freq":1,"distance":1}]`+"\n"+
			"[]\n"+
			`[{"word":"tent","freq":1,"distance":0}]`+"\n",
		out.String())

	queries, skipped, rejected := s.Stats()
	assert.Equal(t, 3, queries)
	assert.Equal(t, 2, skipped)
	assert.Zero(t, rejected)
}

func TestSessionAnswersRejectedQueries(t *testing.T) {
	lines := []string{
		"approx 1 test",
		"approx 0 " + strings.Repeat("a", 300),
		"garbage",
		"approx 0 test",
	}
	var out bytes.Buffer

	s := NewSession(newSearcher(t), strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, s.Run())

	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, got, 3, "one line per valid command")
	assert.Equal(t, "[]", got[1])
	assert.Equal(t, `[{"word":"test","freq":10,"distance":0}]`, got[2])

	queries, skipped, rejected := s.Stats()
	assert.Equal(t, 2, queries)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, rejected)
}

func TestSessionRejectsPastConfiguredLimit(t *testing.T) {
	in := strings.NewReader("approx 1 testtesttest\napprox 0 test\n")
	var out bytes.Buffer

	s := NewSession(newSearcher(t, approx.WithMaxQueryLen(5)), in, &out)
	require.NoError(t, s.Run())
	assert.Equal(t, "[]\n"+`[{"word":"test","freq":10,"distance":0}]`+"\n", out.String())
}

func TestSessionEmptyInput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewSession(newSearcher(t), strings.NewReader(""), &out).Run())
	assert.Empty(t, out.String())
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken stdin") }

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("broken stdout") }

func TestSessionIOErrors(t *testing.T) {
	err := NewSession(newSearcher(t), errReader{}, &bytes.Buffer{}).Run()
	assert.EqualError(t, err, "broken stdin")

	err = NewSession(newSearcher(t), strings.NewReader("approx 0 test\n"), errWriter{}).Run()
	assert.EqualError(t, err, "broken stdout")
}

// stubSearcher records the queries a session forwards.
type stubSearcher struct {
	got []Command
}

func (s *stubSearcher) Search(query string, maxDist uint32) ([]approx.Result, error) {
	s.got = append(s.got, Command{query, maxDist})
	return nil, nil
}

func (s *stubSearcher) SearchBatch(context.Context, []approx.Query) ([][]approx.Result, error) {
	return nil, nil
}

func (s *stubSearcher) MaxQueryLen() int { return approx.DefaultMaxQueryLen }

func TestSessionForwardsCommands(t *testing.T) {
	stub := &stubSearcher{}
	var out bytes.Buffer
	in := strings.NewReader("approx 2 a b c\r\napprox 0 x\n")
	require.NoError(t, NewSession(stub, in, &out).Run())

	assert.Equal(t, []Command{{"a b c", 2}, {"x", 0}}, stub.got)
	assert.Equal(t, "[]\n[]\n", out.String())
}
