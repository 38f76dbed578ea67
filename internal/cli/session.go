// Package cli runs the line-oriented search session behind `approxdict search`.
package cli

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/approxdict/internal/logger"
	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/distance"
)

// Command is one parsed session line.
type Command struct {
	Word        string
	MaxDistance uint32
}

// ParseCommand parses a line of the form
//
//	approx <max_dist> <word>
//
// Fields are separated by single spaces. The word is the rest of the line
// and may itself contain spaces. The distance must be a base-10 integer no
// larger than distance.MaxDistance.
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSuffix(line, "\r")

	cmd, rest, ok := strings.Cut(line, " ")
	if !ok || cmd != "approx" {
		return Command{}, false
	}
	dist, word, ok := strings.Cut(rest, " ")
	if !ok || word == "" {
		return Command{}, false
	}
	n, err := strconv.ParseUint(dist, 10, 32)
	if err != nil || n > distance.MaxDistance {
		return Command{}, false
	}
	return Command{Word: word, MaxDistance: uint32(n)}, true
}

// Session answers approx commands read from in with one JSON array per
// command written to out.
type Session struct {
	searcher approx.ISearcher
	in       *bufio.Reader
	out      *bufio.Writer
	logger   *log.Logger
	queries  int
	skipped  int
	rejected int
}

// NewSession creates a session over the given searcher and streams.
func NewSession(s approx.ISearcher, in io.Reader, out io.Writer) *Session {
	return &Session{
		searcher: s,
		in:       bufio.NewReader(in),
		out:      bufio.NewWriter(out),
		logger:   logger.New("session"),
	}
}

// Run processes lines until in is exhausted. Lines that are not valid
// commands are skipped. Every valid command gets exactly one JSON array, an
// empty one when the searcher rejects the query. Only read and write errors
// are returned.
func (s *Session) Run() error {
	for {
		line, err := s.in.ReadString('\n')
		if line != "" {
			if werr := s.handle(strings.TrimSuffix(line, "\n")); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			s.logger.Debug("Session finished", "queries", s.queries, "skipped", s.skipped, "rejected", s.rejected)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) handle(line string) error {
	cmd, ok := ParseCommand(line)
	if !ok {
		s.skipped++
		s.logger.Debugf("Skipping line %q", line)
		return nil
	}

	start := time.Now()
	results, err := s.searcher.Search(cmd.Word, cmd.MaxDistance)
	if err != nil {
		// A rejected command still gets its line
		s.rejected++
		s.logger.Warn("Query rejected", "word", cmd.Word, "err", err)
		results = nil
	} else {
		s.queries++
	}
	s.logger.Debugf("Took [ %v ] for %q within %d: %d results", time.Since(start), cmd.Word, cmd.MaxDistance, len(results))

	if err := approx.WriteJSON(s.out, results); err != nil {
		return err
	}
	return s.out.Flush()
}

// Stats returns the number of answered, skipped and rejected lines so far.
func (s *Session) Stats() (queries, skipped, rejected int) {
	return s.queries, s.skipped, s.rejected
}
