package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// maxLineSize bounds a single word list line.
const maxLineSize = 1 << 20

// ReadStats summarises one pass over a word list.
type ReadStats struct {
	Lines     int
	Entries   int
	Malformed int
}

// Reader streams entries out of a word list.
type Reader struct {
	r      io.Reader
	logger *log.Logger
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, logger: log.Default()}
}

// WithLogger sets the logger that receives warnings about malformed lines.
func (r *Reader) WithLogger(l *log.Logger) *Reader {
	r.logger = l
	return r
}

// Each calls fn for every well-formed entry, in input order. Blank lines are
// ignored, malformed lines are logged and counted. An error from fn stops the
// pass and is returned as is.
func (r *Reader) Each(fn func(Entry) error) (ReadStats, error) {
	var stats ReadStats
	sc := bufio.NewScanner(r.r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		stats.Lines++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}

		e, err := ParseEntry(line)
		if err != nil {
			if !errors.Is(err, approxerrors.ErrMalformedEntry) {
				return stats, err
			}
			stats.Malformed++
			r.logger.Warn("Skipping malformed entry", "line", stats.Lines, "err", err)
			continue
		}

		stats.Entries++
		if err := fn(e); err != nil {
			return stats, err
		}
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("read word list at line %d: %w", stats.Lines+1, err)
	}
	return stats, nil
}
