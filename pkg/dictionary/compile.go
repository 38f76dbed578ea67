package dictionary

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/approxdict/internal/utils"
	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
	"github.com/bastiangx/approxdict/pkg/trie"
)

// CompileOptions controls how a word list becomes a trie.
type CompileOptions struct {
	// Canonical stages the entries in a WordSet and inserts them sorted, so
	// the output does not depend on input order and duplicates collapse.
	// Otherwise entries are inserted as read and the last duplicate wins.
	Canonical bool
	// Logger receives malformed line warnings. Defaults to the global logger.
	Logger *log.Logger
}

// CompileStats describes one compilation.
type CompileStats struct {
	ReadStats
	Words     int
	Nodes     int
	ArenaSize int
	Bytes     int64
	Elapsed   time.Duration
}

// Build reads a word list from r into a trie Builder.
func Build(r io.Reader, opts CompileOptions) (*trie.Builder, CompileStats, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	b := trie.NewBuilder()
	var set *WordSet
	insert := func(e Entry) error {
		b.Insert(e.Word, e.Freq)
		return nil
	}
	if opts.Canonical {
		set = NewWordSet()
		insert = func(e Entry) error {
			set.Add(e)
			return nil
		}
	}

	read, err := NewReader(r).WithLogger(logger).Each(insert)
	stats := CompileStats{ReadStats: read}
	if err != nil {
		return nil, stats, err
	}

	stats.Words = read.Entries
	if set != nil {
		for _, e := range set.Entries() {
			b.Insert(e.Word, e.Freq)
		}
		stats.Words = set.Len()
	}
	stats.Nodes = b.Nodes()
	stats.ArenaSize = b.ArenaSize()
	stats.Elapsed = time.Since(start)
	return b, stats, nil
}

// Compile reads a word list from r and writes the encoded trie to w.
func Compile(r io.Reader, w io.Writer, opts CompileOptions) (CompileStats, error) {
	start := time.Now()
	b, stats, err := Build(r, opts)
	if err != nil {
		return stats, err
	}

	n, err := b.WriteTo(w)
	stats.Bytes = n
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("write dictionary: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Debugf("Compiled %d words (%d lines, %d malformed) into %d nodes, %d bytes in %v",
		stats.Words, stats.Lines, stats.Malformed, stats.Nodes, stats.Bytes, stats.Elapsed)
	return stats, nil
}

// CompileFile compiles the word list at src into dst. The output is written
// to a temporary file next to dst and renamed into place, so readers never
// observe a partial dictionary. A src that is itself a compiled dictionary
// fails with ErrAlreadyCompiled whatever its name.
func CompileFile(src, dst string, opts CompileOptions) (CompileStats, error) {
	if format, err := DetectFileFormat(src); err == nil && format == FormatTrie {
		return CompileStats{}, fmt.Errorf("compile %s: %w", src, approxerrors.ErrAlreadyCompiled)
	}

	in, err := os.Open(src)
	if err != nil {
		return CompileStats{}, fmt.Errorf("open word list: %w", err)
	}
	defer in.Close()

	var stats CompileStats
	err = utils.WriteFileAtomic(dst, 0o644, func(w io.Writer) error {
		var err error
		stats, err = Compile(in, w, opts)
		return err
	})
	if err != nil {
		return stats, fmt.Errorf("write dictionary: %w", err)
	}
	return stats, nil
}
