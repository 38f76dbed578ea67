// Package dictionary reads word lists and compiles them into encoded tries.
//
// A word list has one entry per line, the word and its frequency separated
// by a single tab:
//
//	hello	1204
//	help	877
//
// The word is taken verbatim up to the first tab, so it may contain spaces.
// The frequency is a base-10 uint32; a frequency of 0 keeps the path in the
// trie without making it a word.
package dictionary

import (
	"fmt"
	"strconv"
	"strings"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// Entry is one (word, frequency) pair of a word list.
type Entry struct {
	Word string
	Freq uint32
}

// ParseEntry parses one word list line.
func ParseEntry(line string) (Entry, error) {
	word, freq, ok := strings.Cut(line, "\t")
	if !ok {
		return Entry{}, fmt.Errorf("no tab in %q: %w", line, approxerrors.ErrMalformedEntry)
	}
	if word == "" {
		return Entry{}, fmt.Errorf("empty word in %q: %w", line, approxerrors.ErrMalformedEntry)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(freq), 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("frequency of %q: %w: %w", word, approxerrors.ErrMalformedEntry, err)
	}
	return Entry{Word: word, Freq: uint32(n)}, nil
}
