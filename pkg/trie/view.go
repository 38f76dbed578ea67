package trie

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// Record field positions, in uint32 words.
const (
	fieldOffset = iota
	fieldLength
	fieldFrequency
	fieldChildCount
	fieldChildOffset
)

// Edge is the index of a record in a View. The synthetic root is Edge 0.
type Edge uint32

// View is a read-only interpretation of an encoded trie.
//
// A View never copies or owns its buffer: labels returned by Label alias it,
// and the buffer must stay valid and unmodified for as long as the View or
// anything derived from it is in use. A View is safe for concurrent use.
type View struct {
	data []byte
	strs []byte
	recs []byte
	n    int
}

// NewView wraps an encoded trie. Only the header is read; records and labels
// are trusted as-is (see Validate).
func NewView(data []byte) (*View, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("read header (%d bytes): %w", len(data), approxerrors.ErrTruncated)
	}
	size := uint64(binary.LittleEndian.Uint32(data))
	if headerSize+size+recordSize > uint64(len(data)) {
		return nil, fmt.Errorf("string section of %d bytes in a %d byte dictionary: %w",
			size, len(data), approxerrors.ErrTruncated)
	}

	recs := data[headerSize+size:]
	return &View{
		data: data,
		strs: data[headerSize : headerSize+size],
		recs: recs,
		n:    len(recs) / recordSize,
	}, nil
}

func (v *View) field(e Edge, f int) uint32 {
	return binary.LittleEndian.Uint32(v.recs[int(e)*recordSize+f*4:])
}

// Root - synthetic root record
func (v *View) Root() Edge {
	return 0
}

// FirstChild returns the leftmost child of e. The result is only meaningful
// when ChildCount(e) > 0; the remaining children follow it contiguously.
func (v *View) FirstChild(e Edge) Edge {
	return e + Edge(v.field(e, fieldChildOffset))
}

// ChildCount returns the number of children of e
func (v *View) ChildCount(e Edge) uint32 {
	return v.field(e, fieldChildCount)
}

// Frequency returns the frequency of the word ending with e, or 0.
func (v *View) Frequency(e Edge) uint32 {
	return v.field(e, fieldFrequency)
}

// Label returns the bytes labelling e. The slice aliases the View's buffer
// and must not be modified.
func (v *View) Label(e Edge) []byte {
	off := v.field(e, fieldOffset)
	return v.strs[off : off+v.field(e, fieldLength)]
}

// Len counts records, root included
func (v *View) Len() int {
	return v.n
}

func (v *View) StringsSize() int {
	return len(v.strs)
}

// Size of the whole encoded trie in bytes
func (v *View) Size() int {
	return len(v.data)
}

// Digest returns the xxhash64 of the encoded trie, used to tell
// dictionaries apart in logs and info responses.
func (v *View) Digest() uint64 {
	return xxhash.Sum64(v.data)
}

// Walk calls fn for every word of the trie in depth-first, sibling order.
// The word slice is reused between calls. Walk stops early when fn returns false.
func (v *View) Walk(fn func(word []byte, freq uint32) bool) {
	buf := make([]byte, 0, 64)
	v.walk(v.Root(), buf, fn)
}

func (v *View) walk(e Edge, word []byte, fn func([]byte, uint32) bool) bool {
	count := v.ChildCount(e)
	if count == 0 {
		return true
	}
	child := v.FirstChild(e)
	for i := uint32(0); i < count; i++ {
		c := child + Edge(i)
		w := append(word, v.Label(c)...)
		if f := v.Frequency(c); f != 0 && !fn(w, f) {
			return false
		}
		if !v.walk(c, w, fn) {
			return false
		}
	}
	return true
}

// Words returns the number of words in the trie. It visits every record.
func (v *View) Words() int {
	words := 0
	for e := 1; e < v.n; e++ {
		if v.Frequency(Edge(e)) != 0 {
			words++
		}
	}
	return words
}
