package trie

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

const (
	headerSize = 4
	recordSize = 5 * 4
)

// Encode serializes the trie into a fresh byte slice
func (b *Builder) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(b.EncodedSize())
	if _, err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodedSize is the exact byte size WriteTo produces
func (b *Builder) EncodedSize() int {
	return headerSize + b.strs.len() + (b.Edges()+1)*recordSize
}

// WriteTo writes the encoded trie to w.
//
// Records are emitted breadth-first, one level after the other, keeping the
// sibling order of each node. The output only depends on the insertion order.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	if uint64(b.strs.len()) > math.MaxUint32 || uint64(b.Edges())+1 > math.MaxUint32 {
		return 0, fmt.Errorf("encode trie (%d label bytes, %d edges): %w",
			b.strs.len(), b.Edges(), approxerrors.ErrDictionaryTooLarge)
	}

	bw := bufio.NewWriter(w)
	var written int64
	rec := make([]byte, 0, recordSize)

	put := func(p []byte) error {
		n, err := bw.Write(p)
		written += int64(n)
		return err
	}
	record := func(offset, length int, freq uint32, count, displacement int) error {
		rec = rec[:0]
		rec = binary.LittleEndian.AppendUint32(rec, uint32(offset))
		rec = binary.LittleEndian.AppendUint32(rec, uint32(length))
		rec = binary.LittleEndian.AppendUint32(rec, freq)
		rec = binary.LittleEndian.AppendUint32(rec, uint32(count))
		rec = binary.LittleEndian.AppendUint32(rec, uint32(displacement))
		return put(rec)
	}

	if err := put(binary.LittleEndian.AppendUint32(nil, uint32(b.strs.len()))); err != nil {
		return written, err
	}
	if err := put(b.strs.buf); err != nil {
		return written, err
	}

	root := &b.nodes[rootNode]
	rootDisplacement := 0
	if len(root.edges) > 0 {
		rootDisplacement = 1
	}
	// The synthetic root record never carries a frequency.
	if err := record(0, 0, 0, len(root.edges), rootDisplacement); err != nil {
		return written, err
	}

	level := []int{rootNode}
	levelCount := len(root.edges)

	for len(level) > 0 {
		var next []int
		i := 0
		nextCount := 0

		for _, n := range level {
			for _, e := range b.nodes[n].edges {
				target := &b.nodes[e.target]
				displacement := 0
				if len(target.edges) > 0 {
					// Skip the rest of this level, then the children already
					// promised to earlier records of this level.
					displacement = (levelCount - i) + nextCount
				}
				if err := record(e.offset, e.length, target.freq, len(target.edges), displacement); err != nil {
					return written, err
				}
				i++
				nextCount += len(target.edges)
				next = append(next, e.target)
			}
		}

		level = next
		levelCount = nextCount
	}

	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}
