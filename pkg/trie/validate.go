package trie

import (
	"fmt"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// Validate checks every record of the View against the bounds of its buffer.
//
// The read path never checks offsets, so a corrupted file makes searches
// panic on an out-of-range slice. Validate turns that into an ErrCorrupt
// before any query runs. It is O(records) and allocation free.
func (v *View) Validate() error {
	if len(v.recs)%recordSize != 0 {
		return fmt.Errorf("record section of %d bytes is not a multiple of %d: %w",
			len(v.recs), recordSize, approxerrors.ErrCorrupt)
	}

	root := v.Root()
	if v.field(root, fieldOffset) != 0 || v.field(root, fieldLength) != 0 {
		return fmt.Errorf("root record carries a label: %w", approxerrors.ErrCorrupt)
	}

	strs := uint64(len(v.strs))
	recs := uint64(v.n)
	for i := 0; i < v.n; i++ {
		e := Edge(i)
		off := uint64(v.field(e, fieldOffset))
		length := uint64(v.field(e, fieldLength))
		if off+length > strs {
			return fmt.Errorf("record %d: label [%d, %d) outside string section of %d bytes: %w",
				i, off, off+length, strs, approxerrors.ErrCorrupt)
		}
		if i > 0 && length == 0 {
			return fmt.Errorf("record %d: empty label: %w", i, approxerrors.ErrCorrupt)
		}

		count := uint64(v.field(e, fieldChildCount))
		if count == 0 {
			continue
		}
		displacement := uint64(v.field(e, fieldChildOffset))
		if displacement == 0 {
			return fmt.Errorf("record %d: %d children at displacement 0: %w", i, count, approxerrors.ErrCorrupt)
		}
		if uint64(i)+displacement+count > recs {
			return fmt.Errorf("record %d: children [%d, %d) outside %d records: %w",
				i, uint64(i)+displacement, uint64(i)+displacement+count, recs, approxerrors.ErrCorrupt)
		}
	}
	return nil
}
