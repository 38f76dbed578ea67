package trie

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// Mapping owns the buffer behind a View: either a read-only memory mapping
// of a dictionary file or a caller-supplied byte slice.
//
// Close must only be called once every query using the View has returned.
// After Close the View must not be used.
type Mapping struct {
	mmap   mmap.MMap
	view   *View
	closed atomic.Bool
}

// OpenOptions tunes how a dictionary file is loaded.
type OpenOptions struct {
	// Verify runs View.Validate before returning.
	Verify bool
	// Prefault asks the kernel to read the mapping ahead of the first query.
	Prefault bool
}

// Open maps the dictionary at path read-only. The file descriptor is closed
// before Open returns; the mapping stays valid until Close.
func Open(path string) (*Mapping, error) {
	return OpenWithOptions(path, OpenOptions{})
}

// OpenWithOptions is Open with explicit load options.
func OpenWithOptions(path string, opts OpenOptions) (*Mapping, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer file.Close()
	return OpenFile(file, opts)
}

// OpenFile maps f read-only. The caller remains responsible for closing f,
// which may happen as soon as OpenFile returns.
func OpenFile(f *os.File, opts OpenOptions) (*Mapping, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dictionary: %w", err)
	}
	if stat.Size() < headerSize+recordSize {
		return nil, fmt.Errorf("dictionary %s is %d bytes: %w", f.Name(), stat.Size(), approxerrors.ErrTruncated)
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap dictionary: %w", err)
	}
	if opts.Prefault {
		adviseWillNeed(mm)
	}

	m := &Mapping{mmap: mm}
	if err := m.init([]byte(mm), opts.Verify); err != nil {
		return nil, errors.Join(err, m.Close())
	}
	return m, nil
}

// OpenBytes wraps an in-memory encoded trie. Nothing is mapped and Close is
// a no-op; the caller must not modify data while the View is in use.
func OpenBytes(data []byte, opts OpenOptions) (*Mapping, error) {
	m := &Mapping{}
	if err := m.init(data, opts.Verify); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapping) init(data []byte, verify bool) error {
	v, err := NewView(data)
	if err != nil {
		return err
	}
	if verify {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	m.view = v
	return nil
}

// View returns the trie view over the mapping, or nil once closed.
func (m *Mapping) View() *View {
	if m.closed.Load() {
		return nil
	}
	return m.view
}

// Close releases the mapping. It is safe to call more than once.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.mmap != nil {
		if err := m.mmap.Unmap(); err != nil {
			return fmt.Errorf("unmap dictionary: %w", err)
		}
	}
	return nil
}

// Err returns ErrMappingClosed once the mapping is closed, nil before.
// Searchers built WithMapping check it before every query.
func (m *Mapping) Err() error {
	if m.closed.Load() {
		return approxerrors.ErrMappingClosed
	}
	return nil
}
