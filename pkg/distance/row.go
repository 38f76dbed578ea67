// Package distance computes Damerau-Levenshtein distances one matrix row at
// a time, so that a trie traversal can share the rows of a common prefix
// between every word that extends it.
//
// Row i of the matrix compares the first i bytes of a trie path with every
// prefix of the query. Rows form a tree that mirrors the active trie paths:
// each row links to the row one byte shallower, and the transposition rule
// reaches one level further up. A row whose columns all exceed the bound is
// dead, and so is every row below it.
package distance

import "math"

// MaxDistance is the largest accepted distance bound. The row sentinel is
// the bound plus one, which must fit in a uint32.
const MaxDistance = math.MaxUint32 - 1

// Row is one row of the distance matrix.
type Row struct {
	parent *Row
	dist   []uint32
	depth  int
	// maxCol is the rightmost column whose distance is within the bound,
	// negative once no column is.
	maxCol int
	char   byte
}

// NewRoot returns the first row for a query of queryLen bytes: the distance
// from the empty path to every query prefix.
func NewRoot(queryLen int, maxDist uint32) *Row {
	r := &Row{dist: make([]uint32, queryLen+1)}
	r.reset(maxDist)
	return r
}

func (r *Row) reset(maxDist uint32) {
	for i := range r.dist {
		r.dist[i] = uint32(i)
	}
	r.parent = nil
	r.depth = 0
	r.char = 0
	r.maxCol = len(r.dist) - 1
	if uint64(maxDist) < uint64(r.maxCol) {
		r.maxCol = int(maxDist)
	}
}

// Extend returns a new row for the path of r followed by c.
func (r *Row) Extend(query []byte, c byte, maxDist uint32) *Row {
	child := &Row{dist: make([]uint32, len(r.dist))}
	child.fill(r, query, c, maxDist)
	return child
}

// fill computes r as the child of parent for byte c.
func (r *Row) fill(parent *Row, query []byte, c byte, maxDist uint32) {
	r.parent = parent
	r.char = c
	r.depth = parent.depth + 1

	width := len(r.dist)
	sentinel := maxDist + 1

	r.maxCol = -1
	if uint64(r.depth) <= uint64(maxDist) {
		r.maxCol = 0
	}
	r.dist[0] = uint32(r.depth)
	if parent.Dead() {
		r.maxCol = -1
		for j := 1; j < width; j++ {
			r.dist[j] = sentinel
		}
		return
	}

	// Columns right of parent.maxCol+1 cannot come back under the bound.
	bound := width
	if parent.maxCol+2 < bound {
		bound = parent.maxCol + 2
	}

	j := 1
	for ; j < bound; j++ {
		cost := uint32(1)
		if c == query[j-1] {
			cost = 0
		}

		d := min(
			parent.dist[j]+1,      // delete
			r.dist[j-1]+1,         // insert
			parent.dist[j-1]+cost, // substitute or match
		)
		if r.depth > 1 && j > 1 && c == query[j-2] && parent.char == query[j-1] {
			d = min(d, parent.parent.dist[j-2]+cost) // transpose
		}

		r.dist[j] = d
		if d <= maxDist {
			r.maxCol = j
		}
	}

	for ; j < width; j++ {
		r.dist[j] = sentinel
	}
}

// Dead reports whether no column of r is within the bound. No row derived
// from a dead row can be within it either.
func (r *Row) Dead() bool {
	return r.maxCol < 0
}

// Distance returns the distance between the path of r and the whole query.
// Values above the bound are only known to be above it.
func (r *Row) Distance() uint32 {
	return r.dist[len(r.dist)-1]
}

func (r *Row) Depth() int {
	return r.depth
}

// Parent - row one byte shallower, nil for the root
func (r *Row) Parent() *Row {
	return r.parent
}

// MaxViableColumn returns the rightmost column within the bound, or -1
func (r *Row) MaxViableColumn() int {
	return r.maxCol
}

// Word returns the path of r, i.e. the bytes that produced it from the root.
func (r *Row) Word() []byte {
	return r.AppendWord(make([]byte, 0, r.depth))
}

// AppendWord appends the path of r to dst.
func (r *Row) AppendWord(dst []byte) []byte {
	dst = append(dst, make([]byte, r.depth)...)
	for row, i := r, len(dst)-1; row.parent != nil; row, i = row.parent, i-1 {
		dst[i] = row.char
	}
	return dst
}
