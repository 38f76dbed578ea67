package distance

// Stack holds the rows of a single query, one slot per depth.
//
// Extending a row at depth d overwrites the row previously held at d+1.
// Under a depth-first traversal the parents of the current row always sit
// in shallower slots, so the chain stays intact for as long as it is needed.
// Rows returned by a Stack are only valid until the traversal moves back
// above their depth. A Stack is not safe for concurrent use.
type Stack struct {
	query   []byte
	maxDist uint32
	rows    []*Row
}

// NewStack returns a row stack for query and its distance bound.
func NewStack(query []byte, maxDist uint32) *Stack {
	s := &Stack{
		query:   query,
		maxDist: maxDist,
		rows:    make([]*Row, 1, len(query)+2),
	}
	s.rows[0] = NewRoot(len(query), maxDist)
	return s
}

// Root returns the row of the empty path
func (s *Stack) Root() *Row {
	return s.rows[0]
}

func (s *Stack) MaxDistance() uint32 {
	return s.maxDist
}

// Extend computes the child of parent for byte c in the slot one level
// below parent, reusing that slot's storage.
func (s *Stack) Extend(parent *Row, c byte) *Row {
	d := parent.depth + 1
	for len(s.rows) <= d {
		s.rows = append(s.rows, &Row{dist: make([]uint32, len(s.query)+1)})
	}
	r := s.rows[d]
	r.fill(parent, s.query, c, s.maxDist)
	return r
}

// Depth returns the number of slots allocated so far, root excluded
func (s *Stack) Depth() int {
	return len(s.rows) - 1
}
