package trie

const rootNode = 0

// node is a build-time trie node. Nodes are addressed by their index in
// Builder.nodes; index 0 is the root.
type node struct {
	edges []edge
	freq  uint32
}

// edge points from its owning node to target and is labelled by
// arena[offset : offset+length].
type edge struct {
	offset int
	length int
	target int
}

// Builder is a mutable compressed trie.
// It is not safe for concurrent use.
type Builder struct {
	nodes []node
	strs  arena
	words int
}

// NewBuilder creates an empty trie with its own string arena
func NewBuilder() *Builder {
	return &Builder{
		nodes: []node{{}},
	}
}

// Insert adds word with frequency freq.
//
// Re-inserting a word overwrites its frequency. The empty word sets the
// root's frequency, which the encoded form never exposes.
func (b *Builder) Insert(word string, freq uint32) {
	b.words++
	n := rootNode
	rest := word

	for {
		if rest == "" {
			b.nodes[n].freq = freq
			return
		}

		k := b.findEdge(n, rest[0])
		if k < 0 {
			// No sibling shares the first byte: the whole suffix becomes one edge.
			off := b.strs.append(rest)
			target := b.newNode(freq)
			b.nodes[n].edges = append(b.nodes[n].edges, edge{
				offset: off,
				length: len(rest),
				target: target,
			})
			return
		}

		e := b.nodes[n].edges[k]
		p := commonPrefix(b.strs.slice(e.offset, e.length), rest)
		if p < e.length {
			b.split(n, k, p)
		}
		n = b.nodes[n].edges[k].target
		rest = rest[p:]
	}
}

// findEdge returns the index of the edge of node n whose label starts with c,
// or -1.
func (b *Builder) findEdge(n int, c byte) int {
	for i, e := range b.nodes[n].edges {
		if b.strs.buf[e.offset] == c {
			return i
		}
	}
	return -1
}

// split cuts edge k of node n after p bytes:
//
//	n --earth--> t   becomes   n --ea--> mid --rth--> t
//
// The tail edge keeps the original target, frequency and children included.
func (b *Builder) split(n, k, p int) {
	mid := b.newNode(0)
	e := &b.nodes[n].edges[k]
	b.nodes[mid].edges = append(b.nodes[mid].edges, edge{
		offset: e.offset + p,
		length: e.length - p,
		target: e.target,
	})
	e.length = p
	e.target = mid
}

func (b *Builder) newNode(freq uint32) int {
	b.nodes = append(b.nodes, node{freq: freq})
	return len(b.nodes) - 1
}

// commonPrefix returns the length of the longest common prefix of label and s.
func commonPrefix(label []byte, s string) int {
	i := 0
	for i < len(label) && i < len(s) && label[i] == s[i] {
		i++
	}
	return i
}

// Len returns the number of Insert calls, duplicates included
func (b *Builder) Len() int {
	return b.words
}

// Nodes returns the node count, root included
func (b *Builder) Nodes() int {
	return len(b.nodes)
}

// Edges returns the number of trie edges, which is the number of records
// the encoded form holds besides the synthetic root.
func (b *Builder) Edges() int {
	return len(b.nodes) - 1
}

func (b *Builder) ArenaSize() int {
	return b.strs.len()
}
