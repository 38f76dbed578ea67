package trie

// arena is the append-only label storage of one Builder.
// Every edge label is an (offset, length) view into it.
type arena struct {
	buf []byte
}

// append copies s to the end of the arena and returns its offset.
func (a *arena) append(s string) int {
	off := len(a.buf)
	a.buf = append(a.buf, s...)
	return off
}

func (a *arena) slice(off, length int) []byte {
	return a.buf[off : off+length]
}

func (a *arena) len() int {
	return len(a.buf)
}
