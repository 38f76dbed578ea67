package trie

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDot writes the trie as a graphviz digraph. Nodes terminating a word
// are drawn as boxes; edges are labelled with their text.
func (b *Builder) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d words, %d nodes, %d label bytes\n", b.words, len(b.nodes), b.strs.len())
	fmt.Fprintln(bw, "digraph g {")
	b.writeDotNode(bw, rootNode)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func (b *Builder) writeDotNode(w io.Writer, n int) {
	nd := &b.nodes[n]
	if nd.freq != 0 {
		fmt.Fprintf(w, "n%d [shape=box, xlabel=%d];\n", n, nd.freq)
	} else {
		fmt.Fprintf(w, "n%d;\n", n)
	}
	for _, e := range nd.edges {
		label := strconv.Quote(string(b.strs.slice(e.offset, e.length)))
		fmt.Fprintf(w, "n%d -> n%d [label=%s];\n", n, e.target, label)
		b.writeDotNode(w, e.target)
	}
}
