/*
Package trie builds, encodes and reads the compressed prefix tree behind
approxdict.

A Builder collects (word, frequency) pairs into a Patricia trie: each edge
carries a multi-byte label and no two siblings share a first byte. Labels are
views into a per-builder string arena, so splitting an edge only rewrites
offsets and lengths.

The Builder is then flattened breadth-first into a position-independent
blob:

	[4 bytes]          string section length S
	[S bytes]          label bytes
	[5 x 4 bytes]      synthetic root record
	[5 x 4 bytes] * N  one record per edge, breadth-first

Each record holds offset, length, frequency, children count and children
displacement, all little-endian uint32. The displacement counts records from
the current record to its leftmost child, so siblings are contiguous and a
child lookup is one addition.

A View interprets such a blob in place, typically straight from a read-only
memory mapping obtained with Open:

	m, err := trie.Open("dict.bin")
	if err != nil {
		return err
	}
	defer m.Close()
	v := m.View()
	for e, i := v.FirstChild(v.Root()), uint32(0); i < v.ChildCount(v.Root()); e, i = e+1, i+1 {
		fmt.Printf("%s\n", v.Label(e))
	}

The read path trusts the blob. Validate can be run once after loading when
the file comes from an untrusted source.
*/
package trie
