package dictionary

import (
	"slices"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// WordSet stages entries by word so that duplicates collapse and the
// compiled trie does not depend on input order.
type WordSet struct {
	trie *patricia.Trie
	size int
}

// NewWordSet creates an empty set.
func NewWordSet() *WordSet {
	return &WordSet{trie: patricia.NewTrie()}
}

// Add stores e, replacing the frequency of an earlier entry for the same word.
func (ws *WordSet) Add(e Entry) {
	key := patricia.Prefix(e.Word)
	if ws.trie.Insert(key, e.Freq) {
		ws.size++
		return
	}
	ws.trie.Set(key, e.Freq)
}

// Get returns the frequency stored for word.
func (ws *WordSet) Get(word string) (uint32, bool) {
	item := ws.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(uint32), true
}

// Len returns the number of distinct words.
func (ws *WordSet) Len() int {
	return ws.size
}

// Entries returns every entry sorted by word, byte-wise.
func (ws *WordSet) Entries() []Entry {
	entries := make([]Entry, 0, ws.size)
	_ = ws.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		entries = append(entries, Entry{Word: string(prefix), Freq: item.(uint32)})
		return nil
	})
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Word, b.Word)
	})
	return entries
}
