// Package approx runs bounded Damerau-Levenshtein queries against an encoded trie.
package approx

import "context"

// ISearcher defines the interface for approximate dictionary search engines
type ISearcher interface {
	// Search returns every word within maxDist of query, ranked
	Search(query string, maxDist uint32) ([]Result, error)

	// SearchBatch runs several queries concurrently, results in query order
	SearchBatch(ctx context.Context, queries []Query) ([][]Result, error)

	// MaxQueryLen returns the longest accepted query in bytes
	MaxQueryLen() int
}
