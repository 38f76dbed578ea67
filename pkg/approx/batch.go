package approx

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Query - one element of a batch
type Query struct {
	Word        string `json:"word" msgpack:"w"`
	MaxDistance uint32 `json:"distance" msgpack:"d"`
}

// SearchBatch runs queries concurrently against the shared View, at most
// Workers at a time. Results are returned in query order. The first failing
// query cancels the rest and its error is returned.
func (s *Searcher) SearchBatch(ctx context.Context, queries []Query) ([][]Result, error) {
	results := make([][]Result, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.Search(q.Word, q.MaxDistance)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
