package retrieval

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// SearchAll runs one retrieval per query concurrently and returns one
// ranked list per query, in query order. The per-query grouping is what
// fusion needs; results are never merged into a single stream here.
// The first search error cancels the remaining searches and is returned.
func SearchAll(
	ctx context.Context,
	retriever Retriever,
	queries []string,
	k int,
	logger *slog.Logger,
) ([]RankedList, error) {
	lists := make([]RankedList, len(queries))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			results, err := retriever.Search(gctx, query, k)
			if err != nil {
				return err
			}
			lists[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("parallel_retrieval_completed",
		slog.Int("query_count", len(queries)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return lists, nil
}
