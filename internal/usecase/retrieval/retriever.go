package retrieval

import (
	"context"
	"fmt"

	"vta-orchestrator/internal/domain"
)

// DefaultSearchK is the number of passages fetched per retrieval query.
const DefaultSearchK = 5

// Retriever returns the top-k passages for a query string, ordered by
// descending similarity as computed by the document store.
type Retriever interface {
	Search(ctx context.Context, query string, k int) (RankedList, error)
}

// VectorRetriever implements Retriever by embedding the query and running
// a similarity search against the passage repository. No local caching;
// every call is an independent round-trip.
type VectorRetriever struct {
	encoder domain.VectorEncoder
	repo    domain.PassageRepository
}

// NewVectorRetriever creates a Retriever over the given encoder and store.
func NewVectorRetriever(encoder domain.VectorEncoder, repo domain.PassageRepository) *VectorRetriever {
	return &VectorRetriever{encoder: encoder, repo: repo}
}

// Search embeds the query and returns up to k passages in store order.
func (r *VectorRetriever) Search(ctx context.Context, query string, k int) (RankedList, error) {
	if k <= 0 {
		k = DefaultSearchK
	}

	embeddings, err := r.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := r.repo.Search(ctx, embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("failed to search passages: %w", err)
	}

	passages := make(RankedList, 0, len(results))
	for _, res := range results {
		passages = append(passages, res.Passage)
	}
	return passages, nil
}

var _ Retriever = (*VectorRetriever)(nil)
