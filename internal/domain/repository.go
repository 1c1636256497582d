package domain

import "context"

// PassageRepository defines the operations the pipeline needs from the
// document store: persisting embedded passages and similarity search.
type PassageRepository interface {
	// BulkUpsert inserts records, replacing any existing record with the
	// same ID so re-indexing is idempotent.
	BulkUpsert(ctx context.Context, records []PassageRecord) error

	// Search performs a vector similarity search and returns up to limit
	// results ordered by descending similarity.
	Search(ctx context.Context, vector []float32, limit int) ([]SearchResult, error)
}
