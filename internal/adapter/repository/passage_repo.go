package repository

import (
	"context"
	"fmt"

	"vta-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type passageRepository struct {
	pool *pgxpool.Pool
}

// NewPassageRepository creates a PassageRepository backed by pgvector.
func NewPassageRepository(pool *pgxpool.Pool) domain.PassageRepository {
	return &passageRepository{pool: pool}
}

// BulkUpsert writes records in one batch; an existing record with the same
// ID is replaced so re-indexing the same corpus is idempotent.
func (r *passageRepository) BulkUpsert(ctx context.Context, records []domain.PassageRecord) error {
	if len(records) == 0 {
		return nil
	}

	const query = `
		INSERT INTO passages (id, title, url, chunk_index, content, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			url = EXCLUDED.url,
			chunk_index = EXCLUDED.chunk_index,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query,
			rec.ID,
			rec.Passage.Metadata.Title,
			rec.Passage.Metadata.URL,
			rec.Passage.Metadata.ChunkIndex,
			rec.Passage.Content,
			pgvector.NewVector(rec.Embedding),
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert passage: %w", err)
		}
	}
	return nil
}

// Search returns up to limit passages ordered by descending cosine
// similarity to the query vector.
func (r *passageRepository) Search(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	const query = `
		SELECT content, title, url, chunk_index, 1 - (embedding <=> $1) AS score
		FROM passages
		ORDER BY embedding <=> $1
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var res domain.SearchResult
		if err := rows.Scan(
			&res.Passage.Content,
			&res.Passage.Metadata.Title,
			&res.Passage.Metadata.URL,
			&res.Passage.Metadata.ChunkIndex,
			&res.Score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
