package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vta-orchestrator/internal/domain"
)

// indexBatchSize is the number of chunks embedded and upserted per batch.
const indexBatchSize = 30

// IndexCorpusUsecase chunks scraped course documents, embeds them and
// upserts them into the passage store.
type IndexCorpusUsecase interface {
	Execute(ctx context.Context, docs []domain.CourseDocument) (int, error)
}

type indexCorpusUsecase struct {
	repo    domain.PassageRepository
	chunker domain.Chunker
	encoder domain.VectorEncoder
	logger  *slog.Logger
}

// NewIndexCorpusUsecase creates an IndexCorpusUsecase.
func NewIndexCorpusUsecase(
	repo domain.PassageRepository,
	chunker domain.Chunker,
	encoder domain.VectorEncoder,
	logger *slog.Logger,
) IndexCorpusUsecase {
	return &indexCorpusUsecase{
		repo:    repo,
		chunker: chunker,
		encoder: encoder,
		logger:  logger,
	}
}

// Execute indexes the documents and returns the total number of chunks
// written. Record IDs are "{document}_{chunk}" (1-based), stable across
// re-runs of the same corpus so upserts replace rather than duplicate.
func (u *indexCorpusUsecase) Execute(ctx context.Context, docs []domain.CourseDocument) (int, error) {
	start := time.Now()

	var pending []domain.PassageRecord
	total := 0

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		texts := make([]string, len(pending))
		for i, rec := range pending {
			texts[i] = rec.Passage.Content
		}
		embeddings, err := u.encoder.Encode(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to encode batch: %w", err)
		}
		if len(embeddings) != len(pending) {
			return fmt.Errorf("expected %d embeddings, got %d", len(pending), len(embeddings))
		}
		for i := range pending {
			pending[i].Embedding = embeddings[i]
		}
		if err := u.repo.BulkUpsert(ctx, pending); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}
		total += len(pending)
		u.logger.Info("index_batch_written",
			slog.Int("batch_size", len(pending)),
			slog.Int("total_written", total))
		pending = nil
		return nil
	}

	for docIdx, doc := range docs {
		chunks, err := u.chunker.Chunk(doc.Content)
		if err != nil {
			return total, fmt.Errorf("failed to chunk document %q: %w", doc.URL, err)
		}
		for _, chunk := range chunks {
			pending = append(pending, domain.PassageRecord{
				ID: fmt.Sprintf("%d_%d", docIdx+1, chunk.Ordinal+1),
				Passage: domain.Passage{
					Content: chunk.Content,
					Metadata: domain.PassageMetadata{
						Title:      doc.Title,
						URL:        doc.URL,
						ChunkIndex: chunk.Ordinal,
					},
				},
			})
			if len(pending) >= indexBatchSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}

	u.logger.Info("corpus_indexed",
		slog.Int("document_count", len(docs)),
		slog.Int("chunk_count", total),
		slog.String("chunker_version", string(u.chunker.Version())),
		slog.String("embedder_version", u.encoder.Version()),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return total, nil
}
