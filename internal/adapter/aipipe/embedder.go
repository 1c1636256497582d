package aipipe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vta-orchestrator/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder implements domain.VectorEncoder against an OpenAI-compatible
// embeddings endpoint.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	logger *slog.Logger
}

// NewEmbedder constructs an embedder for the given base URL and embedding
// model (e.g. "text-embedding-ada-002").
func NewEmbedder(baseURL, apiKey, model string, httpClient *http.Client, logger *slog.Logger) *Embedder {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &Embedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(model),
		logger: logger,
	}
}

// Encode embeds the given texts in one request, preserving input order.
func (e *Embedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call embeddings endpoint: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}

	e.logger.Info("embeddings_computed",
		slog.String("model", string(e.model)),
		slog.Int("text_count", len(texts)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	return embeddings, nil
}

// Version returns the wrapped model name.
func (e *Embedder) Version() string {
	return string(e.model)
}

var _ domain.VectorEncoder = (*Embedder)(nil)
