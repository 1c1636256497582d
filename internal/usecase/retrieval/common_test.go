package retrieval_test

import (
	"context"
	"io"
	"log/slog"

	"vta-orchestrator/internal/domain"
	"vta-orchestrator/internal/usecase/retrieval"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// MockLLMClient is a test double for domain.LLMClient.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Chat(ctx context.Context, messages []domain.Message, maxTokens int) (*domain.LLMResponse, error) {
	args := m.Called(ctx, messages, maxTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMResponse), args.Error(1)
}

func (m *MockLLMClient) Version() string { return "mock" }

// MockRetriever is a test double for retrieval.Retriever.
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Search(ctx context.Context, query string, k int) (retrieval.RankedList, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(retrieval.RankedList), args.Error(1)
}

// MockVectorEncoder is a test double for domain.VectorEncoder.
type MockVectorEncoder struct {
	mock.Mock
}

func (m *MockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockVectorEncoder) Version() string { return "mock-encoder" }

// MockPassageRepository is a test double for domain.PassageRepository.
type MockPassageRepository struct {
	mock.Mock
}

func (m *MockPassageRepository) BulkUpsert(ctx context.Context, records []domain.PassageRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockPassageRepository) Search(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	args := m.Called(ctx, vector, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchResult), args.Error(1)
}
