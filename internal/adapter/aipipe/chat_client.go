// Package aipipe adapts the aipipe OpenAI-compatible relay to the domain
// LLM and embedding interfaces.
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

// ChatClient implements domain.LLMClient against an OpenAI-compatible chat
// completions endpoint.
type ChatClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewChatClient constructs a chat client for the given base URL (e.g.
// "https://aipipe.org/openai/v1") and model. httpClient may be nil, in
// which case the SDK default is used.
func NewChatClient(baseURL, apiKey, model string, httpClient *http.Client, logger *slog.Logger) *ChatClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &ChatClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Chat sends a single-turn chat completion and returns the first choice.
func (c *ChatClient) Chat(ctx context.Context, messages []domain.Message, maxTokens int) (*domain.LLMResponse, error) {
	start := time.Now()

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, len(messages)),
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("chat_completion_failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("failed to call chat completion endpoint: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	c.logger.Info("chat_completion_finished",
		slog.String("model", c.model),
		slog.String("finish_reason", string(choice.FinishReason)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	return &domain.LLMResponse{
		Text: choice.Message.Content,
		Done: choice.FinishReason != openai.FinishReasonLength,
	}, nil
}

// Version returns the wrapped model name.
func (c *ChatClient) Version() string {
	return c.model
}

var _ domain.LLMClient = (*ChatClient)(nil)
