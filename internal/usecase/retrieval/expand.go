package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vta-orchestrator/internal/domain"
)

// DefaultExpansionCount is the number of alternative phrasings requested
// from the LLM for each incoming question.
const DefaultExpansionCount = 5

const expansionMaxTokens = 300

// ExpandQueries asks the LLM for count alternative phrasings of the
// question, one per line. Expansion fails open: any provider error yields
// an empty slice so the caller can decide how to proceed. No retry.
func ExpandQueries(
	ctx context.Context,
	llm domain.LLMClient,
	question string,
	count int,
	logger *slog.Logger,
) []string {
	if count <= 0 {
		count = DefaultExpansionCount
	}

	prompt := fmt.Sprintf(`Generate %d different perspectives on this question: %s

Output ONLY the reformulated questions, one per line. Do not add numbering, bullets, or explanations.`, count, question)

	start := time.Now()
	resp, err := llm.Chat(ctx, []domain.Message{{Role: "user", Content: prompt}}, expansionMaxTokens)
	if err != nil {
		logger.Warn("query_expansion_failed",
			slog.String("question", truncate(question, 100)),
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return nil
	}

	var queries []string
	for _, line := range strings.Split(resp.Text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			queries = append(queries, trimmed)
		}
	}

	logger.Info("query_expansion_completed",
		slog.Int("requested", count),
		slog.Int("generated", len(queries)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	return queries
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
