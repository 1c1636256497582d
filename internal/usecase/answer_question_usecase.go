package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vta-orchestrator/internal/domain"
	"vta-orchestrator/internal/usecase/retrieval"

	"github.com/google/uuid"
)

// NoQueriesAnswer is returned when query expansion produces nothing. The
// pipeline short-circuits here without falling back to link or image
// context.
const NoQueriesAnswer = "Could not generate queries"

// AnswerQuestionInput carries one student question plus its optional
// enrichment inputs.
type AnswerQuestionInput struct {
	Question string
	Link     string
	Image    string // HTTP URL or base64-encoded image bytes
}

// AnswerQuestionOutput is the pipeline result: the generated answer and the
// fused, deduplicated passage ranking that produced it.
type AnswerQuestionOutput struct {
	Answer   string
	Reranked []retrieval.ScoredPassage
}

// AnswerQuestionUsecase runs the full multi-query RAG pipeline for one
// question.
type AnswerQuestionUsecase interface {
	Execute(ctx context.Context, input AnswerQuestionInput) (*AnswerQuestionOutput, error)
}

type answerQuestionUsecase struct {
	retriever     retrieval.Retriever
	llmClient     domain.LLMClient
	ocrClient     domain.OCRClient
	promptBuilder PromptBuilder
	config        PipelineConfig
	logger        *slog.Logger
}

// NewAnswerQuestionUsecase wires the pipeline components together.
func NewAnswerQuestionUsecase(
	retriever retrieval.Retriever,
	llmClient domain.LLMClient,
	ocrClient domain.OCRClient,
	promptBuilder PromptBuilder,
	config PipelineConfig,
	logger *slog.Logger,
) AnswerQuestionUsecase {
	return &answerQuestionUsecase{
		retriever:     retriever,
		llmClient:     llmClient,
		ocrClient:     ocrClient,
		promptBuilder: promptBuilder,
		config:        config,
		logger:        logger,
	}
}

// Execute runs the pipeline: optional OCR, optional link search, query
// expansion, per-query retrieval, rank fusion, answer generation. OCR and
// link failures degrade to omitted context sections; an empty expansion is
// terminal for the request; retrieval and generation errors propagate.
func (u *answerQuestionUsecase) Execute(ctx context.Context, input AnswerQuestionInput) (*AnswerQuestionOutput, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, fmt.Errorf("question is required")
	}

	pipelineID := uuid.New().String()
	logger := u.logger.With(slog.String("pipeline_id", pipelineID))

	var extra ExtraContext

	if input.Image != "" {
		text, err := u.ocrClient.ExtractText(ctx, input.Image)
		if err != nil {
			logger.Warn("image_ocr_failed", slog.String("error", err.Error()))
		} else if text != "" {
			logger.Info("image_text_extracted", slog.Int("length", len(text)))
			extra.AddImageText(text)
		}
	}

	if input.Link != "" {
		hits, err := u.retriever.Search(ctx, input.Link, u.config.SearchK)
		switch {
		case err != nil:
			logger.Warn("link_search_failed",
				slog.String("link", input.Link),
				slog.String("error", err.Error()))
		case len(hits) == 0:
			logger.Warn("link_search_no_results", slog.String("link", input.Link))
		default:
			logger.Info("link_context_added",
				slog.String("link", input.Link),
				slog.Int("passage_count", len(hits)))
			extra.AddLinkContext(hits)
		}
	}

	queries := retrieval.ExpandQueries(ctx, u.llmClient, input.Question, u.config.ExpansionCount, logger)
	if len(queries) == 0 {
		logger.Warn("no_queries_generated", slog.String("question", input.Question))
		return &AnswerQuestionOutput{Answer: NoQueriesAnswer}, nil
	}

	lists, err := retrieval.SearchAll(ctx, u.retriever, queries, u.config.SearchK, logger)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	reranked := retrieval.Fuse(lists, u.config.RRFK)
	logger.Info("rank_fusion_completed",
		slog.Int("query_count", len(queries)),
		slog.Int("fused_count", len(reranked)))

	answer, err := u.generateAnswer(ctx, input.Question, reranked, extra.String())
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	return &AnswerQuestionOutput{Answer: answer, Reranked: reranked}, nil
}

func (u *answerQuestionUsecase) generateAnswer(
	ctx context.Context,
	question string,
	reranked []retrieval.ScoredPassage,
	extraContext string,
) (string, error) {
	contents := make([]string, len(reranked))
	for i, hit := range reranked {
		contents[i] = hit.Passage.Content
	}
	promptContext := strings.Join(contents, "\n")
	if extraContext != "" {
		promptContext = promptContext + "\n\n" + extraContext
	}

	prompt := u.promptBuilder.Build(question, promptContext)
	resp, err := u.llmClient.Chat(ctx, []domain.Message{{Role: "user", Content: prompt}}, u.config.AnswerMaxTokens)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
