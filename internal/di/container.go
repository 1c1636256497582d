package di

import (
	"log/slog"
	"time"

	"vta-orchestrator/internal/adapter/aipipe"
	"vta-orchestrator/internal/adapter/ocr"
	"vta-orchestrator/internal/adapter/repository"
	"vta-orchestrator/internal/domain"
	"vta-orchestrator/internal/infra/config"
	"vta-orchestrator/internal/infra/httpclient"
	"vta-orchestrator/internal/usecase"
	"vta-orchestrator/internal/usecase/retrieval"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationComponents holds every wired component of the service.
type ApplicationComponents struct {
	PassageRepository  domain.PassageRepository
	ChatClient         domain.LLMClient
	Embedder           domain.VectorEncoder
	OCRClient          domain.OCRClient
	Retriever          retrieval.Retriever
	AnswerUsecase      usecase.AnswerQuestionUsecase
	IndexCorpusUsecase usecase.IndexCorpusUsecase
}

// NewApplicationComponents builds the full dependency graph.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *ApplicationComponents {
	llmHTTP := httpclient.NewPooledClient(time.Duration(cfg.LLMTimeout) * time.Second)
	ocrHTTP := httpclient.NewPooledClient(time.Duration(cfg.OCRTimeout) * time.Second)

	passageRepo := repository.NewPassageRepository(pool)
	chatClient := aipipe.NewChatClient(cfg.AIPipeURL, cfg.AIPipeAPIKey, cfg.ChatModel, llmHTTP, logger)
	embedder := aipipe.NewEmbedder(cfg.AIPipeURL, cfg.AIPipeAPIKey, cfg.EmbeddingModel, llmHTTP, logger)
	ocrClient := ocr.NewClient(cfg.OCRURL, ocrHTTP, logger)

	retriever := retrieval.NewVectorRetriever(embedder, passageRepo)

	pipelineConfig := usecase.PipelineConfig{
		ExpansionCount:  cfg.ExpansionCount,
		SearchK:         cfg.SearchK,
		RRFK:            cfg.RRFK,
		AnswerMaxTokens: cfg.AnswerMaxTokens,
	}
	if err := pipelineConfig.Validate(); err != nil {
		logger.Warn("invalid pipeline config, using defaults", "error", err)
		pipelineConfig = usecase.DefaultPipelineConfig()
	}
	promptBuilder := usecase.NewTAPromptBuilder(cfg.CourseName)

	answerUsecase := usecase.NewAnswerQuestionUsecase(
		retriever,
		chatClient,
		ocrClient,
		promptBuilder,
		pipelineConfig,
		logger,
	)

	indexUsecase := usecase.NewIndexCorpusUsecase(
		passageRepo,
		domain.NewChunker(),
		embedder,
		logger,
	)

	return &ApplicationComponents{
		PassageRepository:  passageRepo,
		ChatClient:         chatClient,
		Embedder:           embedder,
		OCRClient:          ocrClient,
		Retriever:          retriever,
		AnswerUsecase:      answerUsecase,
		IndexCorpusUsecase: indexUsecase,
	}
}
