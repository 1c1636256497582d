package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"vta-orchestrator/internal/adapter/corpus"
	"vta-orchestrator/internal/di"
	"vta-orchestrator/internal/infra"
	"vta-orchestrator/internal/infra/config"
	"vta-orchestrator/internal/infra/logger"
)

func main() {
	corpusPath := flag.String("corpus", "data/combined_data.json", "path to the combined corpus JSON file")
	flag.Parse()

	cfg := config.Load()
	log := logger.New()
	slog.SetDefault(log)

	docs, err := corpus.Load(*corpusPath)
	if err != nil {
		log.Error("failed to load corpus", "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		log.Error("corpus is empty", "path", *corpusPath)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	dbPool, err := infra.NewPostgresDB(context.Background(), dsn)
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	components := di.NewApplicationComponents(cfg, dbPool, log)

	total, err := components.IndexCorpusUsecase.Execute(context.Background(), docs)
	if err != nil {
		log.Error("indexing failed", "error", err)
		os.Exit(1)
	}

	log.Info("indexing completed", "documents", len(docs), "chunks", total)
}
