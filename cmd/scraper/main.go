package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"vta-orchestrator/internal/adapter/corpus"
	"vta-orchestrator/internal/infra/config"
	"vta-orchestrator/internal/infra/httpclient"
	"vta-orchestrator/internal/infra/logger"
)

func main() {
	outPath := flag.String("out", "data/discourse_forum.json", "output path for the scraped forum corpus")
	combineWith := flag.String("combine", "", "optional extra corpus JSON to merge into a combined file")
	combinedPath := flag.String("combined-out", "data/combined_data.json", "output path for the combined corpus")
	maxPages := flag.Int("pages", 2, "number of category listing pages to scrape")
	startDate := flag.String("start", "2025-01-01", "start of the post date window (YYYY-MM-DD)")
	endDate := flag.String("end", "2025-05-01", "end of the post date window (YYYY-MM-DD)")
	flag.Parse()

	cfg := config.Load()
	log := logger.New()
	slog.SetDefault(log)

	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		log.Error("invalid start date", "error", err)
		os.Exit(1)
	}
	end, err := time.Parse("2006-01-02", *endDate)
	if err != nil {
		log.Error("invalid end date", "error", err)
		os.Exit(1)
	}

	client := corpus.NewDiscourseClient(corpus.DiscourseConfig{
		BaseURL:     cfg.DiscourseBaseURL,
		CategoryURL: cfg.DiscourseCategoryURL,
		Session:     cfg.DiscourseSession,
		Token:       cfg.DiscourseToken,
		StartDate:   start,
		EndDate:     end,
	}, httpclient.NewPooledClient(30*time.Second), log)

	docs, err := client.ScrapeForum(context.Background(), *maxPages)
	if err != nil {
		log.Error("forum scrape failed", "error", err)
		os.Exit(1)
	}

	if err := corpus.Save(*outPath, docs); err != nil {
		log.Error("failed to save forum corpus", "error", err)
		os.Exit(1)
	}
	log.Info("forum corpus saved", "path", *outPath, "documents", len(docs))

	if *combineWith == "" {
		return
	}

	combined, err := corpus.Combine(*outPath, *combineWith)
	if err != nil {
		log.Error("failed to combine corpora", "error", err)
		os.Exit(1)
	}
	if err := corpus.Save(*combinedPath, combined); err != nil {
		log.Error("failed to save combined corpus", "error", err)
		os.Exit(1)
	}
	log.Info("combined corpus saved", "path", *combinedPath, "documents", len(combined))
}
