package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/GScottKnight/ParcelNewsFetchV2/db"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/config"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/pipeline"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/repository"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/llm"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	if cfg.OpenAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY not configured")
		return
	}

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)
	extractor := llm.NewOpenAIExtractor(cfg.OpenAIAPIKey, cfg.Stage2MaxBodySize)

	runner := pipeline.NewStage2Runner(articleRepo, eventRepo, extractor)

	processed, err := runner.ProcessBatches(context.Background(), cfg.Stage2BatchSize, cfg.Stage2MaxRuntime)
	if err != nil {
		log.Fatalf("error running stage2 batches: %v", err)
	}

	slog.Info("stage2 complete", "processed", processed)
}
