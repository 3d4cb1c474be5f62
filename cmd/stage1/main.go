package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/GScottKnight/ParcelNewsFetchV2/db"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/config"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/pipeline"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/repository"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/llm"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	var classifier llm.Classifier
	if cfg.AnthropicAPIKey != "" && !cfg.Stage1ForceHeuristic {
		classifier = llm.NewAnthropicClassifier(cfg.AnthropicAPIKey)
		slog.Info("stage1 using model classifier")
	} else {
		classifier = llm.NewKeywordClassifier()
		slog.Info("stage1 using keyword classifier")
	}

	repo := repository.NewArticleRepository(db.DB)
	runner := pipeline.NewStage1Runner(repo, classifier)

	processed, err := runner.ProcessBatches(context.Background(), cfg.Stage1BatchSize, cfg.Stage1SingleBatch)
	if err != nil {
		log.Fatalf("error running stage1 batches: %v", err)
	}

	remaining, err := repo.CountByStatus(model.StatusNew)
	if err != nil {
		slog.Warn("error counting remaining articles", "error", err)
	}

	slog.Info("stage1 complete", "processed", processed, "remaining", remaining)
}
