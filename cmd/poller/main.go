package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GScottKnight/ParcelNewsFetchV2/db"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/config"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/pipeline"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/repository"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/content"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/news"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	var sources []news.NewsClient
	if cfg.BenzingaAPIKey != "" {
		sources = append(sources, news.NewBenzingaClient(cfg.BenzingaAPIKey, cfg.BenzingaPageSize, cfg.BenzingaChannels))
	}
	if cfg.FinnhubAPIKey != "" {
		sources = append(sources, news.NewFinnHubClient(cfg.FinnhubAPIKey, cfg.FinnhubSymbols))
	}
	for name, feedURL := range cfg.NewsroomFeeds {
		sources = append(sources, news.NewNewsroomClient(name, feedURL))
	}

	if len(sources) == 0 {
		slog.Error("no news sources configured")
		return
	}

	var store pipeline.DedupStore
	var marks pipeline.WatermarkStore

	if cfg.DryRun {
		slog.Info("dry run: using in-memory dedup store, nothing will be persisted")
		store = pipeline.NewMemoryDedupStore()
	} else {
		err := db.Connect()
		if err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		store = repository.NewArticleRepository(db.DB)

		if err := db.ConnectRedis(); err != nil {
			slog.Warn("Redis unavailable, watermarks will not survive restarts", "error", err)
		} else {
			defer db.CloseRedis()
			marks = db.NewWatermarkStore()
		}
	}

	var bodies pipeline.BodyFetcher
	if cfg.FetchArticleBody {
		bodies = content.NewFetcher(cfg.BodyFetchTimeout)
	}

	poller := pipeline.NewPoller(sources, store, bodies, marks)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.PollOnce {
		poller.RunOnce(ctx, poller.LoadState())
		return
	}

	slog.Info("polling started", "sources", len(sources), "interval", cfg.PollInterval)
	poller.Run(ctx, cfg.PollInterval)
}
