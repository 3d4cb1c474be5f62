package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/signature"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/llm"
)

// Stage2Claims is the claim-and-transition capability Stage 2 needs from the
// raw article store.
type Stage2Claims interface {
	FetchRelevant(limit int) ([]model.RawArticle, error)
	UpdateStatus(articleID int64, status string) error
}

// ExtractionStore persists extractions and applies the canonical upsert protocol.
type ExtractionStore interface {
	SaveExtraction(articleID int64, extraction *model.Stage2Extraction) error
	UpsertCanonical(event *model.CanonicalEvent, source model.CanonicalEventSource) error
}

type Stage2Runner struct {
	articles  Stage2Claims
	events    ExtractionStore
	extractor llm.Extractor
}

func NewStage2Runner(articles Stage2Claims, events ExtractionStore, extractor llm.Extractor) *Stage2Runner {
	return &Stage2Runner{articles: articles, events: events, extractor: extractor}
}

// ProcessBatches claims relevance-confirmed articles without an extraction yet
// and runs the structured extractor on each, consolidating results into the
// canonical event store. The loop exits once elapsed wall-clock time reaches
// maxRuntime, even mid-batch, to bound batch-job cost. An extractor failure is
// isolated to its article. Returns the number of successfully extracted articles.
func (r *Stage2Runner) ProcessBatches(ctx context.Context, batchSize int, maxRuntime time.Duration) (int, error) {
	start := time.Now()
	processed := 0

	for {
		if time.Since(start) >= maxRuntime {
			slog.Info("stage2 exiting: max runtime reached", "processed", processed, "max_runtime", maxRuntime)
			return processed, nil
		}

		batch, err := r.articles.FetchRelevant(batchSize)
		if err != nil {
			return processed, err
		}
		if len(batch) == 0 {
			slog.Info("no stage2 candidates found", "processed", processed)
			return processed, nil
		}

		for _, article := range batch {
			if time.Since(start) >= maxRuntime {
				slog.Info("stage2 exiting mid-batch: max runtime reached", "processed", processed, "max_runtime", maxRuntime)
				return processed, nil
			}

			if err := r.processArticle(ctx, article); err != nil {
				slog.Error("stage2 extraction failed", "article_id", article.ID, "url", article.URL, "error", err)
				if err := r.articles.UpdateStatus(article.ID, model.StatusFailed); err != nil {
					return processed, err
				}
				continue
			}

			processed++
		}
	}
}

func (r *Stage2Runner) processArticle(ctx context.Context, article model.RawArticle) error {
	extraction, err := r.extractor.Extract(ctx, article)
	if err != nil {
		return err
	}

	if extraction.NormalizedEventSignature == "" {
		extraction.NormalizedEventSignature = signature.Build(extraction.EventSignatureFields)
	}

	if err := r.events.SaveExtraction(article.ID, extraction); err != nil {
		return err
	}

	event := model.NewCanonicalEvent(extraction)
	source := model.CanonicalEventSource{
		RawArticleID:    article.ID,
		SourceURL:       article.URL,
		SourceName:      article.Source,
		SourceTier:      article.SourceTier,
		PublicationDate: article.PublishedAt.Format("2006-01-02"),
		UsedForLevers:   true,
	}
	if err := r.events.UpsertCanonical(event, source); err != nil {
		return err
	}

	if err := r.articles.UpdateStatus(article.ID, model.StatusProcessed); err != nil {
		return err
	}

	slog.Info("stage2 processed", "article_id", article.ID, "normalized_signature", extraction.NormalizedEventSignature, "levers", len(extraction.Levers))
	return nil
}
