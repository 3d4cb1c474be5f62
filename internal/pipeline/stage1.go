package pipeline

import (
	"context"
	"log/slog"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/llm"
)

// Stage1Store is the persistent-store capability Stage 1 needs: the claim query
// plus result and status writes. The in-memory dedup store does not implement
// it, so only database-backed runners exist.
type Stage1Store interface {
	FetchUnprocessed(limit int) ([]model.RawArticle, error)
	SaveStage1Result(articleID int64, result *model.Stage1Result) error
	UpdateStatus(articleID int64, status string) error
}

type Stage1Runner struct {
	store      Stage1Store
	classifier llm.Classifier
}

func NewStage1Runner(store Stage1Store, classifier llm.Classifier) *Stage1Runner {
	return &Stage1Runner{store: store, classifier: classifier}
}

// ProcessBatches claims unprocessed articles in batches of batchSize and runs
// the relevance classifier on each. A classifier failure marks that article
// failed and the loop continues; every claimed article counts as processed
// because it leaves the "new" state either way. Stops on an empty claim, or
// after one batch when singleBatchOnly is set.
func (r *Stage1Runner) ProcessBatches(ctx context.Context, batchSize int, singleBatchOnly bool) (int, error) {
	processed := 0

	for {
		batch, err := r.store.FetchUnprocessed(batchSize)
		if err != nil {
			return processed, err
		}
		if len(batch) == 0 {
			break
		}

		for _, article := range batch {
			result, err := r.classifier.Classify(ctx, article)
			if err != nil {
				slog.Error("stage1 classification failed", "article_id", article.ID, "url", article.URL, "error", err)
				if err := r.store.UpdateStatus(article.ID, model.StatusFailed); err != nil {
					return processed, err
				}
				processed++
				continue
			}

			if err := r.store.SaveStage1Result(article.ID, result); err != nil {
				return processed, err
			}
			if err := r.store.UpdateStatus(article.ID, model.StatusProcessed); err != nil {
				return processed, err
			}

			processed++
			slog.Info("stage1 classified", "article_id", article.ID, "relevant", result.IsRelevant, "confidence", result.Confidence)
		}

		slog.Info("stage1 batch processed", "batch_size", len(batch), "total_processed", processed)

		if singleBatchOnly {
			break
		}
	}

	return processed, nil
}
