package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/go-playground/assert/v2"
)

type fakeStage1Store struct {
	pending  []model.RawArticle
	results  map[int64]*model.Stage1Result
	statuses map[int64]string
	fetchErr error
}

func newFakeStage1Store(articles ...model.RawArticle) *fakeStage1Store {
	return &fakeStage1Store{
		pending:  articles,
		results:  make(map[int64]*model.Stage1Result),
		statuses: make(map[int64]string),
	}
}

func (f *fakeStage1Store) FetchUnprocessed(limit int) ([]model.RawArticle, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var batch []model.RawArticle
	for _, a := range f.pending {
		if f.statuses[a.ID] != "" {
			continue
		}
		batch = append(batch, a)
		if len(batch) == limit {
			break
		}
	}
	return batch, nil
}

func (f *fakeStage1Store) SaveStage1Result(articleID int64, result *model.Stage1Result) error {
	f.results[articleID] = result
	return nil
}

func (f *fakeStage1Store) UpdateStatus(articleID int64, status string) error {
	f.statuses[articleID] = status
	return nil
}

type fakeClassifier struct {
	failOn map[int64]bool
	result model.Stage1Result
}

func (f *fakeClassifier) Classify(ctx context.Context, article model.RawArticle) (*model.Stage1Result, error) {
	if f.failOn[article.ID] {
		return nil, errors.New("classifier blew up")
	}
	result := f.result
	return &result, nil
}

func TestStage1ProcessBatches_AllClaimedArticlesLeaveNew(t *testing.T) {
	store := newFakeStage1Store(
		model.RawArticle{ID: 1, URL: "https://example.com/1"},
		model.RawArticle{ID: 2, URL: "https://example.com/2"},
		model.RawArticle{ID: 3, URL: "https://example.com/3"},
	)
	classifier := &fakeClassifier{
		failOn: map[int64]bool{2: true},
		result: model.Stage1Result{IsRelevant: true, Confidence: 0.8},
	}
	runner := NewStage1Runner(store, classifier)

	processed, err := runner.ProcessBatches(context.Background(), 10, false)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, model.StatusProcessed, store.statuses[1])
	assert.Equal(t, model.StatusFailed, store.statuses[2])
	assert.Equal(t, model.StatusProcessed, store.statuses[3])

	assert.NotEqual(t, nil, store.results[1])
	assert.Equal(t, (*model.Stage1Result)(nil), store.results[2])
	assert.NotEqual(t, nil, store.results[3])
}

func TestStage1ProcessBatches_EmptyClaimReturnsZero(t *testing.T) {
	runner := NewStage1Runner(newFakeStage1Store(), &fakeClassifier{})

	processed, err := runner.ProcessBatches(context.Background(), 10, false)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, processed)
}

func TestStage1ProcessBatches_SingleBatchOnly(t *testing.T) {
	store := newFakeStage1Store(
		model.RawArticle{ID: 1},
		model.RawArticle{ID: 2},
		model.RawArticle{ID: 3},
	)
	runner := NewStage1Runner(store, &fakeClassifier{result: model.Stage1Result{IsRelevant: false}})

	processed, err := runner.ProcessBatches(context.Background(), 2, true)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, "", store.statuses[3])
}

func TestStage1ProcessBatches_DrainsMultipleBatches(t *testing.T) {
	store := newFakeStage1Store(
		model.RawArticle{ID: 1},
		model.RawArticle{ID: 2},
		model.RawArticle{ID: 3},
	)
	runner := NewStage1Runner(store, &fakeClassifier{result: model.Stage1Result{IsRelevant: true}})

	processed, err := runner.ProcessBatches(context.Background(), 2, false)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, model.StatusProcessed, store.statuses[3])
}
