package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/news"

	"github.com/go-playground/assert/v2"
)

type fakeSource struct {
	name     string
	articles []news.Article
	err      error
	gotSince time.Time
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, since time.Time) ([]news.Article, error) {
	f.gotSince = since
	return f.articles, f.err
}

func newsArticle(url string, updated time.Time) news.Article {
	return news.Article{
		ExternalID:  url,
		Title:       "UPS rate news",
		URL:         url,
		Source:      "TestWire",
		PublishedAt: updated.Add(-time.Hour),
		UpdatedAt:   updated,
		SourceTier:  model.TierIndustryPress,
	}
}

func TestMemoryDedupStore_HasSeenAfterMarkSeen(t *testing.T) {
	store := NewMemoryDedupStore()
	article := model.RawArticle{Source: "TestWire", URL: "https://example.com/a"}

	seen, err := store.HasSeen(article)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, seen)

	assert.Equal(t, nil, store.MarkSeen([]model.RawArticle{article}))

	seen, err = store.HasSeen(article)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, seen)
}

func TestMemoryDedupStore_ReMarkSeenKeepsStatus(t *testing.T) {
	store := NewMemoryDedupStore()
	article := model.RawArticle{Source: "TestWire", URL: "https://example.com/a"}

	store.MarkSeen([]model.RawArticle{article})
	store.MarkStatus([]model.RawArticle{article}, model.StatusProcessed)
	store.MarkSeen([]model.RawArticle{article})

	assert.Equal(t, model.StatusProcessed, store.Status(article))
}

func TestMemoryDedupStore_MarkStatusIgnoresUnknown(t *testing.T) {
	store := NewMemoryDedupStore()
	article := model.RawArticle{Source: "TestWire", URL: "https://example.com/missing"}

	assert.Equal(t, nil, store.MarkStatus([]model.RawArticle{article}, model.StatusFailed))
	assert.Equal(t, false, mustHasSeen(t, store, article))
}

func mustHasSeen(t *testing.T, store DedupStore, article model.RawArticle) bool {
	t.Helper()
	seen, err := store.HasSeen(article)
	assert.Equal(t, nil, err)
	return seen
}

func TestPollerRunOnce_DeduplicatesAndAdvancesWatermark(t *testing.T) {
	t1 := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, time.January, 6, 10, 0, 0, 0, time.UTC)

	src := &fakeSource{name: "TestWire", articles: []news.Article{
		newsArticle("https://example.com/a", t1),
		newsArticle("https://example.com/b", t2),
	}}
	store := NewMemoryDedupStore()
	poller := NewPoller([]news.NewsClient{src}, store, nil, nil)

	state := poller.RunOnce(context.Background(), NewPollState())

	assert.Equal(t, t2, state.Watermarks["TestWire"])
	assert.Equal(t, true, mustHasSeen(t, store, model.RawArticle{Source: "TestWire", URL: "https://example.com/a"}))
	assert.Equal(t, true, mustHasSeen(t, store, model.RawArticle{Source: "TestWire", URL: "https://example.com/b"}))

	// Second cycle sees the same articles: nothing new, watermark holds.
	next := poller.RunOnce(context.Background(), state)
	assert.Equal(t, t2, next.Watermarks["TestWire"])
	assert.Equal(t, t2, src.gotSince)
}

func TestPollerRunOnce_SourceFailureIsolated(t *testing.T) {
	t1 := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

	broken := &fakeSource{name: "Broken", err: errors.New("upstream down")}
	healthy := &fakeSource{name: "TestWire", articles: []news.Article{
		newsArticle("https://example.com/a", t1),
	}}
	store := NewMemoryDedupStore()
	poller := NewPoller([]news.NewsClient{broken, healthy}, store, nil, nil)

	state := poller.RunOnce(context.Background(), NewPollState())

	assert.Equal(t, t1, state.Watermarks["TestWire"])
	assert.Equal(t, true, mustHasSeen(t, store, model.RawArticle{Source: "TestWire", URL: "https://example.com/a"}))
}

type fakeBodies struct {
	body string
	urls []string
}

func (f *fakeBodies) Fetch(ctx context.Context, url string) string {
	f.urls = append(f.urls, url)
	return f.body
}

func TestPollerRunOnce_HydratesMissingBodies(t *testing.T) {
	t1 := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

	withBody := newsArticle("https://example.com/full", t1)
	withBody.Body = "already here"
	withoutBody := newsArticle("https://example.com/empty", t1)

	src := &fakeSource{name: "TestWire", articles: []news.Article{withBody, withoutBody}}
	bodies := &fakeBodies{body: "fetched body"}
	poller := NewPoller([]news.NewsClient{src}, NewMemoryDedupStore(), bodies, nil)

	poller.RunOnce(context.Background(), NewPollState())

	assert.Equal(t, []string{"https://example.com/empty"}, bodies.urls)
}
