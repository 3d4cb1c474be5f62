// Package pipeline contains the three sequential loops that move articles from
// the news sources to the canonical event store: the polling loop, the Stage 1
// relevance batch runner and the Stage 2 extraction batch runner.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
	"github.com/GScottKnight/ParcelNewsFetchV2/pkg/news"
)

// DedupStore is the ingestion deduplicator capability. Both the Postgres
// repository and the in-memory store implement it; only the former also carries
// the batch-runner claim queries.
type DedupStore interface {
	HasSeen(article model.RawArticle) (bool, error)
	MarkSeen(articles []model.RawArticle) error
	MarkStatus(articles []model.RawArticle, status string) error
}

// WatermarkStore persists per-source watermarks across process restarts.
type WatermarkStore interface {
	Watermark(source string) (time.Time, error)
	SetWatermark(source string, t time.Time) error
}

// BodyFetcher hydrates a missing article body. It never fails; a fetch problem
// yields an empty string.
type BodyFetcher interface {
	Fetch(ctx context.Context, url string) string
}

// PollState carries the per-source "last seen update time" from one cycle into
// the next. It is explicit loop state, not a package variable, so cycles are
// testable and restart-safe when the state is persisted.
type PollState struct {
	Watermarks map[string]time.Time
}

func NewPollState() PollState {
	return PollState{Watermarks: make(map[string]time.Time)}
}

type Poller struct {
	sources []news.NewsClient
	store   DedupStore
	bodies  BodyFetcher
	marks   WatermarkStore
}

// NewPoller builds a polling loop. bodies and marks may be nil: without a body
// fetcher articles keep whatever body the source returned, without a watermark
// store the state starts empty on every process start.
func NewPoller(sources []news.NewsClient, store DedupStore, bodies BodyFetcher, marks WatermarkStore) *Poller {
	return &Poller{sources: sources, store: store, bodies: bodies, marks: marks}
}

// LoadState seeds poll state from the watermark store, when one is configured.
func (p *Poller) LoadState() PollState {
	state := NewPollState()
	if p.marks == nil {
		return state
	}
	for _, src := range p.sources {
		mark, err := p.marks.Watermark(src.Name())
		if err != nil {
			slog.Warn("error loading watermark", "source", src.Name(), "error", err)
			continue
		}
		if !mark.IsZero() {
			state.Watermarks[src.Name()] = mark
		}
	}
	return state
}

// RunOnce executes one poll cycle and returns the advanced state. A failure
// from one source is logged and does not prevent the remaining sources from
// being polled in the same cycle.
func (p *Poller) RunOnce(ctx context.Context, state PollState) PollState {
	next := NewPollState()
	for source, mark := range state.Watermarks {
		next.Watermarks[source] = mark
	}

	for _, src := range p.sources {
		source := src.Name()
		since := state.Watermarks[source]

		fetched, err := src.Fetch(ctx, since)
		if err != nil {
			slog.Error("error fetching articles", "source", source, "error", err)
			continue
		}

		fresh, dropped := p.filterNew(ctx, fetched)

		if len(fresh) > 0 {
			if err := p.store.MarkSeen(fresh); err != nil {
				slog.Error("error saving articles", "source", source, "error", err)
				continue
			}
		}

		mark := since
		for _, a := range fresh {
			if a.UpdatedAt.After(mark) {
				mark = a.UpdatedAt
			}
		}
		if mark.After(since) {
			next.Watermarks[source] = mark
			if p.marks != nil {
				if err := p.marks.SetWatermark(source, mark); err != nil {
					slog.Warn("error persisting watermark", "source", source, "error", err)
				}
			}
		}

		slog.Info("poll complete", "source", source, "fetched", len(fetched), "new", len(fresh), "duplicated", dropped)
	}

	return next
}

func (p *Poller) filterNew(ctx context.Context, fetched []news.Article) ([]model.RawArticle, int) {
	var fresh []model.RawArticle
	dropped := 0
	for _, a := range fetched {
		raw := toRawArticle(a)

		seen, err := p.store.HasSeen(raw)
		if err != nil {
			slog.Error("error checking article", "source", raw.Source, "url", raw.URL, "error", err)
			continue
		}
		if seen {
			dropped++
			continue
		}

		if raw.Body == "" && p.bodies != nil {
			raw.Body = p.bodies.Fetch(ctx, raw.URL)
		}

		fresh = append(fresh, raw)
	}
	return fresh, dropped
}

// Run polls on a fixed interval until the context is cancelled. Cancellation
// stops future cycles; an in-flight cycle always finishes.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	state := p.LoadState()
	state = p.RunOnce(ctx, state)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("polling stopped")
			return
		case <-ticker.C:
			state = p.RunOnce(ctx, state)
		}
	}
}

func toRawArticle(a news.Article) model.RawArticle {
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = a.PublishedAt
	}
	tier := a.SourceTier
	if tier == "" {
		tier = model.TierOther
	}
	return model.RawArticle{
		ExternalID:  a.ExternalID,
		Source:      a.Source,
		URL:         a.URL,
		Title:       a.Title,
		PublishedAt: a.PublishedAt,
		UpdatedAt:   updatedAt,
		Tickers:     a.Tickers,
		Channels:    a.Channels,
		Body:        a.Body,
		SourceTier:  tier,
		Status:      model.StatusNew,
	}
}
