package news

import (
	"context"
	"time"
)

// Article is the provider-neutral shape every source fetcher maps into.
type Article struct {
	ExternalID  string
	Title       string
	URL         string
	Source      string
	Publisher   string
	PublishedAt time.Time
	UpdatedAt   time.Time
	Tickers     []string
	Channels    []string
	Body        string
	SourceTier  string
}

// NewsClient fetches the latest page of articles from one provider. since is
// the poller's watermark; sources that cannot narrow server-side may ignore it.
type NewsClient interface {
	Fetch(ctx context.Context, since time.Time) ([]Article, error)
	Name() string
}
