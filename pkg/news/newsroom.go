package news

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// NewsroomClient reads a carrier newsroom RSS/Atom feed. These feeds are the
// carrier's own announcements, so articles are tiered carrier_official.
type NewsroomClient struct {
	name       string
	feedURL    string
	parser     *gofeed.Parser
	httpClient *http.Client
}

func NewNewsroomClient(name, feedURL string) *NewsroomClient {
	return &NewsroomClient{
		name:       name,
		feedURL:    feedURL,
		parser:     gofeed.NewParser(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsroomClient) Name() string {
	return c.name
}

func (c *NewsroomClient) Fetch(ctx context.Context, since time.Time) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("newsroom request: %w", err)
	}
	req.Header.Set("User-Agent", "ParcelNewsFetch/2.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsroom fetch %s: %w", c.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsroom fetch %s: unexpected status %d", c.feedURL, resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsroom parse %s: %w", c.feedURL, err)
	}

	now := time.Now()
	articles := make([]Article, 0, len(feed.Items))
	for _, entry := range feed.Items {
		published := now
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		updated := published
		if entry.UpdatedParsed != nil {
			updated = *entry.UpdatedParsed
		}

		// RSS has no server-side narrowing; apply the watermark client-side.
		if !since.IsZero() && !updated.After(since) {
			continue
		}

		body := entry.Content
		if body == "" {
			body = entry.Description
		}

		articles = append(articles, Article{
			ExternalID:  fmt.Sprintf("%x", sha256.Sum256([]byte(entry.Link)))[:16],
			Title:       entry.Title,
			URL:         entry.Link,
			Source:      c.name,
			Publisher:   c.name,
			PublishedAt: published,
			UpdatedAt:   updated,
			Body:        body,
			SourceTier:  "carrier_official",
		})
	}

	return articles, nil
}
