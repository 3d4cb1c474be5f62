package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const benzingaBaseURL = "https://api.benzinga.com/api/v2/news"

type BenzingaClient struct {
	apiKey     string
	pageSize   int
	channels   []string
	baseURL    string
	httpClient *http.Client
}

func NewBenzingaClient(apiKey string, pageSize int, channels []string) *BenzingaClient {
	return &BenzingaClient{
		apiKey:     apiKey,
		pageSize:   pageSize,
		channels:   channels,
		baseURL:    benzingaBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BenzingaClient) Name() string {
	return "Benzinga"
}

func (c *BenzingaClient) Fetch(ctx context.Context, since time.Time) ([]Article, error) {
	params := url.Values{}
	params.Set("token", c.apiKey)
	params.Set("pagesize", strconv.Itoa(c.pageSize))
	params.Set("displayOutput", "full")
	if len(c.channels) > 0 {
		params.Set("channels", strings.Join(c.channels, ","))
	}
	if !since.IsZero() {
		params.Set("updatedSince", strconv.FormatInt(since.Unix(), 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("benzinga request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("benzinga fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("benzinga fetch: unexpected status %d", resp.StatusCode)
	}

	var items []benzingaItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("benzinga decode: %w", err)
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, c.mapItem(item))
	}

	return articles, nil
}

func (c *BenzingaClient) mapItem(item benzingaItem) Article {
	created := parseBenzingaTime(item.Created)
	updated := parseBenzingaTime(item.Updated)
	if updated.IsZero() {
		updated = created
	}

	tickers := make([]string, 0, len(item.Stocks))
	for _, s := range item.Stocks {
		if s.Name != "" {
			tickers = append(tickers, s.Name)
		}
	}

	channels := make([]string, 0, len(item.Channels))
	for _, ch := range item.Channels {
		if ch.Name != "" {
			channels = append(channels, ch.Name)
		}
	}

	body := item.Body
	if body == "" {
		body = item.Teaser
	}

	return Article{
		ExternalID:  strconv.FormatInt(item.ID, 10),
		Title:       item.Title,
		URL:         item.URL,
		Source:      c.Name(),
		Publisher:   item.Author,
		PublishedAt: created,
		UpdatedAt:   updated,
		Tickers:     tickers,
		Channels:    channels,
		Body:        body,
		SourceTier:  "major_news",
	}
}

// Benzinga timestamps come back RFC1123-style ("Mon, 02 Jan 2006 15:04:05 -0400").
func parseBenzingaTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

type benzingaItem struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	URL      string        `json:"url"`
	Author   string        `json:"author"`
	Created  string        `json:"created"`
	Updated  string        `json:"updated"`
	Teaser   string        `json:"teaser"`
	Body     string        `json:"body"`
	Stocks   []benzingaRef `json:"stocks"`
	Channels []benzingaRef `json:"channels"`
}

type benzingaRef struct {
	Name string `json:"name"`
}
