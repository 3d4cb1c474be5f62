package news

import (
	"context"
	"strconv"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnHubClient pulls company news for the configured carrier tickers
// (typically UPS and FDX).
type FinnHubClient struct {
	client  *finnhub.DefaultApiService
	symbols []string
}

func NewFinnHubClient(apiKey string, symbols []string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client, symbols: symbols}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) Fetch(ctx context.Context, since time.Time) ([]Article, error) {
	from := since
	if from.IsZero() {
		from = time.Now().AddDate(0, 0, -7)
	}
	to := time.Now()

	var articles []Article
	for _, symbol := range c.symbols {
		res, _, err := c.client.CompanyNews(ctx).
			Symbol(symbol).
			From(from.Format("2006-01-02")).
			To(to.Format("2006-01-02")).
			Execute()
		if err != nil {
			return nil, err
		}

		for _, item := range res {
			a := Article{
				Source:     c.Name(),
				Tickers:    []string{symbol},
				SourceTier: "major_news",
			}

			if item.Id != nil {
				a.ExternalID = strconv.FormatInt(*item.Id, 10)
			}

			if item.Headline != nil {
				a.Title = *item.Headline
			}

			if item.Summary != nil {
				a.Body = *item.Summary
			}

			if item.Url != nil {
				a.URL = *item.Url
			}

			if item.Datetime != nil {
				a.PublishedAt = time.Unix(*item.Datetime, 0)
				a.UpdatedAt = a.PublishedAt
			}

			if item.Source != nil {
				a.Publisher = *item.Source
			}

			if item.Category != nil && *item.Category != "" {
				a.Channels = []string{*item.Category}
			}

			articles = append(articles, a)
		}
	}

	return articles, nil
}
