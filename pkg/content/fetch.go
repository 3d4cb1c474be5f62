// Package content fetches article HTML and extracts readable body text. It is a
// heuristic fallback for sources that omit full bodies from their API payloads.
package content

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Containers commonly holding the article body, tried in order.
var bodySelectors = []string{
	"article",
	`[itemprop="articleBody"]`,
	".article-body",
	".article__body",
	".article-content",
	"#articleBody",
	"main",
}

const minBodyLength = 200

type Fetcher struct {
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Fetch returns extracted article text, or "" when anything goes wrong. A body
// fetch failure degrades to "no body"; it never aborts the article.
func (f *Fetcher) Fetch(ctx context.Context, url string) string {
	if err := f.limiter.Wait(ctx); err != nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("article body request failed", "url", url, "error", err)
		return ""
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Warn("article body fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("article body fetch failed", "url", url, "status", resp.StatusCode)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		slog.Warn("article body parse failed", "url", url, "error", err)
		return ""
	}

	for _, selector := range bodySelectors {
		el := doc.Find(selector)
		if el.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(el.First().Text())
		if len(text) > minBodyLength {
			return normalizeWhitespace(text)
		}
	}

	// Fallback: join paragraph text.
	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if text := strings.Join(paragraphs, "\n\n"); len(text) > minBodyLength {
		return normalizeWhitespace(text)
	}

	return ""
}

var (
	newlineRuns = regexp.MustCompile(`\r?\n\s*`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
)

func normalizeWhitespace(text string) string {
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
