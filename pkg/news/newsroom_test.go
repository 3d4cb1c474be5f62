package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const newsroomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>UPS Newsroom</title>
    <item>
      <title>UPS Announces 2026 Rate Changes</title>
      <link>https://about.ups.com/rate-changes-2026</link>
      <description>UPS announced an average 5.9 percent rate increase effective December 26.</description>
      <pubDate>Fri, 10 Oct 2025 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>UPS Opens New Hub</title>
      <link>https://about.ups.com/new-hub</link>
      <description>UPS opened a regional hub.</description>
      <pubDate>Mon, 01 Sep 2025 12:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestNewsroomFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(newsroomFeed))
	}))
	defer srv.Close()

	client := NewNewsroomClient("UPS Newsroom", srv.URL)

	articles, err := client.Fetch(context.Background(), time.Time{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	a := articles[0]
	assert.Equal(t, "UPS Announces 2026 Rate Changes", a.Title)
	assert.Equal(t, "https://about.ups.com/rate-changes-2026", a.URL)
	assert.Equal(t, "UPS Newsroom", a.Source)
	assert.Equal(t, "carrier_official", a.SourceTier)
	assert.NotEqual(t, "", a.ExternalID)
	assert.Equal(t, 2025, a.PublishedAt.Year())
}

func TestNewsroomFetch_WatermarkFiltersOldItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsroomFeed))
	}))
	defer srv.Close()

	client := NewNewsroomClient("UPS Newsroom", srv.URL)

	since := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	articles, err := client.Fetch(context.Background(), since)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "UPS Announces 2026 Rate Changes", articles[0].Title)
}
