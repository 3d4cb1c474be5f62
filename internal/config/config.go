// Package config collects environment-driven settings for the pipeline
// binaries. Database and Redis connection strings are read by the db package
// directly; everything else lives here.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BenzingaAPIKey   string
	BenzingaPageSize int
	BenzingaChannels []string

	FinnhubAPIKey  string
	FinnhubSymbols []string

	NewsroomFeeds map[string]string

	PollInterval     time.Duration
	PollOnce         bool
	DryRun           bool
	FetchArticleBody bool
	BodyFetchTimeout time.Duration

	AnthropicAPIKey      string
	Stage1ForceHeuristic bool
	Stage1BatchSize      int
	Stage1SingleBatch    bool

	OpenAIAPIKey      string
	Stage2BatchSize   int
	Stage2MaxRuntime  time.Duration
	Stage2MaxBodySize int
}

func Load() Config {
	return Config{
		BenzingaAPIKey:   os.Getenv("BENZINGA_API_KEY"),
		BenzingaPageSize: envInt("BENZINGA_PAGE_SIZE", 50),
		BenzingaChannels: envList("BENZINGA_CHANNELS", []string{"News", "Logistics"}),

		FinnhubAPIKey:  os.Getenv("FINNHUB_API_KEY"),
		FinnhubSymbols: envList("FINNHUB_SYMBOLS", []string{"UPS", "FDX"}),

		NewsroomFeeds: newsroomFeeds(),

		PollInterval:     envDuration("POLL_INTERVAL", 60*time.Second),
		PollOnce:         envBool("POLL_ONCE", false),
		DryRun:           envBool("DRY_RUN", false),
		FetchArticleBody: envBool("FETCH_ARTICLE_BODY", true),
		BodyFetchTimeout: envDuration("BODY_FETCH_TIMEOUT", 10*time.Second),

		AnthropicAPIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		Stage1ForceHeuristic: envBool("STAGE1_FORCE_HEURISTIC", false),
		Stage1BatchSize:      envInt("STAGE1_BATCH_SIZE", 20),
		Stage1SingleBatch:    envBool("STAGE1_SINGLE_BATCH", false),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		Stage2BatchSize:   envInt("STAGE2_BATCH_SIZE", 10),
		Stage2MaxRuntime:  envDuration("STAGE2_MAX_RUNTIME", 4*time.Minute),
		Stage2MaxBodySize: envInt("STAGE2_MAX_BODY_CHARS", 12000),
	}
}

// newsroomFeeds maps source names to RSS feed URLs. The carrier newsroom
// feeds ship as defaults and can be overridden or disabled per carrier.
func newsroomFeeds() map[string]string {
	feeds := map[string]string{
		"UPS Newsroom":   "https://about.ups.com/us/en/newsroom/rss.xml",
		"FedEx Newsroom": "https://newsroom.fedex.com/newsroom/rss",
	}

	if v := os.Getenv("UPS_NEWSROOM_FEED_URL"); v != "" {
		feeds["UPS Newsroom"] = v
	}
	if v := os.Getenv("FEDEX_NEWSROOM_FEED_URL"); v != "" {
		feeds["FedEx Newsroom"] = v
	}
	if envBool("DISABLE_NEWSROOM_FEEDS", false) {
		return map[string]string{}
	}

	return feeds
}

func envInt(name string, defaultValue int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer env var, using default", "name", name, "value", raw, "default", defaultValue)
		return defaultValue
	}

	return v
}

func envBool(name string, defaultValue bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean env var, using default", "name", name, "value", raw, "default", defaultValue)
		return defaultValue
	}

	return v
}

func envDuration(name string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration env var, using default", "name", name, "value", raw, "default", defaultValue)
		return defaultValue
	}

	return v
}

func envList(name string, defaultValue []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}

	return values
}
