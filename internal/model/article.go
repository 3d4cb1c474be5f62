package model

import "time"

const (
	StatusNew       = "new"
	StatusProcessed = "processed"
	StatusFailed    = "failed"
)

// RawArticle is one ingested news item. A (source, url) pair is inserted at most
// once; re-ingestion is a no-op. Status is mutated only by the stage runners.
type RawArticle struct {
	ID          int64
	ExternalID  string
	Source      string
	URL         string
	Title       string
	PublishedAt time.Time
	UpdatedAt   time.Time
	Tickers     []string
	Channels    []string
	Body        string
	SourceTier  SourceTier
	Status      string
	FetchedAt   time.Time
}

// Key is the natural dedup key: (source, url), falling back to (source, external id)
// for items without a canonical URL.
func (a RawArticle) Key() string {
	if a.URL != "" {
		return a.Source + "::" + a.URL
	}
	return a.Source + "::" + a.ExternalID
}

// Stage1Result is the relevance verdict for one raw article, 1:1 and upserted on
// reprocessing.
type Stage1Result struct {
	IsRelevant      bool       `json:"is_relevant"`
	RelevanceReason string     `json:"relevance_reason"`
	CarrierMentions []Carrier  `json:"carrier_mentions"`
	IsCostRelated   bool       `json:"is_cost_related"`
	SourceTier      SourceTier `json:"source_tier"`
	Confidence      float64    `json:"confidence"`
}

// RelevantArticle is the read-API view of a stage-1-relevant article.
type RelevantArticle struct {
	RawArticleID    int64
	Title           string
	URL             string
	RelevanceReason string
	Confidence      float64
	CarrierMentions []Carrier
	PublishedAt     time.Time
}
