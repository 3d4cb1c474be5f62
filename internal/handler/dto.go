package handler

import "github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

type CanonicalEventResponse struct {
	EventID             string        `json:"event_id"`
	NormalizedSignature string        `json:"normalized_signature"`
	Carrier             string        `json:"carrier"`
	EventType           string        `json:"event_type"`
	PrimaryComponent    string        `json:"primary_component"`
	ShortDescription    string        `json:"short_description"`
	AnnouncementDate    string        `json:"announcement_date,omitempty"`
	EffectiveDate       string        `json:"effective_date,omitempty"`
	GeographicScope     string        `json:"geographic_scope"`
	Countries           []string      `json:"countries,omitempty"`
	Levers              []model.Lever `json:"levers"`
	ConfidenceOverall   float64       `json:"confidence_overall"`
	SourceURLs          []string      `json:"source_urls"`
	CreatedAt           string        `json:"created_at"`
	LastUpdatedAt       string        `json:"last_updated_at"`
}

type CanonicalFeedResponse struct {
	Events []CanonicalEventResponse `json:"events"`
	Limit  int                      `json:"limit"`
}

type ExtractionResponse struct {
	RawArticleID        int64                  `json:"raw_article_id"`
	Title               string                 `json:"title"`
	URL                 string                 `json:"url"`
	NormalizedSignature string                 `json:"normalized_signature"`
	Extraction          model.Stage2Extraction `json:"extraction"`
	UpdatedAt           string                 `json:"updated_at"`
}

type ExtractionFeedResponse struct {
	Extractions []ExtractionResponse `json:"extractions"`
	Limit       int                  `json:"limit"`
}

type RelevantArticleResponse struct {
	RawArticleID    int64    `json:"raw_article_id"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	RelevanceReason string   `json:"relevance_reason"`
	Confidence      float64  `json:"confidence"`
	CarrierMentions []string `json:"carrier_mentions"`
	PublishedAt     string   `json:"published_at"`
}

type RelevantFeedResponse struct {
	Articles []RelevantArticleResponse `json:"articles"`
	Limit    int                       `json:"limit"`
}
