package model

import "time"

// ArticleMetadata is the extractor's snapshot of the source article.
type ArticleMetadata struct {
	Title           string     `json:"title"`
	SourceURL       string     `json:"source_url"`
	SourceName      string     `json:"source_name"`
	PublicationDate string     `json:"publication_date"`
	SourceTier      SourceTier `json:"source_tier"`
}

// EventSummary describes the overall pricing event as extracted from one article.
type EventSummary struct {
	Carrier                []Carrier       `json:"carrier"`
	EventType              EventType       `json:"event_type"`
	ShortDescription       string          `json:"short_description"`
	AnnouncementDate       string          `json:"announcement_date"`
	EffectiveDate          string          `json:"effective_date"`
	GeographicScope        GeographicScope `json:"geographic_scope"`
	Countries              []string        `json:"countries"`
	ImpactDirectionOverall ImpactDirection `json:"impact_direction_overall"`
	DetailsAvailable       bool            `json:"details_available"`
	DetailsConfidence      float64         `json:"details_confidence"`
}

// Range is a closed numeric range with optional bounds.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// ServiceScope narrows a lever to specific products, service codes, zones or
// weight brackets.
type ServiceScope struct {
	ProductScope   []string `json:"product_scope"`
	ServiceCodes   []string `json:"service_codes"`
	ZoneRange      *Range   `json:"zone_range"`
	WeightRangeLbs *Range   `json:"weight_range_lbs"`
}

// IsZero reports whether the scope carries no narrowing at all.
func (s ServiceScope) IsZero() bool {
	return len(s.ProductScope) == 0 && len(s.ServiceCodes) == 0 &&
		s.ZoneRange == nil && s.WeightRangeLbs == nil
}

// LeverSnippet is a supporting quote from the article text.
type LeverSnippet struct {
	Field  string `json:"field"`
	Quote  string `json:"quote"`
	Offset *int   `json:"offset"`
}

// Lever is one discrete cost-change fact. LeverID is the merge key: two levers
// with the same id from different extractions of the same canonical event are the
// same fact and are reconciled, never duplicated.
type Lever struct {
	LeverID               string          `json:"lever_id"`
	CostComponent         CostComponent   `json:"cost_component"`
	ChangeType            string          `json:"change_type"`
	ImpactDirection       ImpactDirection `json:"impact_direction"`
	PercentChange         *float64        `json:"percent_change"`
	AbsoluteChangePerUnit *float64        `json:"absolute_change_per_unit"`
	Unit                  Unit            `json:"unit"`
	ServiceScope          ServiceScope    `json:"service_scope"`
	DimChange             bool            `json:"dim_change"`
	DimOldDivisor         *float64        `json:"dim_old_divisor"`
	DimNewDivisor         *float64        `json:"dim_new_divisor"`
	MinChargeOld          *float64        `json:"min_charge_old"`
	MinChargeNew          *float64        `json:"min_charge_new"`
	PeakWindow            string          `json:"peak_window"`
	PeakTriggerConditions string          `json:"peak_trigger_conditions"`
	DetailsAvailable      bool            `json:"details_available"`
	DetailsConfidence     float64         `json:"details_confidence"`
	ImpactFormulaHint     string          `json:"impact_formula_hint"`
	SupportingSnippets    []LeverSnippet  `json:"supporting_snippets"`
}

// EventSignatureFields are the five identity fields the normalized signature is
// built from.
type EventSignatureFields struct {
	Carrier          Carrier         `json:"carrier"`
	PrimaryComponent CostComponent   `json:"primary_component"`
	EventType        EventType       `json:"event_type"`
	EffectiveDate    string          `json:"effective_date"`
	GeographicScope  GeographicScope `json:"geographic_scope"`
}

// Stage2Extraction is one structured extraction per raw article, 1:1 and upserted.
type Stage2Extraction struct {
	ArticleMetadata             ArticleMetadata      `json:"article_metadata"`
	EventSummary                EventSummary         `json:"event_summary"`
	Levers                      []Lever              `json:"levers"`
	EventSignatureFields        EventSignatureFields `json:"event_signature_fields"`
	NormalizedEventSignature    string               `json:"normalized_event_signature"`
	ExtractionConfidenceOverall float64              `json:"extraction_confidence_overall"`
	Notes                       string               `json:"notes"`
}

// CanonicalEventSource attests that a raw article contributed to a canonical
// event. At most one row exists per (event, article) pair.
type CanonicalEventSource struct {
	RawArticleID    int64      `json:"raw_article_id"`
	SourceURL       string     `json:"source_url"`
	SourceName      string     `json:"source_name"`
	PublicationDate string     `json:"publication_date"`
	SourceTier      SourceTier `json:"source_tier"`
	UsedForLevers   bool       `json:"used_for_levers"`
}

// CanonicalEvent is the consolidated record for one real-world pricing event,
// keyed uniquely by its normalized signature. Descriptive scalars stay as first
// recorded; only the lever set and last_updated_at move on later contributions.
type CanonicalEvent struct {
	ID                  int64
	EventID             string
	NormalizedSignature string
	Carrier             Carrier
	EventType           EventType
	PrimaryComponent    CostComponent
	ShortDescription    string
	AnnouncementDate    string
	EffectiveDate       string
	GeographicScope     GeographicScope
	Countries           []string
	Levers              []Lever
	SourceArticles      []CanonicalEventSource
	ConfidenceOverall   float64
	CreatedAt           time.Time
	LastUpdatedAt       time.Time
}

// NewCanonicalEvent lifts a fresh extraction into canonical-event shape.
func NewCanonicalEvent(ex *Stage2Extraction) *CanonicalEvent {
	return &CanonicalEvent{
		EventID:             "evt_" + ex.NormalizedEventSignature,
		NormalizedSignature: ex.NormalizedEventSignature,
		Carrier:             ex.EventSignatureFields.Carrier,
		EventType:           ex.EventSignatureFields.EventType,
		PrimaryComponent:    ex.EventSignatureFields.PrimaryComponent,
		ShortDescription:    ex.EventSummary.ShortDescription,
		AnnouncementDate:    ex.EventSummary.AnnouncementDate,
		EffectiveDate:       ex.EventSummary.EffectiveDate,
		GeographicScope:     ex.EventSummary.GeographicScope,
		Countries:           ex.EventSummary.Countries,
		Levers:              ex.Levers,
		ConfidenceOverall:   ex.ExtractionConfidenceOverall,
	}
}

// CanonicalListItem is the read-API view of a canonical event with its
// contributing source URLs flattened.
type CanonicalListItem struct {
	CanonicalEvent
	SourceURLs []string
}

// ExtractionListItem is the read-API view of a stored extraction.
type ExtractionListItem struct {
	RawArticleID        int64
	Title               string
	URL                 string
	NormalizedSignature string
	Extraction          Stage2Extraction
	UpdatedAt           time.Time
}
