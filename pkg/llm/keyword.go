package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
)

var carrierTerms = map[string]model.Carrier{
	"ups":                   model.CarrierUPS,
	"united parcel service": model.CarrierUPS,
	"fedex":                 model.CarrierFedEx,
	"federal express":       model.CarrierFedEx,
}

var costTerms = []string{
	"rate increase",
	"general rate increase",
	"gri",
	"surcharge",
	"fuel surcharge",
	"tariff",
	"pricing",
	"rate change",
	"price increase",
	"dimensional weight",
	"dim divisor",
	"minimum charge",
	"peak season",
	"delivery area",
	"accessorial",
}

// KeywordClassifier is the deterministic Stage 1 fallback used when no model
// credential is configured or the heuristic is forced. An article is relevant
// iff it mentions a known carrier and at least one cost term.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(_ context.Context, article model.RawArticle) (*model.Stage1Result, error) {
	text := strings.ToLower(article.Title + "\n" + article.Body)

	var carriers []model.Carrier
	seen := map[model.Carrier]bool{}
	for term, carrier := range carrierTerms {
		if strings.Contains(text, term) && !seen[carrier] {
			seen[carrier] = true
			carriers = append(carriers, carrier)
		}
	}
	sortCarriers(carriers)

	var costHits []string
	for _, term := range costTerms {
		if strings.Contains(text, term) {
			costHits = append(costHits, term)
		}
	}

	result := &model.Stage1Result{
		CarrierMentions: carriers,
		IsCostRelated:   len(costHits) > 0,
		SourceTier:      article.SourceTier,
	}

	switch {
	case len(carriers) > 0 && len(costHits) > 0:
		result.IsRelevant = true
		result.Confidence = 0.6
		result.RelevanceReason = fmt.Sprintf("keyword heuristic: carrier mention with cost terms (%s)",
			strings.Join(costHits, ", "))
	case len(carriers) > 0:
		result.Confidence = 0.3
		result.RelevanceReason = "keyword heuristic: carrier mentioned but no cost terms found"
	default:
		result.Confidence = 0.2
		result.RelevanceReason = "keyword heuristic: no carrier mention"
	}

	return result, nil
}

// sortCarriers keeps mention order stable regardless of map iteration order.
func sortCarriers(carriers []model.Carrier) {
	sort.Strings(carriers)
}
