package llm

import (
	"context"
	"testing"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/go-playground/assert/v2"
)

func TestKeywordClassify_CarrierWithCostTerms(t *testing.T) {
	c := NewKeywordClassifier()
	article := model.RawArticle{
		Title:      "UPS Announces General Rate Increase",
		Body:       "UPS said the rate increase averages 5.9% and a new fuel surcharge table applies.",
		SourceTier: model.TierMajorNews,
	}

	result, err := c.Classify(context.Background(), article)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, result.IsRelevant)
	assert.Equal(t, true, result.IsCostRelated)
	assert.Equal(t, []model.Carrier{model.CarrierUPS}, result.CarrierMentions)
	assert.Equal(t, model.TierMajorNews, result.SourceTier)
	assert.Equal(t, 0.6, result.Confidence)
}

func TestKeywordClassify_CarrierWithoutCostTerms(t *testing.T) {
	c := NewKeywordClassifier()
	article := model.RawArticle{
		Title: "FedEx Opens New Memphis Facility",
		Body:  "The company celebrated the opening with local officials.",
	}

	result, err := c.Classify(context.Background(), article)

	assert.Equal(t, nil, err)
	assert.Equal(t, false, result.IsRelevant)
	assert.Equal(t, false, result.IsCostRelated)
	assert.Equal(t, []model.Carrier{model.CarrierFedEx}, result.CarrierMentions)
}

func TestKeywordClassify_NoCarrier(t *testing.T) {
	c := NewKeywordClassifier()
	article := model.RawArticle{
		Title: "Freight rates climb across ocean lanes",
		Body:  "Container pricing continued to rise.",
	}

	result, err := c.Classify(context.Background(), article)

	assert.Equal(t, nil, err)
	assert.Equal(t, false, result.IsRelevant)
	assert.Equal(t, 0, len(result.CarrierMentions))
}

func TestKeywordClassify_Deterministic(t *testing.T) {
	c := NewKeywordClassifier()
	article := model.RawArticle{
		Title: "UPS and FedEx both adjust peak season surcharge schedules",
		Body:  "Both carriers updated pricing ahead of the holidays.",
	}

	first, err := c.Classify(context.Background(), article)
	assert.Equal(t, nil, err)
	second, err := c.Classify(context.Background(), article)
	assert.Equal(t, nil, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []model.Carrier{model.CarrierFedEx, model.CarrierUPS}, first.CarrierMentions)
}
