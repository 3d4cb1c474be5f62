package consolidate

import (
	"testing"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/go-playground/assert/v2"
)

func f(v float64) *float64 { return &v }

func baseLever() model.Lever {
	return model.Lever{
		LeverID:           "base_ups_ground_us",
		CostComponent:     model.ComponentBaseTariff,
		ChangeType:        "percent_increase",
		ImpactDirection:   model.ImpactIncrease,
		PercentChange:     f(5.9),
		DetailsAvailable:  true,
		DetailsConfidence: 0.9,
		ImpactFormulaHint: "NewCharge = OldCharge * 1.059",
		ServiceScope: model.ServiceScope{
			ProductScope: []string{"Ground"},
		},
		SupportingSnippets: []model.LeverSnippet{
			{Field: "percent_change", Quote: "UPS will increase Ground rates by an average of 5.9%."},
		},
	}
}

func TestMergeLevers_NewLeverAddedVerbatim(t *testing.T) {
	existing := []model.Lever{baseLever()}
	incoming := []model.Lever{{
		LeverID:           "dim_divisor_us",
		CostComponent:     model.ComponentDIM,
		DimChange:         true,
		DimOldDivisor:     f(139),
		DimNewDivisor:     f(125),
		DetailsConfidence: 0.7,
	}}

	merged := MergeLevers(existing, incoming)

	assert.Equal(t, 2, len(merged))
	assert.Equal(t, "base_ups_ground_us", merged[0].LeverID)
	assert.Equal(t, "dim_divisor_us", merged[1].LeverID)
	assert.Equal(t, f(125), merged[1].DimNewDivisor)
}

func TestMergeLevers_Idempotent(t *testing.T) {
	levers := []model.Lever{baseLever()}

	merged := MergeLevers(levers, levers)

	assert.Equal(t, 1, len(merged))
	assert.Equal(t, levers[0].PercentChange, merged[0].PercentChange)
	assert.Equal(t, levers[0].ChangeType, merged[0].ChangeType)
	assert.Equal(t, levers[0].DetailsConfidence, merged[0].DetailsConfidence)
	assert.Equal(t, levers[0].DetailsAvailable, merged[0].DetailsAvailable)
	assert.Equal(t, len(levers[0].SupportingSnippets), len(merged[0].SupportingSnippets))
}

func TestMergeLevers_NilNeverOverwritesPresentNumeric(t *testing.T) {
	existing := []model.Lever{baseLever()}
	incoming := baseLever()
	incoming.PercentChange = nil
	incoming.DetailsConfidence = 0.99

	merged := MergeLevers(existing, []model.Lever{incoming})

	assert.Equal(t, f(5.9), merged[0].PercentChange)
}

func TestMergeLevers_LowerConfidenceIncomingDoesNotOverwrite(t *testing.T) {
	existing := []model.Lever{baseLever()}
	incoming := baseLever()
	incoming.PercentChange = f(4.9)
	incoming.ChangeType = "flat_increase"
	incoming.DetailsConfidence = 0.5

	merged := MergeLevers(existing, []model.Lever{incoming})

	assert.Equal(t, f(5.9), merged[0].PercentChange)
	assert.Equal(t, "percent_increase", merged[0].ChangeType)
}

func TestMergeLevers_HigherConfidenceIncomingWins(t *testing.T) {
	existing := baseLever()
	existing.DetailsConfidence = 0.6
	existing.DetailsAvailable = false
	incoming := baseLever()
	incoming.PercentChange = f(6.9)
	incoming.MinChargeOld = f(11.25)
	incoming.MinChargeNew = f(11.9)
	incoming.DetailsConfidence = 0.8
	incoming.DetailsAvailable = true

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})

	assert.Equal(t, f(6.9), merged[0].PercentChange)
	assert.Equal(t, f(11.25), merged[0].MinChargeOld)
	assert.Equal(t, f(11.9), merged[0].MinChargeNew)
	assert.Equal(t, true, merged[0].DetailsAvailable)
}

func TestMergeLevers_ConfidenceMonotonicNonDecreasing(t *testing.T) {
	existing := baseLever()
	existing.DetailsConfidence = 0.9
	incoming := baseLever()
	incoming.DetailsConfidence = 0.4

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})
	assert.Equal(t, 0.9, merged[0].DetailsConfidence)

	merged = MergeLevers([]model.Lever{incoming}, []model.Lever{existing})
	assert.Equal(t, 0.9, merged[0].DetailsConfidence)
}

func TestMergeLevers_DetailsAvailableTieFavorsIncoming(t *testing.T) {
	existing := baseLever()
	existing.DetailsAvailable = true
	incoming := baseLever()
	incoming.DetailsAvailable = false

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})

	assert.Equal(t, false, merged[0].DetailsAvailable)
}

func TestMergeLevers_SnippetsUnionDedupedByQuote(t *testing.T) {
	existing := baseLever()
	incoming := baseLever()
	incoming.SupportingSnippets = []model.LeverSnippet{
		{Field: "percent_change", Quote: "UPS will increase Ground rates by an average of 5.9%."},
		{Field: "effective_date", Quote: "The new rates take effect December 26."},
		{Field: "effective_date", Quote: ""},
	}

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})

	assert.Equal(t, 2, len(merged[0].SupportingSnippets))
	assert.Equal(t, "UPS will increase Ground rates by an average of 5.9%.", merged[0].SupportingSnippets[0].Quote)
	assert.Equal(t, "The new rates take effect December 26.", merged[0].SupportingSnippets[1].Quote)
}

func TestMergeLevers_AbsentUnlistedFieldsTakeIncoming(t *testing.T) {
	existing := model.Lever{
		LeverID:           "peak_ahs",
		ImpactDirection:   model.ImpactIncrease,
		DetailsConfidence: 0.9,
	}
	incoming := model.Lever{
		LeverID:               "peak_ahs",
		CostComponent:         model.ComponentPeakSurcharge,
		Unit:                  model.UnitPerPackage,
		PeakWindow:            "Nov 24 - Jan 18",
		PeakTriggerConditions: "volume above 105% of baseline",
		DimChange:             true,
		DetailsConfidence:     0.5,
	}

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})

	assert.Equal(t, model.ComponentPeakSurcharge, merged[0].CostComponent)
	assert.Equal(t, model.UnitPerPackage, merged[0].Unit)
	assert.Equal(t, "Nov 24 - Jan 18", merged[0].PeakWindow)
	assert.Equal(t, "volume above 105% of baseline", merged[0].PeakTriggerConditions)
	assert.Equal(t, true, merged[0].DimChange)
}

func TestMergeLevers_PresentUnlistedFieldsKeepExisting(t *testing.T) {
	existing := baseLever()
	existing.Unit = model.UnitPerPackage
	existing.PeakWindow = "Nov 24 - Jan 18"
	incoming := baseLever()
	incoming.Unit = model.UnitPerShipment
	incoming.PeakWindow = "Dec 1 - Dec 31"
	incoming.DetailsConfidence = 0.99

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})

	assert.Equal(t, model.UnitPerPackage, merged[0].Unit)
	assert.Equal(t, "Nov 24 - Jan 18", merged[0].PeakWindow)
}

func TestMergeLevers_EmptyServiceScopeTakesIncoming(t *testing.T) {
	existing := baseLever()
	existing.ServiceScope = model.ServiceScope{}
	incoming := baseLever()
	incoming.DetailsConfidence = 0.2

	merged := MergeLevers([]model.Lever{existing}, []model.Lever{incoming})

	assert.Equal(t, []string{"Ground"}, merged[0].ServiceScope.ProductScope)
}
