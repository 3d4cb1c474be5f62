// Package consolidate merges newly extracted levers into a canonical event's
// existing lever set. Confidence, not recency, is the tie-break: a later
// low-confidence article never silently overwrites a well-supported earlier fact.
package consolidate

import "github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

// MergeLevers reconciles incoming levers against existing ones by lever_id.
// Levers with an unknown id are appended verbatim; matched levers are merged
// field-by-field. Existing levers keep their original order, new ones follow in
// incoming order.
func MergeLevers(existing, incoming []model.Lever) []model.Lever {
	merged := make([]model.Lever, len(existing))
	index := make(map[string]int, len(existing))
	for i, l := range existing {
		merged[i] = l
		index[l.LeverID] = i
	}

	for _, lever := range incoming {
		i, ok := index[lever.LeverID]
		if !ok {
			index[lever.LeverID] = len(merged)
			merged = append(merged, lever)
			continue
		}
		merged[i] = mergeLever(merged[i], lever)
	}

	return merged
}

// mergeLever reconciles one matched pair. a is the existing lever, b the
// incoming one; each field is decided independently.
func mergeLever(a, b model.Lever) model.Lever {
	confA := a.DetailsConfidence
	confB := b.DetailsConfidence

	out := a

	out.PercentChange = preferNumeric(a.PercentChange, b.PercentChange, confA, confB)
	out.AbsoluteChangePerUnit = preferNumeric(a.AbsoluteChangePerUnit, b.AbsoluteChangePerUnit, confA, confB)
	out.MinChargeOld = preferNumeric(a.MinChargeOld, b.MinChargeOld, confA, confB)
	out.MinChargeNew = preferNumeric(a.MinChargeNew, b.MinChargeNew, confA, confB)
	out.DimOldDivisor = preferNumeric(a.DimOldDivisor, b.DimOldDivisor, confA, confB)
	out.DimNewDivisor = preferNumeric(a.DimNewDivisor, b.DimNewDivisor, confA, confB)

	out.ChangeType = preferString(a.ChangeType, b.ChangeType, confA, confB)
	out.ImpactDirection = preferString(a.ImpactDirection, b.ImpactDirection, confA, confB)
	out.ImpactFormulaHint = preferString(a.ImpactFormulaHint, b.ImpactFormulaHint, confA, confB)

	// Fields outside the confidence policy keep the existing value unless it is
	// absent, in which case the incoming one fills it.
	out.CostComponent = fillAbsent(a.CostComponent, b.CostComponent)
	out.Unit = fillAbsent(a.Unit, b.Unit)
	out.PeakWindow = fillAbsent(a.PeakWindow, b.PeakWindow)
	out.PeakTriggerConditions = fillAbsent(a.PeakTriggerConditions, b.PeakTriggerConditions)
	if !a.DimChange {
		out.DimChange = b.DimChange
	}
	if a.ServiceScope.IsZero() {
		out.ServiceScope = b.ServiceScope
	}

	// Ties favor the incoming lever.
	if confB >= confA {
		out.DetailsAvailable = b.DetailsAvailable
	}

	// Confidence only ever increases under merge.
	out.DetailsConfidence = confA
	if confB > confA {
		out.DetailsConfidence = confB
	}

	out.SupportingSnippets = unionSnippets(a.SupportingSnippets, b.SupportingSnippets)

	return out
}

// preferNumeric keeps the incoming value when the existing one is absent or the
// incoming confidence is at least as high. A nil incoming value never overwrites
// a present existing value.
func preferNumeric(a, b *float64, confA, confB float64) *float64 {
	if b != nil && (a == nil || confB >= confA) {
		return b
	}
	return a
}

// fillAbsent keeps the existing value, taking the incoming one only when the
// existing value is empty. Confidence does not apply.
func fillAbsent(a, b string) string {
	if a == "" {
		return b
	}
	return a
}

// preferString follows the same policy with the empty string as absent.
func preferString(a, b string, confA, confB float64) string {
	if b != "" && (a == "" || confB >= confA) {
		return b
	}
	return a
}

// unionSnippets concatenates existing-then-incoming, dropping empty quotes and
// duplicates by exact quote text.
func unionSnippets(a, b []model.LeverSnippet) []model.LeverSnippet {
	seen := make(map[string]bool, len(a)+len(b))
	var out []model.LeverSnippet
	for _, s := range append(append([]model.LeverSnippet{}, a...), b...) {
		if s.Quote == "" || seen[s.Quote] {
			continue
		}
		seen[s.Quote] = true
		out = append(out, s)
	}
	return out
}
