// Package signature builds the normalized event signature: the stable string key
// by which two independently-extracted articles are recognized as describing the
// same real-world pricing event.
package signature

import (
	"strings"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
)

const delimiter = "|"

// Build joins the five identity fields as Carrier|PrimaryComponent|Geo|EffectiveDate|EventType.
// Missing fields are substituted with a literal placeholder. No case, whitespace
// or synonym normalization happens here; the inputs must already come from the
// extractor's fixed vocabularies.
func Build(fields model.EventSignatureFields) string {
	carrier := fields.Carrier
	if carrier == "" {
		carrier = model.CarrierOther
	}
	component := fields.PrimaryComponent
	if component == "" {
		component = model.ComponentOther
	}
	geo := fields.GeographicScope
	if geo == "" {
		geo = model.ScopeUnknown
	}
	effectiveDate := fields.EffectiveDate
	if effectiveDate == "" {
		effectiveDate = "unknown"
	}
	eventType := fields.EventType
	if eventType == "" {
		eventType = model.EventOther
	}

	return strings.Join([]string{carrier, component, geo, effectiveDate, eventType}, delimiter)
}
