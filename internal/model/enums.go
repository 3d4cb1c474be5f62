package model

// Vocabularies used by the Stage 1 classifier and Stage 2 extractor. Values are
// fixed at the extraction contract and flow into the normalized event signature
// unchanged, so they must never be renamed without a data migration.

type Carrier = string

const (
	CarrierUPS   Carrier = "UPS"
	CarrierFedEx Carrier = "FedEx"
	CarrierOther Carrier = "Other"
)

type SourceTier = string

const (
	TierCarrierOfficial SourceTier = "carrier_official"
	TierMajorNews       SourceTier = "major_news"
	TierIndustryPress   SourceTier = "industry_press"
	TierBlog            SourceTier = "blog"
	TierOther           SourceTier = "other"
)

type EventType = string

const (
	EventAnnualGRI        EventType = "annual_gri"
	EventFuelTableUpdate  EventType = "fuel_table_update"
	EventNewSurcharge     EventType = "new_surcharge"
	EventSurchargeRemoved EventType = "surcharge_removed"
	EventDimFormulaChange EventType = "dim_formula_change"
	EventMinChargeChange  EventType = "min_charge_change"
	EventPeakSurcharge    EventType = "peak_surcharge_announcement"
	EventTargetedProgram  EventType = "targeted_program_change"
	EventContractual      EventType = "contractual_change"
	EventOther            EventType = "other"
)

type CostComponent = string

const (
	ComponentBaseTariff    CostComponent = "BaseTariff"
	ComponentFSC           CostComponent = "FSC"
	ComponentAHC           CostComponent = "AHC"
	ComponentLPS           CostComponent = "LPS"
	ComponentDAS           CostComponent = "DAS"
	ComponentEDAS          CostComponent = "EDAS"
	ComponentRAS           CostComponent = "RAS"
	ComponentMPC           CostComponent = "MPC"
	ComponentDIM           CostComponent = "DIM"
	ComponentPeakSurcharge CostComponent = "PeakSurcharge"
	ComponentOther         CostComponent = "Other"
)

type ImpactDirection = string

const (
	ImpactIncrease ImpactDirection = "increase"
	ImpactDecrease ImpactDirection = "decrease"
	ImpactMixed    ImpactDirection = "mixed"
	ImpactUnclear  ImpactDirection = "unclear"
)

type GeographicScope = string

const (
	ScopeUS                GeographicScope = "US"
	ScopeEU                GeographicScope = "EU"
	ScopeGlobal            GeographicScope = "Global"
	ScopeSpecificCountries GeographicScope = "SpecificCountries"
	ScopeUnknown           GeographicScope = "Unknown"
)

type Unit = string

const (
	UnitPerPackage  Unit = "per_package"
	UnitPerLb       Unit = "per_lb"
	UnitPerKg       Unit = "per_kg"
	UnitPerShipment Unit = "per_shipment"
	UnitOther       Unit = "other"
)
