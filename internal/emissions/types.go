// Package emissions converts raw activity data into per-gas masses and
// CO2-equivalent totals, with a lineage record per computation so audits
// can recompute every figure from its inputs.
package emissions

import "github.com/carbonforge/cbamcalc/internal/refdata"

// FactorSource records where a calculation factor came from.
type FactorSource string

const (
	// SourceDefault marks a factor taken from the fuel-type or grid default.
	SourceDefault FactorSource = "default"
	// SourceOverride marks a factor supplied on the entry itself.
	SourceOverride FactorSource = "override"
	// SourceMissing marks a factor that resolved to zero because the fuel
	// type has no default entry and the entry carried no override.
	SourceMissing FactorSource = "missing"
)

// FuelEntry is one combustion activity record. Quantity is in the
// entry's native unit (tonnes for the built-in fuel table). Override
// pointers, when non-nil, supersede the fuel-type defaults.
type FuelEntry struct {
	ID       string  `json:"id"`
	Period   string  `json:"period"` // year-month, e.g. "2025-03"
	Process  string  `json:"process"`
	FuelType string  `json:"fuel_type"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	NCVOverride   *float64 `json:"ncv_override,omitempty"`
	EFCO2Override *float64 `json:"ef_co2_override,omitempty"`
	EFCH4Override *float64 `json:"ef_ch4_override,omitempty"`
	EFN2OOverride *float64 `json:"ef_n2o_override,omitempty"`
}

// ElectricityEntry is one electricity consumption record. GridFactor is
// in tCO2e/MWh; FactorOverridden distinguishes a user-supplied factor
// from the grid default for the lineage record.
type ElectricityEntry struct {
	ID               string  `json:"id"`
	Period           string  `json:"period"`
	Process          string  `json:"process"`
	AmountMWh        float64 `json:"amount_mwh"`
	GridFactor       float64 `json:"grid_factor"`
	FactorOverridden bool    `json:"factor_overridden"`
}

// AnodeEntry is a legacy aluminium anode-consumption record.
type AnodeEntry struct {
	ID             string  `json:"id"`
	Period         string  `json:"period"`
	Process        string  `json:"process"`
	ProductionT    float64 `json:"production_t"`
	AnodeRateKgT   float64 `json:"anode_rate_kg_t"`
	CarbonFraction float64 `json:"carbon_fraction"`
	SulfurFraction float64 `json:"sulfur_fraction"`
	AshFraction    float64 `json:"ash_fraction"`
}

// PFCEntry is a legacy perfluorocarbon record from anode effects.
type PFCEntry struct {
	ID                 string  `json:"id"`
	Period             string  `json:"period"`
	Process            string  `json:"process"`
	ProductionT        float64 `json:"production_t"`
	AnodeEffectMinutes float64 `json:"anode_effect_minutes"`
	SlopeFactor        float64 `json:"slope_factor"`
	C2F6Ratio          float64 `json:"c2f6_ratio"`
}

// Param is one named numeric parameter of an emission block.
type Param struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Block is a generic process emission source: any source whose tonnage
// is expressible as an arithmetic formula over named parameters.
type Block struct {
	ID      string      `json:"id"`
	Period  string      `json:"period"`
	Process string      `json:"process"`
	Gas     refdata.Gas `json:"gas"`
	Formula string      `json:"formula"`
	Params  []Param     `json:"params"`
}

// Input is the full activity scope for one aggregation run.
type Input struct {
	Period      string             `json:"period"`
	Fuels       []FuelEntry        `json:"fuels,omitempty"`
	Electricity []ElectricityEntry `json:"electricity,omitempty"`
	Anodes      []AnodeEntry       `json:"anodes,omitempty"`
	PFCs        []PFCEntry         `json:"pfcs,omitempty"`
	Blocks      []Block            `json:"blocks,omitempty"`
}

// Step is one intermediate value in a lineage record, in computation
// order. Downstream audits recompute the chain step by step.
type Step struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Lineage captures the inputs, intermediate conversions, and factor
// provenance of a single computation.
type Lineage struct {
	Inputs        map[string]float64      `json:"inputs"`
	Steps         []Step                  `json:"steps"`
	FactorSources map[string]FactorSource `json:"factor_sources,omitempty"`
}

// FuelResult is the outcome of one combustion calculation.
type FuelResult struct {
	EntryID  string  `json:"entry_id"`
	FuelType string  `json:"fuel_type"`
	EnergyGJ float64 `json:"energy_gj"`
	EnergyTJ float64 `json:"energy_tj"`
	MassCO2  float64 `json:"mass_co2_t"`
	MassCH4  float64 `json:"mass_ch4_t"`
	MassN2O  float64 `json:"mass_n2o_t"`
	CO2e     float64 `json:"co2e_t"`
	Lineage  Lineage `json:"lineage"`
}

// ElectricityResult is the outcome of one electricity calculation.
type ElectricityResult struct {
	EntryID string  `json:"entry_id"`
	CO2e    float64 `json:"co2e_t"`
	Lineage Lineage `json:"lineage"`
}

// AnodeResult is the outcome of one legacy anode calculation.
type AnodeResult struct {
	EntryID string  `json:"entry_id"`
	MassCO2 float64 `json:"mass_co2_t"`
	CO2e    float64 `json:"co2e_t"`
	Lineage Lineage `json:"lineage"`
}

// PFCResult is the outcome of one legacy PFC calculation.
type PFCResult struct {
	EntryID  string  `json:"entry_id"`
	MassCF4  float64 `json:"mass_cf4_t"`
	MassC2F6 float64 `json:"mass_c2f6_t"`
	CO2e     float64 `json:"co2e_t"`
	Lineage  Lineage `json:"lineage"`
}

// BlockResult is the outcome of one generic block. A formula error is
// carried on the row with zeroed values; it never aborts the sibling
// blocks or the aggregation.
type BlockResult struct {
	BlockID string      `json:"block_id"`
	Gas     refdata.Gas `json:"gas"`
	Tonnes  float64     `json:"tonnes"`
	CO2e    float64     `json:"co2e_t"`
	Err     string      `json:"error,omitempty"`
	Lineage Lineage     `json:"lineage"`
}

// AggregationMode records which source fed the process-direct subtotal.
type AggregationMode string

const (
	// ModeBlocks means generic blocks replaced the legacy anode/PFC
	// totals in the direct-emissions summary.
	ModeBlocks AggregationMode = "blocks"
	// ModeLegacy means no blocks existed and the legacy anode/PFC
	// totals were used.
	ModeLegacy AggregationMode = "legacy"
)

// Result is the aggregate outcome of one emission calculation run.
// Every field is plain data, safe to persist as an audit snapshot.
type Result struct {
	RunID  string `json:"run_id"`
	Period string `json:"period"`

	Fuels       []FuelResult        `json:"fuels,omitempty"`
	Electricity []ElectricityResult `json:"electricity,omitempty"`
	Anodes      []AnodeResult       `json:"anodes,omitempty"`
	PFCs        []PFCResult         `json:"pfcs,omitempty"`
	Blocks      []BlockResult       `json:"blocks,omitempty"`

	CombustionCO2e  float64 `json:"combustion_co2e_t"`
	ElectricityCO2e float64 `json:"electricity_co2e_t"`
	BlocksCO2e      float64 `json:"blocks_co2e_t"`
	LegacyCO2e      float64 `json:"legacy_co2e_t"`

	Mode         AggregationMode `json:"aggregation_mode"`
	DirectCO2e   float64         `json:"direct_co2e_t"`
	IndirectCO2e float64         `json:"indirect_co2e_t"`
	TotalCO2e    float64         `json:"total_co2e_t"`
}
