package emissions

import (
	"math"

	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// Unit conversions used by the combustion chain.
const (
	gjPerTJ  = 1000.0
	kgPerTon = 1000.0
)

// sanitize coerces invalid numeric input to 0: NaN, infinities, and
// negative quantities all become 0 so aggregation totals stay
// well-defined. Range validation beyond this belongs to the caller.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// resolveFactor picks the override when present, else the default, and
// reports which one was used. A default taken from an unknown fuel type
// is flagged as missing, so audit readers can tell a real default apart
// from a zero that stands in for "no such fuel".
func resolveFactor(override *float64, def float64, known bool) (float64, FactorSource) {
	if override != nil {
		return *override, SourceOverride
	}
	if !known {
		return def, SourceMissing
	}
	return def, SourceDefault
}

// CalcCombustion computes the per-gas masses and CO2e for one fuel
// entry.
//
// The chain is fixed and must not be reordered, because audit tooling
// recomputes it from the lineage record step by step:
//
//	energy (GJ)  = quantity × NCV
//	energy (TJ)  = energy (GJ) / 1000
//	mass X (t)   = energy (TJ) × EF_X (kg/TJ) / 1000
//	CO2e (t)     = Σ mass(X) × GWP(X)
//
// Energy is computed once and reused for all three gases. Per-entry
// overrides always supersede the fuel-type defaults. An unknown fuel
// type with no overrides contributes zero.
func CalcCombustion(entry FuelEntry, tables refdata.Tables) FuelResult {
	defaults, known := tables.FuelFor(entry.FuelType)

	ncv, ncvSrc := resolveFactor(entry.NCVOverride, defaults.NCV, known)
	efCO2, co2Src := resolveFactor(entry.EFCO2Override, defaults.EFCO2, known)
	efCH4, ch4Src := resolveFactor(entry.EFCH4Override, defaults.EFCH4, known)
	efN2O, n2oSrc := resolveFactor(entry.EFN2OOverride, defaults.EFN2O, known)

	quantity := sanitize(entry.Quantity)
	ncv = sanitize(ncv)
	efCO2 = sanitize(efCO2)
	efCH4 = sanitize(efCH4)
	efN2O = sanitize(efN2O)

	energyGJ := quantity * ncv
	energyTJ := energyGJ / gjPerTJ
	massCO2 := energyTJ * efCO2 / kgPerTon
	massCH4 := energyTJ * efCH4 / kgPerTon
	massN2O := energyTJ * efN2O / kgPerTon

	co2e := massCO2*tables.GWPFor(refdata.GasCO2) +
		massCH4*tables.GWPFor(refdata.GasCH4) +
		massN2O*tables.GWPFor(refdata.GasN2O)

	return FuelResult{
		EntryID:  entry.ID,
		FuelType: entry.FuelType,
		EnergyGJ: energyGJ,
		EnergyTJ: energyTJ,
		MassCO2:  massCO2,
		MassCH4:  massCH4,
		MassN2O:  massN2O,
		CO2e:     co2e,
		Lineage: Lineage{
			Inputs: map[string]float64{
				"quantity": quantity,
				"ncv":      ncv,
				"ef_co2":   efCO2,
				"ef_ch4":   efCH4,
				"ef_n2o":   efN2O,
				"gwp_co2":  tables.GWPFor(refdata.GasCO2),
				"gwp_ch4":  tables.GWPFor(refdata.GasCH4),
				"gwp_n2o":  tables.GWPFor(refdata.GasN2O),
			},
			Steps: []Step{
				{Name: "energy_gj", Value: energyGJ},
				{Name: "energy_tj", Value: energyTJ},
				{Name: "mass_co2_t", Value: massCO2},
				{Name: "mass_ch4_t", Value: massCH4},
				{Name: "mass_n2o_t", Value: massN2O},
				{Name: "co2e_t", Value: co2e},
			},
			FactorSources: map[string]FactorSource{
				"ncv":    ncvSrc,
				"ef_co2": co2Src,
				"ef_ch4": ch4Src,
				"ef_n2o": n2oSrc,
			},
		},
	}
}

// CalcElectricity computes the indirect CO2e of one electricity entry.
// The grid factor is already in tCO2e/MWh; no further conversion
// applies.
func CalcElectricity(entry ElectricityEntry) ElectricityResult {
	amount := sanitize(entry.AmountMWh)
	factor := sanitize(entry.GridFactor)
	co2e := amount * factor

	source := SourceDefault
	if entry.FactorOverridden {
		source = SourceOverride
	}

	return ElectricityResult{
		EntryID: entry.ID,
		CO2e:    co2e,
		Lineage: Lineage{
			Inputs: map[string]float64{
				"amount_mwh":  amount,
				"grid_factor": factor,
			},
			Steps: []Step{
				{Name: "co2e_t", Value: co2e},
			},
			FactorSources: map[string]FactorSource{
				"grid_factor": source,
			},
		},
	}
}
