package emissions

import (
	"github.com/carbonforge/cbamcalc/internal/formula"
	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// co2CarbonRatio is the molar mass ratio CO2/C: each tonne of oxidized
// carbon yields 44/12 tonnes of CO2.
const co2CarbonRatio = 44.0 / 12.0

// CalcAnode computes the CO2 from anode consumption in primary
// aluminium electrolysis:
//
//	CO2 (t) = production (t) × anodeRate (kg/t)/1000 × (C − S − ash) × 44/12
//
// The sulfur and ash fractions are inert and subtracted from the carbon
// fraction before oxidation.
func CalcAnode(entry AnodeEntry, tables refdata.Tables) AnodeResult {
	production := sanitize(entry.ProductionT)
	rate := sanitize(entry.AnodeRateKgT)
	carbon := sanitize(entry.CarbonFraction)
	sulfur := sanitize(entry.SulfurFraction)
	ash := sanitize(entry.AshFraction)

	anodeT := production * rate / kgPerTon
	oxidized := carbon - sulfur - ash
	massCO2 := anodeT * oxidized * co2CarbonRatio
	co2e := massCO2 * tables.GWPFor(refdata.GasCO2)

	return AnodeResult{
		EntryID: entry.ID,
		MassCO2: massCO2,
		CO2e:    co2e,
		Lineage: Lineage{
			Inputs: map[string]float64{
				"production_t":    production,
				"anode_rate_kg_t": rate,
				"carbon_fraction": carbon,
				"sulfur_fraction": sulfur,
				"ash_fraction":    ash,
			},
			Steps: []Step{
				{Name: "anode_t", Value: anodeT},
				{Name: "oxidized_fraction", Value: oxidized},
				{Name: "mass_co2_t", Value: massCO2},
				{Name: "co2e_t", Value: co2e},
			},
		},
	}
}

// CalcPFC computes perfluorocarbon emissions from anode effects using
// the slope method:
//
//	CF4 (t)  = production (t) × anode-effect minutes × slope factor
//	C2F6 (t) = CF4 × weight ratio
//	CO2e (t) = CF4 × GWP(CF4) + C2F6 × GWP(C2F6)
func CalcPFC(entry PFCEntry, tables refdata.Tables) PFCResult {
	production := sanitize(entry.ProductionT)
	minutes := sanitize(entry.AnodeEffectMinutes)
	slope := sanitize(entry.SlopeFactor)
	ratio := sanitize(entry.C2F6Ratio)

	massCF4 := production * minutes * slope
	massC2F6 := massCF4 * ratio
	co2e := massCF4*tables.GWPFor(refdata.GasCF4) + massC2F6*tables.GWPFor(refdata.GasC2F6)

	return PFCResult{
		EntryID:  entry.ID,
		MassCF4:  massCF4,
		MassC2F6: massC2F6,
		CO2e:     co2e,
		Lineage: Lineage{
			Inputs: map[string]float64{
				"production_t":         production,
				"anode_effect_minutes": minutes,
				"slope_factor":         slope,
				"c2f6_ratio":           ratio,
				"gwp_cf4":              tables.GWPFor(refdata.GasCF4),
				"gwp_c2f6":             tables.GWPFor(refdata.GasC2F6),
			},
			Steps: []Step{
				{Name: "mass_cf4_t", Value: massCF4},
				{Name: "mass_c2f6_t", Value: massC2F6},
				{Name: "co2e_t", Value: co2e},
			},
		},
	}
}

// CalcBlock evaluates a generic emission block's formula with its
// parameter values and converts the resulting tonnage by the GWP of
// the declared output gas. Gases not in the GWP set get a multiplier
// of 1.
//
// A formula error zeroes the block's tonnage and CO2e and carries the
// error string on the row; siblings are unaffected.
func CalcBlock(block Block, tables refdata.Tables) BlockResult {
	vars := make(map[string]float64, len(block.Params))
	inputs := make(map[string]float64, len(block.Params))
	for _, p := range block.Params {
		vars[p.Name] = p.Value
		inputs[p.Name] = p.Value
	}

	eval := formula.Evaluate(block.Formula, vars)
	if eval.Err != "" {
		return BlockResult{
			BlockID: block.ID,
			Gas:     block.Gas,
			Err:     eval.Err,
			Lineage: Lineage{Inputs: inputs},
		}
	}

	gwp := tables.GWPFor(block.Gas)
	co2e := eval.Value * gwp

	return BlockResult{
		BlockID: block.ID,
		Gas:     block.Gas,
		Tonnes:  eval.Value,
		CO2e:    co2e,
		Lineage: Lineage{
			Inputs: inputs,
			Steps: []Step{
				{Name: "tonnes", Value: eval.Value},
				{Name: "gwp", Value: gwp},
				{Name: "co2e_t", Value: co2e},
			},
		},
	}
}
