package emissions

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/carbonforge/cbamcalc/internal/logging"
	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// CalculateTotal runs every entry of the input through its calculation
// and aggregates the totals.
//
// The direct subtotal follows a binary switch: when the input carries
// any generic blocks, the blocks subtotal entirely replaces the legacy
// anode/PFC subtotal, even if the blocks cover unrelated gases or
// processes. Legacy rows are still computed and returned for
// transparency, but contribute zero to the summary in that case. When
// no blocks exist, the legacy subtotal is used. The switch applies per
// aggregation call, never per entry.
func CalculateTotal(ctx context.Context, input Input, tables refdata.Tables) Result {
	log := logging.FromContext(ctx)

	result := Result{
		RunID:  ulid.Make().String(),
		Period: input.Period,
	}

	for _, entry := range input.Fuels {
		row := CalcCombustion(entry, tables)
		result.Fuels = append(result.Fuels, row)
		result.CombustionCO2e += row.CO2e
	}

	for _, entry := range input.Electricity {
		row := CalcElectricity(entry)
		result.Electricity = append(result.Electricity, row)
		result.ElectricityCO2e += row.CO2e
	}

	for _, entry := range input.Anodes {
		row := CalcAnode(entry, tables)
		result.Anodes = append(result.Anodes, row)
		result.LegacyCO2e += row.CO2e
	}

	for _, entry := range input.PFCs {
		row := CalcPFC(entry, tables)
		result.PFCs = append(result.PFCs, row)
		result.LegacyCO2e += row.CO2e
	}

	for _, block := range input.Blocks {
		row := CalcBlock(block, tables)
		if row.Err != "" {
			log.Warn().
				Str("component", "emissions").
				Str("block_id", block.ID).
				Str("error", row.Err).
				Msg("emission block formula failed, block zeroed")
		}
		result.Blocks = append(result.Blocks, row)
		result.BlocksCO2e += row.CO2e
	}

	processDirect := result.LegacyCO2e
	result.Mode = ModeLegacy
	if len(input.Blocks) > 0 {
		processDirect = result.BlocksCO2e
		result.Mode = ModeBlocks
	}

	result.DirectCO2e = result.CombustionCO2e + processDirect
	result.IndirectCO2e = result.ElectricityCO2e
	result.TotalCO2e = result.DirectCO2e + result.IndirectCO2e

	log.Debug().
		Str("component", "emissions").
		Str("operation", "calculate_total").
		Str("run_id", result.RunID).
		Str("mode", string(result.Mode)).
		Float64("direct_co2e_t", result.DirectCO2e).
		Float64("indirect_co2e_t", result.IndirectCO2e).
		Float64("total_co2e_t", result.TotalCO2e).
		Msg("aggregated emissions")

	return result
}
