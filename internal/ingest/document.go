// Package ingest normalizes raw exported records into the canonical
// schema consumed by the calculation packages.
//
// Exports from older report versions spell keys in snake_case, newer
// ones in camelCase, and some serialize numbers as strings. All of that
// tolerance lives here, at the boundary: core packages never branch on
// field-name spelling or value typing.
package ingest

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/carbonforge/cbamcalc/internal/allocation"
	"github.com/carbonforge/cbamcalc/internal/emissions"
	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// Document is one normalized activity dataset: the latest version of
// every entry for a reporting period, plus the installation's products.
type Document struct {
	Activity emissions.Input      `json:"activity"`
	Products []allocation.Product `json:"products,omitempty"`
}

// ParseDocument decodes a raw JSON export and maps it onto the
// canonical schema. Records missing an ID are assigned one so lineage
// rows stay addressable.
func ParseDocument(data []byte) (*Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing activity document: %w", err)
	}

	doc := &Document{}
	doc.Activity.Period = str(raw, "period")

	for _, m := range list(raw, "fuels", "fuel_entries", "fuelEntries") {
		doc.Activity.Fuels = append(doc.Activity.Fuels, mapFuel(m))
	}
	for _, m := range list(raw, "electricity", "electricity_entries", "electricityEntries") {
		doc.Activity.Electricity = append(doc.Activity.Electricity, mapElectricity(m))
	}
	for _, m := range list(raw, "anodes", "anode_entries", "anodeEntries") {
		doc.Activity.Anodes = append(doc.Activity.Anodes, mapAnode(m))
	}
	for _, m := range list(raw, "pfcs", "pfc_entries", "pfcEntries") {
		doc.Activity.PFCs = append(doc.Activity.PFCs, mapPFC(m))
	}
	for _, m := range list(raw, "blocks", "emission_blocks", "emissionBlocks") {
		doc.Activity.Blocks = append(doc.Activity.Blocks, mapBlock(m))
	}
	for _, m := range list(raw, "products") {
		doc.Products = append(doc.Products, mapProduct(m))
	}

	return doc, nil
}

func mapFuel(m map[string]any) emissions.FuelEntry {
	return emissions.FuelEntry{
		ID:            id(m),
		Period:        str(m, "period"),
		Process:       str(m, "process", "process_ref", "processRef"),
		FuelType:      str(m, "fuel_type", "fuelType"),
		Quantity:      num(m, "quantity", "amount"),
		Unit:          str(m, "unit"),
		NCVOverride:   numPtr(m, "ncv", "ncv_override", "ncvOverride"),
		EFCO2Override: numPtr(m, "ef_co2", "efCo2", "ef_co2_override"),
		EFCH4Override: numPtr(m, "ef_ch4", "efCh4", "ef_ch4_override"),
		EFN2OOverride: numPtr(m, "ef_n2o", "efN2o", "ef_n2o_override"),
	}
}

func mapElectricity(m map[string]any) emissions.ElectricityEntry {
	return emissions.ElectricityEntry{
		ID:               id(m),
		Period:           str(m, "period"),
		Process:          str(m, "process", "process_ref", "processRef"),
		AmountMWh:        num(m, "amount_mwh", "amountMwh", "mwh"),
		GridFactor:       num(m, "grid_factor", "gridFactor", "emission_factor", "emissionFactor"),
		FactorOverridden: boolean(m, "factor_overridden", "factorOverridden", "custom_factor", "customFactor"),
	}
}

func mapAnode(m map[string]any) emissions.AnodeEntry {
	return emissions.AnodeEntry{
		ID:             id(m),
		Period:         str(m, "period"),
		Process:        str(m, "process", "process_ref", "processRef"),
		ProductionT:    num(m, "production_t", "productionT", "production"),
		AnodeRateKgT:   num(m, "anode_rate_kg_t", "anodeRate", "anode_rate"),
		CarbonFraction: num(m, "carbon_fraction", "carbonFraction"),
		SulfurFraction: num(m, "sulfur_fraction", "sulfurFraction"),
		AshFraction:    num(m, "ash_fraction", "ashFraction"),
	}
}

func mapPFC(m map[string]any) emissions.PFCEntry {
	return emissions.PFCEntry{
		ID:                 id(m),
		Period:             str(m, "period"),
		Process:            str(m, "process", "process_ref", "processRef"),
		ProductionT:        num(m, "production_t", "productionT", "production"),
		AnodeEffectMinutes: num(m, "anode_effect_minutes", "anodeEffectMinutes", "aem"),
		SlopeFactor:        num(m, "slope_factor", "slopeFactor"),
		C2F6Ratio:          num(m, "c2f6_ratio", "c2f6Ratio", "weight_ratio", "weightRatio"),
	}
}

func mapBlock(m map[string]any) emissions.Block {
	block := emissions.Block{
		ID:      id(m),
		Period:  str(m, "period"),
		Process: str(m, "process", "process_ref", "processRef"),
		Gas:     refdata.Gas(str(m, "gas", "output_gas", "outputGas")),
		Formula: str(m, "formula"),
	}

	// Parameters appear either as an ordered list of {name, value}
	// objects or as a plain object map.
	switch params := firstOf(m, "params", "parameters").(type) {
	case []any:
		for _, item := range params {
			if pm, ok := item.(map[string]any); ok {
				block.Params = append(block.Params, emissions.Param{
					Name:  str(pm, "name", "key"),
					Value: num(pm, "value"),
				})
			}
		}
	case map[string]any:
		for _, name := range sortedKeys(params) {
			block.Params = append(block.Params, emissions.Param{
				Name:  name,
				Value: toFloat(params[name]),
			})
		}
	}

	return block
}

func mapProduct(m map[string]any) allocation.Product {
	product := allocation.Product{
		ID:       id(m),
		Name:     str(m, "name"),
		Quantity: num(m, "quantity", "quantity_produced", "quantityProduced"),
		Residue:  boolean(m, "residue", "is_residue", "isResidue"),
		Complex:  boolean(m, "complex", "is_complex", "isComplex", "complex_good", "complexGood"),
	}

	for _, pm := range list(m, "precursors") {
		product.Precursors = append(product.Precursors, allocation.Precursor{
			Name:         str(pm, "name"),
			MassFraction: num(pm, "mass_fraction", "massFraction", "mass_per_unit", "massPerUnit"),
			SEE:          num(pm, "see", "specific_embedded_emissions", "specificEmbeddedEmissions"),
			Source:       str(pm, "source", "source_type", "sourceType"),
		})
	}

	return product
}

// id returns the record's ID under any accepted spelling, minting a
// fresh one when absent.
func id(m map[string]any) string {
	if v := str(m, "id", "uuid", "entry_id", "entryId"); v != "" {
		return v
	}
	return uuid.NewString()
}
