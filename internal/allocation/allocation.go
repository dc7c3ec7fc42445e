// Package allocation distributes an installation's aggregate emissions
// across its output products by mass share and computes each product's
// specific embedded emissions (SEE).
package allocation

import (
	"context"
	"math"

	"github.com/carbonforge/cbamcalc/internal/emissions"
	"github.com/carbonforge/cbamcalc/internal/logging"
)

// Precursor is an upstream input good whose embedded emissions roll up
// into a complex downstream product. MassFraction is tonnes of
// precursor per tonne of product; SEE is the precursor's specific
// embedded emissions in tCO2e/t.
type Precursor struct {
	Name         string  `json:"name"`
	MassFraction float64 `json:"mass_fraction"`
	SEE          float64 `json:"see"`
	// Source records whether the SEE value is actual or a regulatory
	// default ("actual" / "default").
	Source string `json:"source"`
}

// Product is one output good of the installation.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Residue  bool    `json:"residue"`
	// Complex marks goods classified as using CBAM precursor inputs;
	// only complex goods accumulate precursor emissions.
	Complex    bool        `json:"complex"`
	Precursors []Precursor `json:"precursors,omitempty"`
}

// Settings controls allocation behavior.
type Settings struct {
	// TreatResidueAsWaste excludes residue products from allocation:
	// they receive no share and their mass is removed from the
	// denominator.
	TreatResidueAsWaste bool `json:"treat_residue_as_waste"`
}

// ProductFootprint is the allocation outcome for one product. SEEDirect
// and SEEIndirect exclude the precursor contribution so projections can
// select scope; SEE includes it.
type ProductFootprint struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`

	Share             float64 `json:"share"`
	Excluded          bool    `json:"excluded"`
	AllocatedDirect   float64 `json:"allocated_direct_t"`
	AllocatedIndirect float64 `json:"allocated_indirect_t"`
	PrecursorCO2e     float64 `json:"precursor_co2e_t"`

	SEE         float64 `json:"see"`
	SEEDirect   float64 `json:"see_direct"`
	SEEIndirect float64 `json:"see_indirect"`
}

// CalculatePCF allocates an emission result's direct and indirect
// totals across products by mass share.
//
// The share of an eligible product is its quantity over the total
// eligible quantity; excluded products and an empty denominator both
// yield a share of 0. Precursor emissions of complex goods are added on
// top of the product's own allocated total without passing through the
// share. SEE figures guard division by zero and report 0 for
// zero-quantity products.
func CalculatePCF(ctx context.Context, result emissions.Result, products []Product, settings Settings) []ProductFootprint {
	log := logging.FromContext(ctx)

	var totalMass float64
	for _, p := range products {
		if settings.TreatResidueAsWaste && p.Residue {
			continue
		}
		totalMass += clampMass(p.Quantity)
	}

	footprints := make([]ProductFootprint, 0, len(products))
	for _, p := range products {
		fp := ProductFootprint{ProductID: p.ID, Name: p.Name}

		excluded := settings.TreatResidueAsWaste && p.Residue
		fp.Excluded = excluded

		if !excluded && totalMass > 0 {
			fp.Share = clampMass(p.Quantity) / totalMass
		}

		fp.AllocatedDirect = result.DirectCO2e * fp.Share
		fp.AllocatedIndirect = result.IndirectCO2e * fp.Share

		if p.Complex {
			for _, pre := range p.Precursors {
				fp.PrecursorCO2e += clampMass(pre.MassFraction) * clampMass(pre.SEE) * clampMass(p.Quantity)
			}
		}

		quantity := clampMass(p.Quantity)
		if quantity > 0 {
			fp.SEE = (fp.AllocatedDirect + fp.AllocatedIndirect + fp.PrecursorCO2e) / quantity
			fp.SEEDirect = fp.AllocatedDirect / quantity
			fp.SEEIndirect = fp.AllocatedIndirect / quantity
		}

		footprints = append(footprints, fp)
	}

	log.Debug().
		Str("component", "allocation").
		Str("operation", "calculate_pcf").
		Int("products", len(products)).
		Float64("total_mass_t", totalMass).
		Msg("allocated product footprints")

	return footprints
}

// clampMass coerces invalid or negative masses to 0, mirroring the
// numeric policy of the emission engine.
func clampMass(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
