// Package refdata holds the regulatory reference tables consumed by the
// calculation packages: fuel defaults, global-warming potentials, the
// CBAM phase-in schedule, certificate and credit price scenarios, markup
// rates, default emission intensities, and reference commodity prices.
//
// Tables are immutable values passed explicitly into each calculation
// entry point. Nothing in this package is mutated after construction, so
// concurrent calculations can share one Tables value.
package refdata

// Gas identifies a greenhouse gas tracked by the emission engine.
type Gas string

const (
	GasCO2  Gas = "CO2"
	GasCH4  Gas = "CH4"
	GasN2O  Gas = "N2O"
	GasCF4  Gas = "CF4"
	GasC2F6 Gas = "C2F6"
)

// PriceScenario selects a price path in scenario tables.
type PriceScenario string

const (
	ScenarioLow  PriceScenario = "LOW"
	ScenarioMid  PriceScenario = "MID"
	ScenarioHigh PriceScenario = "HIGH"
	// ScenarioNone disables deduction credits entirely.
	ScenarioNone PriceScenario = "NONE"
)

// FuelFactors are the default combustion factors for one fuel type.
// NCV is in GJ/t; emission factors are in kg per TJ of fuel energy.
type FuelFactors struct {
	Name  string  `yaml:"name"`
	NCV   float64 `yaml:"ncv_gj_per_t"`
	EFCO2 float64 `yaml:"ef_co2_kg_per_tj"`
	EFCH4 float64 `yaml:"ef_ch4_kg_per_tj"`
	EFN2O float64 `yaml:"ef_n2o_kg_per_tj"`
}

// PhaseInEntry is one year of the CBAM phase-in schedule. FreeShare and
// PayableShare sum to 1 for every year of the transition.
type PhaseInEntry struct {
	FreeShare    float64 `yaml:"free_share"`
	PayableShare float64 `yaml:"payable_share"`
}

// CreditEntry is one year/scenario cell of the deduction-credit table:
// the credit price in EUR/t and the share of embedded emissions the
// credit quota covers.
type CreditEntry struct {
	Price      float64 `yaml:"price"`
	QuotaShare float64 `yaml:"quota_share"`
}

// IntensityEntry is the regulatory default embedded-emission intensity
// for one CN code, in tCO2e per tonne of good.
type IntensityEntry struct {
	Sector string  `yaml:"sector"`
	Direct float64 `yaml:"direct"`
	Total  float64 `yaml:"total"`
}

// Tables bundles every reference table the calculation core consumes.
type Tables struct {
	// Fuels maps fuel-type identifiers to their default factors.
	Fuels map[string]FuelFactors `yaml:"fuels"`

	// GWP maps each gas to its CO2-equivalent multiplier.
	GWP map[Gas]float64 `yaml:"gwp"`

	// PhaseIn maps calendar years to free/payable shares.
	PhaseIn map[int]PhaseInEntry `yaml:"phase_in"`

	// CertPrices maps year then scenario to a certificate price in EUR/t.
	CertPrices map[int]map[PriceScenario]float64 `yaml:"cert_prices"`

	// Markup maps sector then year to the default-intensity markup rate.
	Markup map[string]map[int]float64 `yaml:"markup"`

	// Intensities maps CN codes to regulatory default intensities.
	Intensities map[string]IntensityEntry `yaml:"intensities"`

	// Credits maps year then scenario to deduction-credit entries.
	Credits map[int]map[PriceScenario]CreditEntry `yaml:"credits"`

	// CommodityPrices maps year then scenario to the reference commodity
	// price forecast in EUR/t, used for cost-ratio reporting.
	CommodityPrices map[int]map[PriceScenario]float64 `yaml:"commodity_prices"`
}

// GWPFor returns the CO2e multiplier for a gas. Unrecognized gases get a
// multiplier of 1 so a formula block declaring an exotic output still
// contributes its raw tonnage.
func (t Tables) GWPFor(gas Gas) float64 {
	if v, ok := t.GWP[gas]; ok {
		return v
	}
	return 1
}

// FuelFor looks up the default factors for a fuel-type identifier.
func (t Tables) FuelFor(fuelType string) (FuelFactors, bool) {
	f, ok := t.Fuels[fuelType]
	return f, ok
}

// PayableShare returns the payable emission share for a year, 0 when the
// year is outside the schedule.
func (t Tables) PayableShare(year int) float64 {
	return t.PhaseIn[year].PayableShare
}

// CertPrice returns the certificate price for a year and scenario,
// falling back to MID when the requested scenario has no entry for that
// year. A year with no entries at all yields 0.
func (t Tables) CertPrice(year int, scenario PriceScenario) float64 {
	prices, ok := t.CertPrices[year]
	if !ok {
		return 0
	}
	if p, ok := prices[scenario]; ok {
		return p
	}
	return prices[ScenarioMid]
}

// MarkupRate returns the default-intensity markup for a sector and year.
// Sectors without a dedicated schedule use the standard one.
func (t Tables) MarkupRate(sector string, year int) float64 {
	if sched, ok := t.Markup[sector]; ok {
		return sched[year]
	}
	return t.Markup[SectorStandard][year]
}

// DefaultIntensity returns the regulatory default intensity for a CN
// code. A missing entry resolves to zero intensity; callers that need
// to distinguish absence check ok.
func (t Tables) DefaultIntensity(cnCode string) (IntensityEntry, bool) {
	e, ok := t.Intensities[cnCode]
	return e, ok
}

// Credit returns the deduction-credit entry for a year and scenario,
// falling back to MID for unknown scenarios. Years outside the table
// yield a zero entry.
func (t Tables) Credit(year int, scenario PriceScenario) CreditEntry {
	entries, ok := t.Credits[year]
	if !ok {
		return CreditEntry{}
	}
	if e, ok := entries[scenario]; ok {
		return e
	}
	return entries[ScenarioMid]
}

// CommodityPrice returns the reference commodity price for a year and
// scenario with the same MID fallback as CertPrice.
func (t Tables) CommodityPrice(year int, scenario PriceScenario) float64 {
	prices, ok := t.CommodityPrices[year]
	if !ok {
		return 0
	}
	if p, ok := prices[scenario]; ok {
		return p
	}
	return prices[ScenarioMid]
}
