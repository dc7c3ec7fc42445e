package refdata

// Sector identifiers used by the markup schedule.
const (
	SectorStandard   = "standard"
	SectorFertiliser = "fertiliser"
	SectorAluminium  = "aluminium"
	SectorSteel      = "steel"
	SectorCement     = "cement"
)

// Projection window covered by the built-in schedules.
const (
	StartYear = 2026
	EndYear   = 2034
)

// Markup rate caps. The fertiliser sector keeps a reduced markup under
// the default-value rules; every other sector ramps to the standard cap
// from 2028 onward.
const (
	StandardMarkupCap   = 0.30
	FertiliserMarkupCap = 0.01
)

// Default returns the built-in reference tables: IPCC 2006 fuel factors,
// AR5 global-warming potentials, the CBAM definitive-regime phase-in
// schedule, and the price/markup/intensity scenarios shipped with the
// tool. The returned value is freshly built on every call so callers may
// hold it without aliasing package state.
func Default() Tables {
	return Tables{
		Fuels:           defaultFuels(),
		GWP:             defaultGWP(),
		PhaseIn:         defaultPhaseIn(),
		CertPrices:      defaultCertPrices(),
		Markup:          defaultMarkup(),
		Intensities:     defaultIntensities(),
		Credits:         defaultCredits(),
		CommodityPrices: defaultCommodityPrices(),
	}
}

// defaultFuels lists combustion defaults per fuel type.
// NCV in GJ/t, emission factors in kg/TJ.
// Source: IPCC 2006 Guidelines, Vol. 2, Tables 1.2 and 2.2.
func defaultFuels() map[string]FuelFactors {
	return map[string]FuelFactors{
		"natural_gas": {Name: "Natural gas", NCV: 48.0, EFCO2: 56100, EFCH4: 1.0, EFN2O: 0.1},
		"hard_coal":   {Name: "Hard coal", NCV: 25.8, EFCO2: 94600, EFCH4: 1.0, EFN2O: 1.5},
		"lignite":     {Name: "Lignite", NCV: 11.9, EFCO2: 101000, EFCH4: 1.0, EFN2O: 1.5},
		"fuel_oil":    {Name: "Heavy fuel oil", NCV: 40.4, EFCO2: 77400, EFCH4: 3.0, EFN2O: 0.6},
		"diesel":      {Name: "Diesel / gas oil", NCV: 43.0, EFCO2: 74100, EFCH4: 3.0, EFN2O: 0.6},
		"coke":        {Name: "Coke oven coke", NCV: 28.2, EFCO2: 107000, EFCH4: 1.0, EFN2O: 1.5},
		"petrol_coke": {Name: "Petroleum coke", NCV: 32.5, EFCO2: 97500, EFCH4: 3.0, EFN2O: 0.6},
	}
}

// defaultGWP is the IPCC AR5 100-year set used by the EU MRV rules.
func defaultGWP() map[Gas]float64 {
	return map[Gas]float64{
		GasCO2:  1,
		GasCH4:  28,
		GasN2O:  265,
		GasCF4:  6630,
		GasC2F6: 11100,
	}
}

// defaultPhaseIn is the CBAM definitive-regime schedule: the payable
// share rises as EU ETS free allocation is withdrawn.
// Source: Regulation (EU) 2023/956, Annex; ETS Directive phase-out path.
func defaultPhaseIn() map[int]PhaseInEntry {
	return map[int]PhaseInEntry{
		2026: {FreeShare: 0.975, PayableShare: 0.025},
		2027: {FreeShare: 0.95, PayableShare: 0.05},
		2028: {FreeShare: 0.90, PayableShare: 0.10},
		2029: {FreeShare: 0.775, PayableShare: 0.225},
		2030: {FreeShare: 0.515, PayableShare: 0.485},
		2031: {FreeShare: 0.39, PayableShare: 0.61},
		2032: {FreeShare: 0.265, PayableShare: 0.735},
		2033: {FreeShare: 0.14, PayableShare: 0.86},
		2034: {FreeShare: 0, PayableShare: 1.0},
	}
}

// defaultCertPrices is the certificate price forecast in EUR/tCO2e.
// MID tracks published ETS futures; LOW/HIGH bracket analyst ranges.
func defaultCertPrices() map[int]map[PriceScenario]float64 {
	return map[int]map[PriceScenario]float64{
		2026: {ScenarioLow: 70, ScenarioMid: 93, ScenarioHigh: 115},
		2027: {ScenarioLow: 74, ScenarioMid: 98, ScenarioHigh: 124},
		2028: {ScenarioLow: 78, ScenarioMid: 104, ScenarioHigh: 134},
		2029: {ScenarioLow: 82, ScenarioMid: 110, ScenarioHigh: 144},
		2030: {ScenarioLow: 86, ScenarioMid: 116, ScenarioHigh: 155},
		2031: {ScenarioLow: 90, ScenarioMid: 122, ScenarioHigh: 166},
		2032: {ScenarioLow: 94, ScenarioMid: 129, ScenarioHigh: 178},
		2033: {ScenarioLow: 98, ScenarioMid: 136, ScenarioHigh: 190},
		2034: {ScenarioLow: 102, ScenarioMid: 143, ScenarioHigh: 203},
	}
}

// defaultMarkup is the markup applied to regulatory default intensities.
// Standard sectors ramp to the 30% cap from 2028; fertilisers stay at
// the reduced 1% rate for the whole window.
func defaultMarkup() map[string]map[int]float64 {
	standard := map[int]float64{
		2026: 0.10,
		2027: 0.20,
		2028: StandardMarkupCap,
		2029: StandardMarkupCap,
		2030: StandardMarkupCap,
		2031: StandardMarkupCap,
		2032: StandardMarkupCap,
		2033: StandardMarkupCap,
		2034: StandardMarkupCap,
	}
	fertiliser := make(map[int]float64, EndYear-StartYear+1)
	for year := StartYear; year <= EndYear; year++ {
		fertiliser[year] = FertiliserMarkupCap
	}
	return map[string]map[int]float64{
		SectorStandard:   standard,
		SectorAluminium:  standard,
		SectorSteel:      standard,
		SectorCement:     standard,
		SectorFertiliser: fertiliser,
	}
}

// defaultIntensities lists regulatory default embedded-emission
// intensities per CN code in tCO2e/t. Direct excludes electricity;
// Total includes it.
func defaultIntensities() map[string]IntensityEntry {
	return map[string]IntensityEntry{
		"76011000": {Sector: SectorAluminium, Direct: 1.87, Total: 8.33}, // unwrought aluminium, not alloyed
		"76012080": {Sector: SectorAluminium, Direct: 1.95, Total: 8.56}, // unwrought aluminium alloys
		"76041010": {Sector: SectorAluminium, Direct: 2.12, Total: 8.90}, // aluminium bars and rods
		"72081000": {Sector: SectorSteel, Direct: 1.83, Total: 2.31},     // hot-rolled flat steel
		"72031000": {Sector: SectorSteel, Direct: 1.32, Total: 1.54},     // direct-reduced iron
		"25231000": {Sector: SectorCement, Direct: 0.89, Total: 0.97},    // cement clinker
		"31021010": {Sector: SectorFertiliser, Direct: 1.57, Total: 2.08}, // urea
	}
}

// defaultCredits is the deduction-credit price and quota forecast.
// Quota share is the fraction of embedded emissions the credit covers.
func defaultCredits() map[int]map[PriceScenario]CreditEntry {
	out := make(map[int]map[PriceScenario]CreditEntry, EndYear-StartYear+1)
	for i, year := 0, StartYear; year <= EndYear; i, year = i+1, year+1 {
		step := float64(i)
		out[year] = map[PriceScenario]CreditEntry{
			ScenarioLow:  {Price: 18 + 2*step, QuotaShare: 0.30},
			ScenarioMid:  {Price: 25 + 3*step, QuotaShare: 0.50},
			ScenarioHigh: {Price: 32 + 4*step, QuotaShare: 0.70},
		}
	}
	return out
}

// defaultCommodityPrices is the reference commodity price forecast in
// EUR/t, used only for the cost-as-share-of-price ratio.
func defaultCommodityPrices() map[int]map[PriceScenario]float64 {
	out := make(map[int]map[PriceScenario]float64, EndYear-StartYear+1)
	for i, year := 0, StartYear; year <= EndYear; i, year = i+1, year+1 {
		step := float64(i)
		out[year] = map[PriceScenario]float64{
			ScenarioLow:  2150 + 25*step,
			ScenarioMid:  2400 + 40*step,
			ScenarioHigh: 2700 + 60*step,
		}
	}
	return out
}
