// Package projection computes multi-year carbon-border cost projections
// and scenario comparisons from a product's embedded-emission intensity.
package projection

import (
	"context"
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/carbonforge/cbamcalc/internal/logging"
	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// Basis selects where the emission intensity comes from.
type Basis string

const (
	// BasisActual uses the SEE computed from the installation's own data.
	BasisActual Basis = "ACTUAL"
	// BasisDefault uses the regulatory default intensity for the CN code,
	// with the sector markup applied.
	BasisDefault Basis = "DEFAULT"
)

// Scope selects whether indirect emissions count toward the intensity.
type Scope string

const (
	ScopeDirectOnly Scope = "DIRECT_ONLY"
	ScopeTotal      Scope = "TOTAL"
)

// Config is one projection scenario configuration.
type Config struct {
	Basis Basis `json:"basis"`
	Scope Scope `json:"scope"`

	// SEEDirect and SEEIndirect feed the ACTUAL basis, in tCO2e/t.
	SEEDirect   float64 `json:"see_direct"`
	SEEIndirect float64 `json:"see_indirect"`

	// CNCode and Sector feed the DEFAULT basis.
	CNCode string `json:"cn_code"`
	Sector string `json:"sector"`

	CertScenario refdata.PriceScenario `json:"cert_scenario"`

	CreditEligible bool                  `json:"credit_eligible"`
	CreditScenario refdata.PriceScenario `json:"credit_scenario"`

	// ImportedTonnes is the annual imported quantity.
	ImportedTonnes float64 `json:"imported_tonnes"`
}

// Row is one calendar year of the projection.
type Row struct {
	Year           int     `json:"year"`
	MarkupRate     float64 `json:"markup_rate"`
	Intensity      float64 `json:"intensity"`
	EmbeddedT      float64 `json:"embedded_t"`
	PayableShare   float64 `json:"payable_share"`
	PayableT       float64 `json:"payable_t"`
	CertPrice      float64 `json:"cert_price"`
	GrossCost      float64 `json:"gross_cost"`
	Deduction      float64 `json:"deduction"`
	NetCost        float64 `json:"net_cost"`
	CostPerTonne   float64 `json:"cost_per_tonne"`
	CostPctOfPrice float64 `json:"cost_pct_of_price"`
}

// Totals sums the projection across all years.
type Totals struct {
	GrossCost float64 `json:"gross_cost"`
	Deduction float64 `json:"deduction"`
	NetCost   float64 `json:"net_cost"`
	EmbeddedT float64 `json:"embedded_t"`
	PayableT  float64 `json:"payable_t"`
}

// Projection is one full 2026-2034 cost projection.
type Projection struct {
	RunID  string `json:"run_id"`
	Config Config `json:"config"`
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}

const percentMultiplier = 100

// Calculate produces the year-by-year projection for one configuration.
//
// Missing reference entries degrade silently: an absent CN code yields
// zero intensity, an unknown certificate scenario falls back to MID, and
// a year outside the credit table yields no deduction. The deduction is
// computed against embedded emissions, not payable emissions; the two
// must not be conflated.
func Calculate(ctx context.Context, cfg Config, tables refdata.Tables) Projection {
	log := logging.FromContext(ctx)

	proj := Projection{
		RunID:  ulid.Make().String(),
		Config: cfg,
	}

	imported := clamp(cfg.ImportedTonnes)

	for year := refdata.StartYear; year <= refdata.EndYear; year++ {
		row := Row{Year: year}

		row.MarkupRate = tables.MarkupRate(cfg.Sector, year)
		row.Intensity = intensityFor(cfg, tables, row.MarkupRate)
		row.EmbeddedT = imported * row.Intensity
		row.PayableShare = tables.PayableShare(year)
		row.PayableT = row.EmbeddedT * row.PayableShare
		row.CertPrice = tables.CertPrice(year, cfg.CertScenario)
		row.GrossCost = row.PayableT * row.CertPrice
		row.Deduction = deductionFor(cfg, tables, year, row.CertPrice, row.EmbeddedT)
		row.NetCost = math.Max(0, row.GrossCost-row.Deduction)

		if imported > 0 {
			row.CostPerTonne = row.NetCost / imported
		}
		if refPrice := tables.CommodityPrice(year, cfg.CertScenario); refPrice > 0 {
			row.CostPctOfPrice = row.CostPerTonne / refPrice * percentMultiplier
		}

		proj.Rows = append(proj.Rows, row)
		proj.Totals.GrossCost += row.GrossCost
		proj.Totals.Deduction += row.Deduction
		proj.Totals.NetCost += row.NetCost
		proj.Totals.EmbeddedT += row.EmbeddedT
		proj.Totals.PayableT += row.PayableT
	}

	log.Debug().
		Str("component", "projection").
		Str("operation", "calculate").
		Str("run_id", proj.RunID).
		Str("basis", string(cfg.Basis)).
		Str("scope", string(cfg.Scope)).
		Float64("net_cost_total", proj.Totals.NetCost).
		Msg("computed cost projection")

	return proj
}

// intensityFor resolves the emission intensity for one year.
func intensityFor(cfg Config, tables refdata.Tables, markup float64) float64 {
	if cfg.Basis == BasisActual {
		if cfg.Scope == ScopeDirectOnly {
			return clamp(cfg.SEEDirect)
		}
		return clamp(cfg.SEEDirect) + clamp(cfg.SEEIndirect)
	}

	entry, ok := tables.DefaultIntensity(cfg.CNCode)
	if !ok {
		// No default entry for the CN code resolves to zero intensity.
		return 0
	}
	base := entry.Total
	if cfg.Scope == ScopeDirectOnly {
		base = entry.Direct
	}
	return base * (1 + markup)
}

// deductionFor computes the credit deduction for one year. Credits
// apply to embedded emissions at the quota share, priced at the lower
// of the certificate and credit prices.
func deductionFor(cfg Config, tables refdata.Tables, year int, certPrice, embedded float64) float64 {
	if !cfg.CreditEligible || cfg.CreditScenario == refdata.ScenarioNone || cfg.CreditScenario == "" {
		return 0
	}
	credit := tables.Credit(year, cfg.CreditScenario)
	price := math.Min(certPrice, credit.Price)
	return price * embedded * credit.QuotaShare
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
