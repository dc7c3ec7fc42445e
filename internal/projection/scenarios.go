package projection

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// Overrides holds the config fields a scenario may replace. Nil fields
// leave the base config untouched; the merge is shallow and the base is
// never mutated.
type Overrides struct {
	Basis          *Basis                 `json:"basis,omitempty"`
	Scope          *Scope                 `json:"scope,omitempty"`
	SEEDirect      *float64               `json:"see_direct,omitempty"`
	SEEIndirect    *float64               `json:"see_indirect,omitempty"`
	CNCode         *string                `json:"cn_code,omitempty"`
	Sector         *string                `json:"sector,omitempty"`
	CertScenario   *refdata.PriceScenario `json:"cert_scenario,omitempty"`
	CreditEligible *bool                  `json:"credit_eligible,omitempty"`
	CreditScenario *refdata.PriceScenario `json:"credit_scenario,omitempty"`
	ImportedTonnes *float64               `json:"imported_tonnes,omitempty"`
}

// Scenario names one alternative parameter set for comparison.
type Scenario struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Overrides Overrides `json:"overrides"`
}

// ScenarioResult pairs a scenario with its independent projection.
type ScenarioResult struct {
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Projection Projection `json:"projection"`
}

// apply returns a copy of base with the non-nil overrides applied.
func (o Overrides) apply(base Config) Config {
	if o.Basis != nil {
		base.Basis = *o.Basis
	}
	if o.Scope != nil {
		base.Scope = *o.Scope
	}
	if o.SEEDirect != nil {
		base.SEEDirect = *o.SEEDirect
	}
	if o.SEEIndirect != nil {
		base.SEEIndirect = *o.SEEIndirect
	}
	if o.CNCode != nil {
		base.CNCode = *o.CNCode
	}
	if o.Sector != nil {
		base.Sector = *o.Sector
	}
	if o.CertScenario != nil {
		base.CertScenario = *o.CertScenario
	}
	if o.CreditEligible != nil {
		base.CreditEligible = *o.CreditEligible
	}
	if o.CreditScenario != nil {
		base.CreditScenario = *o.CreditScenario
	}
	if o.ImportedTonnes != nil {
		base.ImportedTonnes = *o.ImportedTonnes
	}
	return base
}

// CompareScenarios runs an independent projection per scenario. Each
// run merges the scenario's overrides onto the base config; runs share
// no mutable state, so they execute concurrently while the result
// order matches the scenario order.
func CompareScenarios(ctx context.Context, base Config, scenarios []Scenario, tables refdata.Tables) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			results[i] = ScenarioResult{
				Name:       sc.Name,
				Label:      sc.Label,
				Projection: Calculate(gctx, sc.Overrides.apply(base), tables),
			}
			return nil
		})
	}
	// Projections are pure and return no errors.
	_ = g.Wait()

	return results
}

// CompareCertPriceScenarios fixes the compared axis to the three
// certificate-price paths, holding everything else constant. This feeds
// the LOW/MID/HIGH comparison charts.
func CompareCertPriceScenarios(ctx context.Context, base Config, tables refdata.Tables) []ScenarioResult {
	low, mid, high := refdata.ScenarioLow, refdata.ScenarioMid, refdata.ScenarioHigh
	return CompareScenarios(ctx, base, []Scenario{
		{Name: "low", Label: "Low certificate price", Overrides: Overrides{CertScenario: &low}},
		{Name: "mid", Label: "Mid certificate price", Overrides: Overrides{CertScenario: &mid}},
		{Name: "high", Label: "High certificate price", Overrides: Overrides{CertScenario: &high}},
	}, tables)
}
