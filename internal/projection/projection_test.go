package projection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonforge/cbamcalc/internal/refdata"
)

func baseConfig() Config {
	return Config{
		Basis:          BasisActual,
		Scope:          ScopeDirectOnly,
		SEEDirect:      1.87,
		SEEIndirect:    6.46,
		Sector:         refdata.SectorAluminium,
		CertScenario:   refdata.ScenarioMid,
		ImportedTonnes: 110000,
	}
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()
	tables := refdata.Default()

	t.Run("2026 reference row", func(t *testing.T) {
		proj := Calculate(ctx, baseConfig(), tables)
		require.Len(t, proj.Rows, 9, "2026 through 2034 inclusive")

		row := proj.Rows[0]
		assert.Equal(t, 2026, row.Year)
		assert.InDelta(t, 1.87, row.Intensity, 1e-12)
		assert.InDelta(t, 205700, row.EmbeddedT, 1e-6)
		assert.InDelta(t, 0.025, row.PayableShare, 1e-12)
		assert.InDelta(t, 5142.5, row.PayableT, 1e-6)
		assert.InDelta(t, 93, row.CertPrice, 1e-12)
		assert.InDelta(t, 478252.5, row.GrossCost, 1e-6)
		assert.Zero(t, row.Deduction, "not credit-eligible")
		assert.InDelta(t, 478252.5, row.NetCost, 1e-6)
		assert.InDelta(t, 478252.5/110000, row.CostPerTonne, 1e-9)
		assert.Positive(t, row.CostPctOfPrice)
	})

	t.Run("total scope adds indirect SEE", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Scope = ScopeTotal
		proj := Calculate(ctx, cfg, tables)
		assert.InDelta(t, 1.87+6.46, proj.Rows[0].Intensity, 1e-12)
	})

	t.Run("default basis applies markup", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Basis = BasisDefault
		cfg.CNCode = "76011000"
		proj := Calculate(ctx, cfg, tables)

		// 2026 standard markup is 10%; the aluminium direct default is 1.87.
		assert.InDelta(t, 1.87*1.10, proj.Rows[0].Intensity, 1e-9)
		// From 2028 the markup is capped at 30%.
		assert.InDelta(t, 1.87*1.30, proj.Rows[2].Intensity, 1e-9)
	})

	t.Run("unknown CN code degrades to zero intensity", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Basis = BasisDefault
		cfg.CNCode = "00000000"
		proj := Calculate(ctx, cfg, tables)

		for _, row := range proj.Rows {
			assert.Zero(t, row.Intensity)
			assert.Zero(t, row.NetCost)
		}
	})

	t.Run("fertiliser markup capped at one percent", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Basis = BasisDefault
		cfg.CNCode = "31021010"
		cfg.Sector = refdata.SectorFertiliser
		proj := Calculate(ctx, cfg, tables)

		entry, ok := tables.DefaultIntensity("31021010")
		require.True(t, ok)
		assert.InDelta(t, entry.Direct*1.01, proj.Rows[8].Intensity, 1e-9)
	})

	t.Run("deduction computed against embedded emissions", func(t *testing.T) {
		cfg := baseConfig()
		cfg.CreditEligible = true
		cfg.CreditScenario = refdata.ScenarioMid
		proj := Calculate(ctx, cfg, tables)

		row := proj.Rows[0]
		credit := tables.Credit(2026, refdata.ScenarioMid)
		wantPrice := credit.Price
		if row.CertPrice < wantPrice {
			wantPrice = row.CertPrice
		}
		// Embedded, not payable: 205700 t, not 5142.5 t.
		assert.InDelta(t, wantPrice*205700*credit.QuotaShare, row.Deduction, 1e-6)
	})

	t.Run("net cost floors at zero", func(t *testing.T) {
		cfg := baseConfig()
		cfg.CreditEligible = true
		cfg.CreditScenario = refdata.ScenarioHigh
		proj := Calculate(ctx, cfg, tables)

		for _, row := range proj.Rows {
			assert.GreaterOrEqual(t, row.NetCost, 0.0)
		}
	})

	t.Run("credit scenario NONE disables deduction", func(t *testing.T) {
		cfg := baseConfig()
		cfg.CreditEligible = true
		cfg.CreditScenario = refdata.ScenarioNone
		proj := Calculate(ctx, cfg, tables)
		assert.Zero(t, proj.Totals.Deduction)
	})

	t.Run("zero imports guard division", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ImportedTonnes = 0
		proj := Calculate(ctx, cfg, tables)
		for _, row := range proj.Rows {
			assert.Zero(t, row.CostPerTonne)
			assert.Zero(t, row.NetCost)
		}
	})

	t.Run("totals sum the rows", func(t *testing.T) {
		proj := Calculate(ctx, baseConfig(), tables)
		var gross, net, embedded float64
		for _, row := range proj.Rows {
			gross += row.GrossCost
			net += row.NetCost
			embedded += row.EmbeddedT
		}
		assert.InDelta(t, gross, proj.Totals.GrossCost, 1e-6)
		assert.InDelta(t, net, proj.Totals.NetCost, 1e-6)
		assert.InDelta(t, embedded, proj.Totals.EmbeddedT, 1e-6)
	})

	t.Run("payable share never decreases", func(t *testing.T) {
		proj := Calculate(ctx, baseConfig(), tables)
		prev := 0.0
		for _, row := range proj.Rows {
			assert.GreaterOrEqual(t, row.PayableShare, prev)
			prev = row.PayableShare
		}
		assert.InDelta(t, 1.0, prev, 1e-12, "2034 is fully payable")
	})
}

func TestCompareScenarios(t *testing.T) {
	ctx := context.Background()
	tables := refdata.Default()

	t.Run("overrides merge shallowly onto base", func(t *testing.T) {
		qty := 200000.0
		scope := ScopeTotal
		results := CompareScenarios(ctx, baseConfig(), []Scenario{
			{Name: "base", Label: "Unchanged"},
			{Name: "double", Label: "Doubled imports", Overrides: Overrides{ImportedTonnes: &qty}},
			{Name: "total", Label: "Total scope", Overrides: Overrides{Scope: &scope}},
		}, tables)
		require.Len(t, results, 3)

		assert.Equal(t, "base", results[0].Name)
		assert.InDelta(t, 110000*1.87, results[0].Projection.Rows[0].EmbeddedT, 1e-6)
		assert.InDelta(t, 200000*1.87, results[1].Projection.Rows[0].EmbeddedT, 1e-6)
		assert.InDelta(t, 1.87+6.46, results[2].Projection.Rows[0].Intensity, 1e-12)

		// The base config itself is untouched by any scenario.
		assert.InDelta(t, 110000, baseConfig().ImportedTonnes, 1e-12)
	})

	t.Run("runs are order-independent", func(t *testing.T) {
		scenarios := []Scenario{
			{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
		}
		results := CompareScenarios(ctx, baseConfig(), scenarios, tables)
		for i, sc := range scenarios {
			assert.Equal(t, sc.Name, results[i].Name)
		}
	})
}

func TestCompareCertPriceScenarios(t *testing.T) {
	ctx := context.Background()
	tables := refdata.Default()

	results := CompareCertPriceScenarios(ctx, baseConfig(), tables)
	require.Len(t, results, 3)
	require.Equal(t, "low", results[0].Name)
	require.Equal(t, "mid", results[1].Name)
	require.Equal(t, "high", results[2].Name)

	for i := range results[0].Projection.Rows {
		low := results[0].Projection.Rows[i].NetCost
		mid := results[1].Projection.Rows[i].NetCost
		high := results[2].Projection.Rows[i].NetCost
		assert.LessOrEqual(t, low, mid, "year index %d", i)
		assert.LessOrEqual(t, mid, high, "year index %d", i)
	}
}
