package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesAreValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestPhaseInSchedule(t *testing.T) {
	tables := Default()

	assert.InDelta(t, 0.025, tables.PayableShare(2026), 1e-12)
	assert.InDelta(t, 1.0, tables.PayableShare(2034), 1e-12)
	assert.Zero(t, tables.PayableShare(2025), "pre-window year has no payable share")

	prev := 0.0
	for year := StartYear; year <= EndYear; year++ {
		entry := tables.PhaseIn[year]
		assert.GreaterOrEqual(t, entry.PayableShare, prev, "payable share must not decrease in %d", year)
		assert.InDelta(t, 1.0, entry.FreeShare+entry.PayableShare, 1e-9, "shares must sum to 1 in %d", year)
		prev = entry.PayableShare
	}
}

func TestCertPriceFallback(t *testing.T) {
	tables := Default()

	assert.InDelta(t, 93, tables.CertPrice(2026, ScenarioMid), 1e-12)
	assert.InDelta(t, 93, tables.CertPrice(2026, PriceScenario("BOGUS")), 1e-12,
		"unknown scenario falls back to MID")
	assert.Zero(t, tables.CertPrice(2050, ScenarioMid), "unknown year yields 0")
}

func TestMarkupRate(t *testing.T) {
	tables := Default()

	assert.InDelta(t, StandardMarkupCap, tables.MarkupRate(SectorAluminium, 2028), 1e-12)
	assert.InDelta(t, FertiliserMarkupCap, tables.MarkupRate(SectorFertiliser, 2030), 1e-12)
	// Unknown sectors use the standard schedule.
	assert.InDelta(t, tables.MarkupRate(SectorStandard, 2027), tables.MarkupRate("glass", 2027), 1e-12)
}

func TestGWPFor(t *testing.T) {
	tables := Default()

	assert.InDelta(t, 1, tables.GWPFor(GasCO2), 1e-12)
	assert.InDelta(t, 28, tables.GWPFor(GasCH4), 1e-12)
	assert.InDelta(t, 6630, tables.GWPFor(GasCF4), 1e-12)
	assert.InDelta(t, 1, tables.GWPFor(Gas("SF6")), 1e-12, "unrecognized gas defaults to 1")
}

func TestLoadPack(t *testing.T) {
	writePack := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "pack.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("overlays sections onto defaults", func(t *testing.T) {
		path := writePack(t, `
version: "2026.1"
tables:
  cert_prices:
    2026:
      LOW: 50
      MID: 80
      HIGH: 110
`)
		tables, err := LoadPack(path, "1.2.0")
		require.NoError(t, err)

		assert.InDelta(t, 80, tables.CertPrice(2026, ScenarioMid), 1e-12)
		// Sections absent from the pack keep the built-in values.
		assert.InDelta(t, 0.025, tables.PayableShare(2026), 1e-12)
		assert.InDelta(t, 28, tables.GWPFor(GasCH4), 1e-12)
	})

	t.Run("rejects pack requiring newer tool", func(t *testing.T) {
		path := writePack(t, `
version: "2030.1"
min_tool_version: "9.0.0"
tables:
  gwp:
    CO2: 1
`)
		_, err := LoadPack(path, "1.2.0")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncompatiblePack)
	})

	t.Run("dev build skips version gate", func(t *testing.T) {
		path := writePack(t, `
min_tool_version: "9.0.0"
tables:
  gwp:
    CO2: 1
`)
		_, err := LoadPack(path, "dev")
		require.NoError(t, err)
	})

	t.Run("empty pack is an error", func(t *testing.T) {
		path := writePack(t, "version: \"2026.1\"\n")
		_, err := LoadPack(path, "1.0.0")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyPack)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadPack(filepath.Join(t.TempDir(), "absent.yaml"), "1.0.0")
		require.Error(t, err)
	})
}

func TestValidateCatchesBrokenTables(t *testing.T) {
	t.Run("decreasing payable share", func(t *testing.T) {
		tables := Default()
		tables.PhaseIn = map[int]PhaseInEntry{
			2026: {PayableShare: 0.5},
			2027: {PayableShare: 0.25},
		}
		assert.Error(t, Validate(tables))
	})

	t.Run("wrong CO2 multiplier", func(t *testing.T) {
		tables := Default()
		tables.GWP = map[Gas]float64{GasCO2: 2}
		assert.Error(t, Validate(tables))
	})

	t.Run("markup above cap", func(t *testing.T) {
		tables := Default()
		tables.Markup = map[string]map[int]float64{
			SectorFertiliser: {2026: 0.05},
		}
		assert.Error(t, Validate(tables))
	})
}
