package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonforge/cbamcalc/internal/refdata"
)

func TestParseDocument(t *testing.T) {
	t.Run("snake_case export", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{
			"period": "2025-03",
			"fuels": [{
				"id": "f1",
				"fuel_type": "natural_gas",
				"quantity": 500,
				"unit": "t",
				"ncv_override": 47.2
			}],
			"electricity": [{
				"id": "e1",
				"amount_mwh": 14500,
				"grid_factor": 0.328,
				"factor_overridden": true
			}],
			"products": [{
				"id": "p1",
				"name": "Primary aluminium",
				"quantity": 12000,
				"is_residue": false
			}]
		}`))
		require.NoError(t, err)

		require.Len(t, doc.Activity.Fuels, 1)
		fuel := doc.Activity.Fuels[0]
		assert.Equal(t, "f1", fuel.ID)
		assert.Equal(t, "natural_gas", fuel.FuelType)
		assert.InDelta(t, 500, fuel.Quantity, 1e-12)
		require.NotNil(t, fuel.NCVOverride)
		assert.InDelta(t, 47.2, *fuel.NCVOverride, 1e-12)
		assert.Nil(t, fuel.EFCO2Override, "absent override stays nil")

		require.Len(t, doc.Activity.Electricity, 1)
		assert.True(t, doc.Activity.Electricity[0].FactorOverridden)

		require.Len(t, doc.Products, 1)
		assert.Equal(t, "Primary aluminium", doc.Products[0].Name)
	})

	t.Run("camelCase export maps identically", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{
			"fuelEntries": [{"fuelType": "hard_coal", "quantity": "120.5"}],
			"electricityEntries": [{"amountMwh": 10, "gridFactor": 0.4, "factorOverridden": "yes"}]
		}`))
		require.NoError(t, err)

		require.Len(t, doc.Activity.Fuels, 1)
		assert.Equal(t, "hard_coal", doc.Activity.Fuels[0].FuelType)
		assert.InDelta(t, 120.5, doc.Activity.Fuels[0].Quantity, 1e-12, "string numbers parse")
		assert.True(t, doc.Activity.Electricity[0].FactorOverridden)
	})

	t.Run("blocks with list and object params", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{
			"emission_blocks": [
				{
					"id": "b1",
					"output_gas": "CH4",
					"formula": "qty * ef",
					"params": [{"name": "qty", "value": 100}, {"name": "ef", "value": 0.5}]
				},
				{
					"id": "b2",
					"gas": "CO2",
					"formula": "a + b",
					"parameters": {"b": 2, "a": 1}
				}
			]
		}`))
		require.NoError(t, err)
		require.Len(t, doc.Activity.Blocks, 2)

		b1 := doc.Activity.Blocks[0]
		assert.Equal(t, refdata.GasCH4, b1.Gas)
		require.Len(t, b1.Params, 2)
		assert.Equal(t, "qty", b1.Params[0].Name)
		assert.InDelta(t, 100, b1.Params[0].Value, 1e-12)

		b2 := doc.Activity.Blocks[1]
		require.Len(t, b2.Params, 2)
		// Object params come out in deterministic key order.
		assert.Equal(t, "a", b2.Params[0].Name)
		assert.Equal(t, "b", b2.Params[1].Name)
	})

	t.Run("missing IDs are minted", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"fuels": [{"fuel_type": "diesel", "quantity": 1}]}`))
		require.NoError(t, err)
		assert.NotEmpty(t, doc.Activity.Fuels[0].ID)
	})

	t.Run("invalid numerics coerce to zero", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{
			"fuels": [{"fuel_type": "diesel", "quantity": "not-a-number"}],
			"electricity": [{"amount_mwh": null, "grid_factor": 0.3}]
		}`))
		require.NoError(t, err)
		assert.Zero(t, doc.Activity.Fuels[0].Quantity)
		assert.Zero(t, doc.Activity.Electricity[0].AmountMWh)
	})

	t.Run("precursors", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{
			"products": [{
				"name": "Billet",
				"quantity": 1000,
				"isComplex": true,
				"precursors": [
					{"name": "Primary", "massFraction": 0.96, "see": 8.33, "sourceType": "default"}
				]
			}]
		}`))
		require.NoError(t, err)

		require.Len(t, doc.Products, 1)
		product := doc.Products[0]
		assert.True(t, product.Complex)
		require.Len(t, product.Precursors, 1)
		assert.InDelta(t, 0.96, product.Precursors[0].MassFraction, 1e-12)
		assert.Equal(t, "default", product.Precursors[0].Source)
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{"fuels": [`))
		require.Error(t, err)
	})
}
