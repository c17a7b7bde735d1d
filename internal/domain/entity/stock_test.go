package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockBatch_LowStock(t *testing.T) {
	tests := []struct {
		used      int
		remaining int
		low       bool
	}{
		{used: 0, remaining: 20, low: false},
		{used: 9, remaining: 11, low: false},
		{used: 10, remaining: 10, low: true},
		{used: 15, remaining: 5, low: true},
		{used: 25, remaining: -5, low: true},
	}

	for _, tt := range tests {
		batch := StockBatch{QuantityIn: 20, QuantityUsed: tt.used, LowStockThreshold: 10}
		assert.Equal(t, tt.remaining, batch.RemainingQuantity(), "used=%d", tt.used)
		assert.Equal(t, tt.low, batch.IsLowStock(), "used=%d", tt.used)
	}
}

func TestStockBatch_StockValue(t *testing.T) {
	batch := StockBatch{QuantityIn: 12, QuantityUsed: 2, UnitPrice: decimal.RequireFromString("450.50")}
	assert.True(t, decimal.RequireFromString("4505").Equal(batch.StockValue()))

	batch.QuantityUsed = 14
	assert.True(t, batch.StockValue().IsZero())
}

func TestStockBatch_MarshalJSON(t *testing.T) {
	batch := StockBatch{
		ProductName:       "Engine oil 5W-30",
		QuantityIn:        20,
		QuantityUsed:      12,
		UnitPrice:         decimal.NewFromInt(350),
		LowStockThreshold: 10,
	}

	raw, err := json.Marshal(batch)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Engine oil 5W-30", out["product_name"])
	assert.EqualValues(t, 8, out["remaining_quantity"])
	assert.Equal(t, true, out["is_low_stock"])
	assert.EqualValues(t, 350, out["unit_price"])
}

func TestServiceRecord_Types(t *testing.T) {
	var record ServiceRecord
	assert.Empty(t, record.Types())

	require.NoError(t, record.SetTypes([]string{"oil_change", "washing"}))
	assert.Equal(t, []string{"oil_change", "washing"}, record.Types())
	assert.JSONEq(t, `["oil_change","washing"]`, string(record.ServiceTypes))
}
