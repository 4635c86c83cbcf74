package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		expected string
	}{
		{name: "inteiro", amount: 50, expected: "50"},
		{name: "decimal", amount: 12.5, expected: "12.5"},
		{name: "NaN vira null", amount: NaN(), expected: "null"},
		{name: "infinito vira null", amount: Amount(math.Inf(1)), expected: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var values map[string]Amount
	err := json.Unmarshal([]byte(`{"a": 4.25, "b": null}`), &values)
	require.NoError(t, err)

	assert.Equal(t, Amount(4.25), values["a"])
	assert.True(t, values["b"].IsNaN())
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, MonthKey("2023-01"), MonthOf("2023-01-15"))
	assert.Equal(t, MonthKey("2023"), MonthOf("2023"))
	assert.Equal(t, MonthKey(""), MonthOf(""))
}

func TestSaleRecord_IsPoisoned(t *testing.T) {
	record := SaleRecord{Date: "2023-01-01", Month: "2023-01", SKU: "A1", UnitPrice: 10, Quantity: 2, TotalPrice: 20}
	assert.False(t, record.IsPoisoned())

	record.Quantity = NaN()
	assert.True(t, record.IsPoisoned())
}
