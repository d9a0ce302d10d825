package freight

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableLookup(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		code string
		want string
	}{
		{"35", "0.00"},  // SP ships free
		{"33", "5.00"},  // RJ
		{"53", "10.00"}, // DF
		{"26", "15.00"}, // PE
		{"12", "20.00"}, // AC
		{"24", "25.00"}, // RN
	}
	for _, tt := range tests {
		amount, ok := table.Lookup(tt.code)
		require.True(t, ok, "region %s should be covered", tt.code)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(amount),
			"region %s: got %s, want %s", tt.code, amount, tt.want)
	}
}

func TestLookupUnknownRegion(t *testing.T) {
	table := DefaultTable()

	_, ok := table.Lookup("99")
	assert.False(t, ok)
	_, ok = table.Lookup("")
	assert.False(t, ok)
}

func TestLookupStable(t *testing.T) {
	// Same code always yields the same amount within a process lifetime.
	table := DefaultTable()
	first, ok := table.Lookup("43")
	require.True(t, ok)
	for range 10 {
		again, ok := table.Lookup("43")
		require.True(t, ok)
		assert.True(t, first.Equal(again))
	}
}

func TestNewTableCopiesInput(t *testing.T) {
	rates := map[string]decimal.Decimal{"35": decimal.Zero}
	table := NewTable(rates)

	rates["35"] = decimal.RequireFromString("99.00")
	amount, ok := table.Lookup("35")
	require.True(t, ok)
	assert.True(t, decimal.Zero.Equal(amount), "table must not observe caller mutations")
}
