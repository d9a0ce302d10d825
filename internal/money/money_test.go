package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.Decimal
		want decimal.Decimal
	}{
		{"half rounds up", d("1.005"), d("1.01")},
		{"below half rounds down", d("1.004"), d("1.00")},
		{"above half rounds up", d("36.666666666666667"), d("36.67")},
		{"already two places", d("10.00"), d("10.00")},
		{"integer untouched", d("5"), d("5")},
		{"zero", decimal.Zero, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.in)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRound2Idempotent(t *testing.T) {
	values := []decimal.Decimal{d("1.005"), d("99.999"), d("0.125"), d("110").Div(d("3"))}
	for _, v := range values {
		once := Round2(v)
		twice := Round2(once)
		assert.True(t, once.Equal(twice), "Round2 not idempotent for %s", v)
	}
}

func TestSplitEven(t *testing.T) {
	// 20.00 across 3 lines: each share is 6.67, which overshoots the total by
	// a cent. The discrepancy is accepted; the total stays the value of record.
	share := SplitEven(d("20.00"), 3)
	assert.True(t, d("6.67").Equal(share), "got %s", share)

	assert.True(t, d("10.00").Equal(SplitEven(d("20.00"), 2)))
	assert.True(t, decimal.Zero.Equal(SplitEven(d("20.00"), 0)))
}
