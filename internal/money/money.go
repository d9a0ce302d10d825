// Package money holds the monetary rounding rules shared by the pricing
// pipeline. Every derived currency value in the system goes through Round2.
package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to two decimal places, half up.
// It is idempotent: Round2(Round2(x)) == Round2(x).
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// SplitEven divides a total into n equal shares rounded to two decimal
// places. The shares do not necessarily sum back to the total; callers that
// need the exact total must keep it separately.
func SplitEven(total decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return Round2(total.Div(decimal.NewFromInt(int64(n))))
}
