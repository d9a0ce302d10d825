// Package freight provides the flat-rate freight table keyed by the two-digit
// IBGE region code of the shipping destination.
package freight

import "github.com/shopspring/decimal"

// Table maps region codes to flat freight amounts. It is built once at
// process start and treated as immutable; lookups are safe for concurrent
// use. A missing region is a hard error for callers — never free shipping.
type Table struct {
	rates map[string]decimal.Decimal
}

// NewTable builds a Table from the given rates. The map is copied.
func NewTable(rates map[string]decimal.Decimal) Table {
	cp := make(map[string]decimal.Decimal, len(rates))
	for code, amount := range rates {
		cp[code] = amount
	}
	return Table{rates: cp}
}

// Lookup returns the flat freight amount for a region code. The second
// return value reports whether the region is covered.
func (t Table) Lookup(regionCode string) (decimal.Decimal, bool) {
	amount, ok := t.rates[regionCode]
	return amount, ok
}

// DefaultTable returns the standard freight table for Brazilian states,
// keyed by IBGE UF code.
func DefaultTable() Table {
	flat := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }
	return NewTable(map[string]decimal.Decimal{
		"35": flat("0.00"),  // SP
		"31": flat("5.00"),  // MG
		"33": flat("5.00"),  // RJ
		"41": flat("5.00"),  // PR
		"50": flat("5.00"),  // MS
		"32": flat("10.00"), // ES
		"29": flat("10.00"), // BA
		"52": flat("10.00"), // GO
		"51": flat("10.00"), // MT
		"53": flat("10.00"), // DF
		"42": flat("10.00"), // SC
		"43": flat("15.00"), // RS
		"11": flat("15.00"), // RO
		"13": flat("15.00"), // AM
		"15": flat("15.00"), // PA
		"17": flat("15.00"), // TO
		"22": flat("15.00"), // PI
		"26": flat("15.00"), // PE
		"27": flat("15.00"), // AL
		"28": flat("15.00"), // SE
		"12": flat("20.00"), // AC
		"14": flat("20.00"), // RR
		"16": flat("20.00"), // AP
		"21": flat("20.00"), // MA
		"23": flat("20.00"), // CE
		"25": flat("20.00"), // PB
		"24": flat("25.00"), // RN
	})
}
