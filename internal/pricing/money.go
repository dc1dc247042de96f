// Package pricing implements the marketplace fee-distribution engine:
// given a seller's desired payout and an affiliate commission policy it
// derives the customer-facing listing price, and given a listing price it
// reverse-derives the seller payout by bisection. All monetary arithmetic
// uses shopspring/decimal; every breakdown field is rounded to cents at
// its own boundary so repeated calculations never accumulate drift.
package pricing

import "github.com/shopspring/decimal"

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// roundCents rounds half away from zero to 2 decimal places, the
// currency minor-unit boundary for every stored breakdown field.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func clampDecimal(v, min, max decimal.Decimal) decimal.Decimal {
	if v.LessThan(min) {
		return min
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}
