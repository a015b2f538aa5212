// Package rounding implements the round-half-to-even (banker's) rounding
// required for UAE tax-authority compliant amounts. All monetary values that
// reach persistence or a filing must pass through here.
package rounding

import "github.com/shopspring/decimal"

// AmountPlaces is the scale used for AED monetary amounts.
const AmountPlaces int32 = 2

// Round rounds d to the given number of decimal places, resolving exact
// halves to the nearest even digit: Round(2.5, 0) = 2, Round(3.5, 0) = 4,
// Round(10.125, 2) = 10.12, Round(10.135, 2) = 10.14.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.RoundBank(places)
}

// RoundAmount rounds a monetary value to fils precision (2 decimal places).
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(AmountPlaces)
}
