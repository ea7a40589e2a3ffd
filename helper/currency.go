package helper

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a decimal amount in currency units to an integer
// amount in minor units, rounding half away from zero (10.005 -> 1001).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FormatAmount renders an amount with two decimals for order lines.
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
