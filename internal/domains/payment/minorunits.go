package payment

import "github.com/shopspring/decimal"

// MinorUnits converts a price to the gateway's smallest currency unit
// (paise for INR) by shifting two places and truncating.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).IntPart()
}
