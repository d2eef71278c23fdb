package services

import "github.com/shopspring/decimal"

// formatAmount renders a rupee amount without trailing zeros
func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

// toPaise converts rupees to the gateway's minor unit, rounding half away
// from zero
func toPaise(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
