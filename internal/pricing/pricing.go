// Package pricing computes sale prices from cost prices and margin rates.
package pricing

import "math"

// DefaultMarginRate is the margin percentage applied when no explicit rate
// is configured.
const DefaultMarginRate = 40.0

// ComputeSalePrice derives a sale price from a cost price and a margin rate
// percentage, rounded half-up at the cent boundary.
//
// It does not validate the cost price; callers reject non-positive costs
// before pricing.
func ComputeSalePrice(costPrice, marginRatePercent float64) float64 {
	salePrice := costPrice * (1 + marginRatePercent/100)
	return math.Round(salePrice*100) / 100
}
