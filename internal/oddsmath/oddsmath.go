// Package oddsmath converts between odds formats and projects parlay payouts.
package oddsmath

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// AmericanToDecimal converts American odds to decimal odds
// American +120 → Decimal 2.20
// American -150 → Decimal 1.6667
func AmericanToDecimal(american float64) float64 {
	if american > 0 {
		return 1 + american/100
	}
	return 1 + 100/math.Abs(american)
}

// MaxAmerican is the largest American price a conversion reports. Longer
// odds saturate at this value.
const MaxAmerican = 1_000_000_000

// MaxDecimal is the decimal equivalent of MaxAmerican.
const MaxDecimal = 1 + MaxAmerican/100

// DecimalToAmerican converts decimal odds to American odds.
// Decimal odds at or below 1 have no American equivalent and map to 0.
// Results saturate at +/-MaxAmerican.
func DecimalToAmerican(dec float64) int {
	if dec <= 1 || math.IsNaN(dec) {
		return 0
	}
	if dec >= MaxDecimal {
		return MaxAmerican
	}
	if dec >= 2 {
		return int(math.Round((dec - 1) * 100))
	}
	a := -100 / (dec - 1)
	if a <= -MaxAmerican {
		return -MaxAmerican
	}
	return int(math.Round(a))
}

// Combined returns the product of the decimal equivalents of each American price,
// capped at MaxDecimal. No prices gives 1.
func Combined(american ...float64) float64 {
	out := 1.0
	for _, a := range american {
		out *= AmericanToDecimal(a)
		if out >= MaxDecimal || math.IsNaN(out) {
			return MaxDecimal
		}
	}
	return out
}

// Payout returns stake * combined decimal odds, rounded half-up to cents.
func Payout(stake, combinedDecimal float64) float64 {
	if math.IsNaN(stake) || math.IsNaN(combinedDecimal) || math.IsInf(stake, 0) || math.IsInf(combinedDecimal, 0) {
		return 0
	}
	p := decimal.NewFromFloat(stake).Mul(decimal.NewFromFloat(combinedDecimal)).Round(2)
	f, _ := p.Float64()
	return f
}

// FormatAmerican renders American odds with an explicit sign: +120, -150, +0.
func FormatAmerican(american int) string {
	if american >= 0 {
		return "+" + strconv.Itoa(american)
	}
	return strconv.Itoa(american)
}
