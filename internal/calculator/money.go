// Package calculator holds the pure cost models: given a weekly trip
// rate and fares, compute monthly/annual cost, usage efficiency, and
// wastage per ticket kind. No I/O, no caching; every money output is
// rounded to two decimals half-up.
package calculator

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Weekly trip rates convert to monthly and annual trip counts with
// these constants. Monthly counts are always rounded up: partial
// tickets cannot be purchased.
const (
	WeeksPerMonth = 4.33
	WeeksPerYear  = 52
)

// logger receives non-fatal advisories. The cost functions stay pure
// in their returns; advisories are a logging side channel only.
var logger = zap.NewNop()

// SetLogger routes calculator advisories to l.
func SetLogger(l *zap.Logger) { logger = l }

// Round2 rounds a money amount to two decimal places, half up on the
// scaled integer.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func tripsPerMonth(tripsPerWeek float64) int {
	return int(math.Ceil(tripsPerWeek * WeeksPerMonth))
}

func tripsPerYear(tripsPerWeek float64) int {
	return int(math.Ceil(tripsPerWeek * WeeksPerYear))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// formatTrips renders a trip rate without trailing zeros.
func formatTrips(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
