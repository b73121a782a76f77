package analytics

import (
	"math"
	"time"
)

// HourDiff returns the absolute difference between two timestamps rounded
// to whole hours.
func HourDiff(a, b time.Time) int {
	return int(math.Round(math.Abs(a.Sub(b).Hours())))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
