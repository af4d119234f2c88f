package timesheet

import (
	"math"
	"time"
)

// RoundingStep is the billing granularity in minutes.
const RoundingStep = 5

// MinutesBetween returns the exact elapsed minutes from start to end as a
// float, negative if end precedes start.
func MinutesBetween(start, end time.Time) float64 {
	return end.Sub(start).Seconds() / 60.0
}

// RoundMinutes converts exact minutes to the nearest 5-minute increment.
// Halves round away from zero (math.Round), so 47.5 becomes 50.
func RoundMinutes(m float64) int {
	return int(math.Round(m/RoundingStep)) * RoundingStep
}
