package stats

import (
	"math"
	"time"
)

// Round1 rounds to one decimal place, matching the precision used by
// every completion-rate field in the API.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CompletionRate returns the percentage of windowDays covered by
// completed days, rounded to one decimal. A zero window yields 0.0.
func CompletionRate(completed, windowDays int) float64 {
	if windowDays == 0 {
		return 0.0
	}
	return Round1(float64(completed) / float64(windowDays) * 100)
}

// CountInWindow counts dates on or after today-windowDays.
func CountInWindow(dates []time.Time, windowDays int, today time.Time) int {
	start := DayOf(today).AddDate(0, 0, -windowDays)
	n := 0
	for _, d := range dates {
		if !DayOf(d).Before(start) {
			n++
		}
	}
	return n
}
