package stats

import (
	"sort"
	"time"
)

// HabitStreaks computes the current and longest runs of consecutive
// completed days for one habit. Input order does not matter; the scan
// sorts descending internally.
//
// The scan walks from today backwards. Once a current streak has been
// established and broken by a gap, it stops: older history only counts
// toward the longest streak up to that point. A current streak must
// touch today or yesterday, otherwise it is zero.
func HabitStreaks(dates []time.Time, today time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = DayOf(d)
	}
	sort.Slice(days, func(i, j int) bool { return days[j].Before(days[i]) })

	today = DayOf(today)
	expected := today
	temp := 0

	for _, d := range days {
		if d.Equal(expected) {
			current++
			temp++
			expected = expected.AddDate(0, 0, -1)
		} else if d.Before(expected) {
			if current > 0 {
				break
			}
			temp = 1
			expected = d.AddDate(0, 0, -1)
		}
		if temp > longest {
			longest = temp
		}
	}

	// A streak that ends before yesterday is not current.
	if days[0].Before(today.AddDate(0, 0, -1)) {
		current = 0
	}

	return current, longest
}

// CheckInStreaks computes current and longest runs of consecutive
// check-in days. Unlike HabitStreaks, the current streak is found by
// walking backwards from today until the first missing day, and the
// longest streak by one ascending pass over the whole history. The two
// variants are intentionally separate routines.
func CheckInStreaks(dates []time.Time, today time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := DayOf(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for d := DayOf(today); ; d = d.AddDate(0, 0, -1) {
		if _, ok := seen[d]; !ok {
			break
		}
		current++
	}

	temp := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			temp++
		} else {
			longest = max(longest, temp)
			temp = 1
		}
	}
	longest = max(longest, temp)

	return current, longest
}
