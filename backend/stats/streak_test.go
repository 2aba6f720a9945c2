package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var streakToday = day(2025, time.June, 15)

// daysAgo builds a date set from offsets relative to the fixed today.
func daysAgo(offsets ...int) []time.Time {
	dates := make([]time.Time, len(offsets))
	for i, off := range offsets {
		dates[i] = streakToday.AddDate(0, 0, -off)
	}
	return dates
}

func TestHabitStreaksEmpty(t *testing.T) {
	current, longest := HabitStreaks(nil, streakToday)
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestHabitStreaksRunWithGap(t *testing.T) {
	// today, today-1, today-2, gap, today-5
	current, longest := HabitStreaks(daysAgo(0, 1, 2, 5), streakToday)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
}

func TestHabitStreaksYesterdayGrace(t *testing.T) {
	// A streak ending yesterday is not zeroed by the post-pass, but the
	// gap day before it starts the run as a candidate: only the dates
	// matched after the anchor count toward current.
	current, longest := HabitStreaks(daysAgo(1, 2), streakToday)
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, longest)
}

func TestHabitStreaksStaleHistory(t *testing.T) {
	// Most recent date before yesterday: current is forced to zero
	// no matter how long the runs were.
	current, longest := HabitStreaks(daysAgo(2, 3, 4), streakToday)
	assert.Equal(t, 0, current)
	assert.Equal(t, 3, longest)
}

func TestHabitStreaksUnorderedInput(t *testing.T) {
	current, longest := HabitStreaks(daysAgo(2, 0, 5, 1), streakToday)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
}

func TestHabitStreaksStopsAfterCurrentRun(t *testing.T) {
	// Once the current run is established and broken by a gap the scan
	// stops, so a longer run deeper in history is not seen.
	dates := daysAgo(0, 1, 5, 6, 7, 8, 9, 10)
	current, longest := HabitStreaks(dates, streakToday)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)

	// The check-in variant scans the full history.
	current, longest = CheckInStreaks(dates, streakToday)
	assert.Equal(t, 2, current)
	assert.Equal(t, 6, longest)
}

func TestHabitStreaksOldRunBeforeCurrentEstablished(t *testing.T) {
	// With no current run, every historical run counts toward longest.
	current, longest := HabitStreaks(daysAgo(3, 4, 5, 6), streakToday)
	assert.Equal(t, 0, current)
	assert.Equal(t, 4, longest)
}

func TestHabitStreaksProperties(t *testing.T) {
	sets := [][]int{
		{0},
		{0, 1},
		{0, 2, 3},
		{0, 1, 2, 4, 5, 6, 7},
		{1},
		{1, 3},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	for _, offsets := range sets {
		current, longest := HabitStreaks(daysAgo(offsets...), streakToday)
		assert.GreaterOrEqual(t, longest, current, "offsets %v", offsets)
		if offsets[0] == 0 {
			assert.GreaterOrEqual(t, current, 1, "today completed, offsets %v", offsets)
		}
	}
}

func TestCheckInStreaksEmpty(t *testing.T) {
	current, longest := CheckInStreaks(nil, streakToday)
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestCheckInStreaksBackwardWalk(t *testing.T) {
	current, longest := CheckInStreaks(daysAgo(0, 1, 2, 5), streakToday)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
}

func TestCheckInStreaksNoGraceForYesterday(t *testing.T) {
	// Unlike HabitStreaks, the backward walk starts strictly at today:
	// a run ending yesterday is not current.
	current, longest := CheckInStreaks(daysAgo(1, 2), streakToday)
	assert.Equal(t, 0, current)
	assert.Equal(t, 2, longest)
}

func TestCheckInStreaksDuplicateDates(t *testing.T) {
	dates := append(daysAgo(0, 1), daysAgo(0, 1)...)
	current, longest := CheckInStreaks(dates, streakToday)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)
}
