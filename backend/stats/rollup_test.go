package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionIndexDeduplicates(t *testing.T) {
	idx := NewCompletionIndex()
	d := day(2025, time.July, 1)

	idx.Add(1, d)
	idx.Add(1, d)
	idx.Add(2, d)

	assert.Equal(t, 2, idx.CompletedOn(d))
	assert.Equal(t, 0, idx.CompletedOn(d.AddDate(0, 0, 1)))
}

func TestDailyForZeroHabits(t *testing.T) {
	daily := DailyFor(NewCompletionIndex(), 0, day(2025, time.July, 1))
	assert.Equal(t, 0, daily.TotalHabits)
	assert.Equal(t, 0, daily.CompletedHabits)
	assert.Equal(t, 0.0, daily.CompletionRate)
}

func TestOverallReport(t *testing.T) {
	// Tuesday July 1 2025; the ISO week starts Monday June 30, in the
	// previous month.
	today := day(2025, time.July, 1)

	idx := NewCompletionIndex()
	idx.Add(1, today)
	idx.Add(2, today)
	idx.Add(1, day(2025, time.June, 30))

	report := Overall(idx, 2, today)

	assert.Equal(t, "2025-07-01", report.Daily.Date)
	assert.Equal(t, 2, report.Daily.CompletedHabits)
	assert.Equal(t, 100.0, report.Daily.CompletionRate)

	// The standalone week is not clipped to the month.
	assert.Equal(t, "2025-06-30", report.Weekly.WeekStart)
	assert.Equal(t, "2025-07-06", report.Weekly.WeekEnd)
	assert.Len(t, report.Weekly.DailyBreakdown, 7)
	assert.Equal(t, 3, report.Weekly.ActualCompletions)
	assert.Equal(t, 14, report.Weekly.TotalPossibleCompletions)
	assert.Equal(t, 21.4, report.Weekly.CompletionRate)

	// The monthly weeks are clipped, so June 30 falls outside.
	assert.Equal(t, 7, report.Monthly.Month)
	assert.Equal(t, 2025, report.Monthly.Year)
	assert.Equal(t, 2, report.Monthly.ActualCompletions)
	assert.Equal(t, 62, report.Monthly.TotalPossibleCompletions)
	assert.Equal(t, 3.2, report.Monthly.CompletionRate)
	assert.Equal(t, "2025-07-01", report.Monthly.WeeklyBreakdown[0].WeekStart)

	total := 0
	for _, week := range report.Monthly.WeeklyBreakdown {
		total += len(week.DailyBreakdown)
	}
	assert.Equal(t, 31, total)
}

func TestOverallZeroHabits(t *testing.T) {
	report := Overall(NewCompletionIndex(), 0, day(2025, time.July, 1))
	assert.Equal(t, 0.0, report.Daily.CompletionRate)
	assert.Equal(t, 0.0, report.Weekly.CompletionRate)
	assert.Equal(t, 0.0, report.Monthly.CompletionRate)
}

func TestFetchRangeCoversWeekAndMonth(t *testing.T) {
	// Week spills into June, month runs through July.
	start, end := FetchRange(day(2025, time.July, 1))
	assert.Equal(t, day(2025, time.June, 30), start)
	assert.Equal(t, day(2025, time.August, 1), end)

	// Mid-month week fully inside the month.
	start, end = FetchRange(day(2025, time.July, 16))
	assert.Equal(t, day(2025, time.July, 1), start)
	assert.Equal(t, day(2025, time.August, 1), end)

	// Week spilling past the end of the month extends the range.
	// July 28 2025 is a Monday, so the week runs through August 3.
	start, end = FetchRange(day(2025, time.July, 30))
	assert.Equal(t, day(2025, time.July, 1), start)
	assert.Equal(t, day(2025, time.August, 4), end)
}
