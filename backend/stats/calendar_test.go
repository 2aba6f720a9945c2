package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthBounds(t *testing.T) {
	start, next := MonthBounds(2021, time.February)
	assert.Equal(t, day(2021, time.February, 1), start)
	assert.Equal(t, day(2021, time.March, 1), next)

	// December rolls over into the next year.
	start, next = MonthBounds(2024, time.December)
	assert.Equal(t, day(2024, time.December, 1), start)
	assert.Equal(t, day(2025, time.January, 1), next)
}

func TestMonthLastDay(t *testing.T) {
	assert.Equal(t, day(2021, time.February, 28), MonthLastDay(2021, time.February))
	assert.Equal(t, day(2020, time.February, 29), MonthLastDay(2020, time.February))
	assert.Equal(t, day(2025, time.April, 30), MonthLastDay(2025, time.April))
	assert.Equal(t, day(2025, time.December, 31), MonthLastDay(2025, time.December))
}

func TestWeekStart(t *testing.T) {
	// 2025-06-30 is a Monday.
	monday := day(2025, time.June, 30)

	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, monday, WeekStart(day(2025, time.July, 1))) // Tuesday
	assert.Equal(t, monday, WeekStart(day(2025, time.July, 6))) // Sunday
	assert.Equal(t, monday.AddDate(0, 0, 7), WeekStart(day(2025, time.July, 7)))
}

func TestPartitionMonthFebruary2021(t *testing.T) {
	// Feb 1 2021 was a Monday and the month has exactly 28 days, so the
	// partition is four full weeks.
	start, next := MonthBounds(2021, time.February)
	weeks := PartitionMonth(start, next.AddDate(0, 0, -1))

	assert.Len(t, weeks, 4)
	for _, w := range weeks {
		assert.Equal(t, 7, w.Days())
	}
	assert.Equal(t, day(2021, time.February, 1), weeks[0].Start)
	assert.Equal(t, day(2021, time.February, 28), weeks[3].End)
}

func TestPartitionMonthPartialLastWeek(t *testing.T) {
	// 31-day month: 7+7+7+7+3.
	start, next := MonthBounds(2025, time.July)
	weeks := PartitionMonth(start, next.AddDate(0, 0, -1))

	assert.Len(t, weeks, 5)
	assert.Equal(t, 3, weeks[4].Days())
	assert.Equal(t, day(2025, time.July, 29), weeks[4].Start)
	assert.Equal(t, day(2025, time.July, 31), weeks[4].End)
}

func TestPartitionMonthCoversEveryDay(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		start, next := MonthBounds(2024, month)
		end := next.AddDate(0, 0, -1)

		total := 0
		for _, w := range PartitionMonth(start, end) {
			assert.LessOrEqual(t, w.Days(), 7)
			total += w.Days()
		}
		assert.Equal(t, end.Day(), total, "month %s", month)
	}
}
