// Package stats computes streaks, completion rates and nested
// daily/weekly/monthly progress reports over day-stamped completion
// records. Everything here is pure: callers fetch the rows, stats does
// the calendar math.
package stats

import "time"

// DateLayout is the wire format for day-granularity dates.
const DateLayout = "2006-01-02"

// DayOf truncates t to midnight UTC. All calendar math in this package
// operates on day-normalized times.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first day of the month and the first day of
// the following month, so callers can scope queries as [start, next).
func MonthBounds(year int, month time.Month) (start, next time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next = start.AddDate(0, 1, 0)
	return start, next
}

// MonthLastDay returns the last calendar day of the month.
func MonthLastDay(year int, month time.Month) time.Time {
	_, next := MonthBounds(year, month)
	return next.AddDate(0, 0, -1)
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	d = DayOf(d)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

// WeekSpan is an inclusive [Start, End] run of days.
type WeekSpan struct {
	Start time.Time
	End   time.Time
}

// Days returns the span length in days.
func (w WeekSpan) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// PartitionMonth splits [monthStart, monthEnd] into consecutive chunks
// of at most seven days, starting at monthStart. The first and last
// chunks may be shorter than a week; chunk boundaries are clipped to
// the month, not aligned to Mondays.
func PartitionMonth(monthStart, monthEnd time.Time) []WeekSpan {
	monthStart = DayOf(monthStart)
	monthEnd = DayOf(monthEnd)

	var weeks []WeekSpan
	current := monthStart
	for !current.After(monthEnd) {
		end := current.AddDate(0, 0, 6)
		if end.After(monthEnd) {
			end = monthEnd
		}
		weeks = append(weeks, WeekSpan{Start: current, End: end})
		current = end.AddDate(0, 0, 1)
	}
	return weeks
}
