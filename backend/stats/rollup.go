package stats

import "time"

// DailyProgress is the per-day slice of a progress report.
type DailyProgress struct {
	Date            string  `json:"date"`
	TotalHabits     int     `json:"total_habits"`
	CompletedHabits int     `json:"completed_habits"`
	CompletionRate  float64 `json:"completion_rate"`
}

// WeeklyProgress rolls a run of days up into one entry. The standalone
// weekly report always spans a full Monday..Sunday week; the entries
// inside a monthly report are clipped to the month and may be shorter.
type WeeklyProgress struct {
	WeekStart                string          `json:"week_start"`
	WeekEnd                  string          `json:"week_end"`
	TotalHabits              int             `json:"total_habits"`
	TotalPossibleCompletions int             `json:"total_possible_completions"`
	ActualCompletions        int             `json:"actual_completions"`
	CompletionRate           float64         `json:"completion_rate"`
	DailyBreakdown           []DailyProgress `json:"daily_breakdown"`
}

type MonthlyProgress struct {
	Month                    int              `json:"month"`
	Year                     int              `json:"year"`
	TotalHabits              int              `json:"total_habits"`
	TotalPossibleCompletions int              `json:"total_possible_completions"`
	ActualCompletions        int              `json:"actual_completions"`
	CompletionRate           float64          `json:"completion_rate"`
	WeeklyBreakdown          []WeeklyProgress `json:"weekly_breakdown"`
}

type OverallProgress struct {
	Daily   DailyProgress   `json:"daily"`
	Weekly  WeeklyProgress  `json:"weekly"`
	Monthly MonthlyProgress `json:"monthly"`
}

// CompletionIndex holds one user's completed (habit, day) pairs fetched
// in a single query, so report building never goes back to the store.
type CompletionIndex struct {
	byDay map[time.Time]map[uint]struct{}
}

func NewCompletionIndex() *CompletionIndex {
	return &CompletionIndex{byDay: make(map[time.Time]map[uint]struct{})}
}

// Add records a completed day for a habit. Re-adding the same pair is
// a no-op, so callers can feed raw log rows straight in.
func (ci *CompletionIndex) Add(habitID uint, day time.Time) {
	day = DayOf(day)
	habits, ok := ci.byDay[day]
	if !ok {
		habits = make(map[uint]struct{})
		ci.byDay[day] = habits
	}
	habits[habitID] = struct{}{}
}

// CompletedOn returns how many habits have a completion on the day.
func (ci *CompletionIndex) CompletedOn(day time.Time) int {
	return len(ci.byDay[DayOf(day)])
}

// DailyFor builds the single-day report. A user with no active habits
// gets a zero rate rather than a division by zero.
func DailyFor(idx *CompletionIndex, totalHabits int, day time.Time) DailyProgress {
	completed := idx.CompletedOn(day)
	rate := 0.0
	if totalHabits > 0 {
		rate = Round1(float64(completed) / float64(totalHabits) * 100)
	}
	return DailyProgress{
		Date:            DayOf(day).Format(DateLayout),
		TotalHabits:     totalHabits,
		CompletedHabits: completed,
		CompletionRate:  rate,
	}
}

// WeeklyFor builds a report for the inclusive [start, end] day run.
func WeeklyFor(idx *CompletionIndex, totalHabits int, start, end time.Time) WeeklyProgress {
	start, end = DayOf(start), DayOf(end)

	var breakdown []DailyProgress
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		breakdown = append(breakdown, DailyFor(idx, totalHabits, day))
	}

	actual := 0
	for _, d := range breakdown {
		actual += d.CompletedHabits
	}
	possible := totalHabits * len(breakdown)
	rate := 0.0
	if possible > 0 {
		rate = Round1(float64(actual) / float64(possible) * 100)
	}

	return WeeklyProgress{
		WeekStart:                start.Format(DateLayout),
		WeekEnd:                  end.Format(DateLayout),
		TotalHabits:              totalHabits,
		TotalPossibleCompletions: possible,
		ActualCompletions:        actual,
		CompletionRate:           rate,
		DailyBreakdown:           breakdown,
	}
}

// MonthlyFor builds the month report from month-clipped week chunks.
func MonthlyFor(idx *CompletionIndex, totalHabits, year int, month time.Month) MonthlyProgress {
	monthStart, next := MonthBounds(year, month)
	monthEnd := next.AddDate(0, 0, -1)

	var weeks []WeeklyProgress
	actual := 0
	for _, span := range PartitionMonth(monthStart, monthEnd) {
		week := WeeklyFor(idx, totalHabits, span.Start, span.End)
		weeks = append(weeks, week)
		actual += week.ActualCompletions
	}

	daysInMonth := monthEnd.Day()
	possible := totalHabits * daysInMonth
	rate := 0.0
	if possible > 0 {
		rate = Round1(float64(actual) / float64(possible) * 100)
	}

	return MonthlyProgress{
		Month:                    int(month),
		Year:                     year,
		TotalHabits:              totalHabits,
		TotalPossibleCompletions: possible,
		ActualCompletions:        actual,
		CompletionRate:           rate,
		WeeklyBreakdown:          weeks,
	}
}

// Overall builds the nested daily/weekly/monthly report as of today.
// The weekly report covers the full ISO week containing today even
// when it crosses a month boundary; the monthly breakdown clips its
// weeks to the month. FetchRange gives the date window a caller must
// load into the index to cover all three levels.
func Overall(idx *CompletionIndex, totalHabits int, today time.Time) OverallProgress {
	today = DayOf(today)
	weekStart := WeekStart(today)

	return OverallProgress{
		Daily:   DailyFor(idx, totalHabits, today),
		Weekly:  WeeklyFor(idx, totalHabits, weekStart, weekStart.AddDate(0, 0, 6)),
		Monthly: MonthlyFor(idx, totalHabits, today.Year(), today.Month()),
	}
}

// FetchRange returns the [start, end) window covering the week and the
// month containing today, for the single batched completions query.
func FetchRange(today time.Time) (start, end time.Time) {
	today = DayOf(today)
	weekStart := WeekStart(today)
	weekEndExcl := weekStart.AddDate(0, 0, 7)
	monthStart, next := MonthBounds(today.Year(), today.Month())

	start = monthStart
	if weekStart.Before(start) {
		start = weekStart
	}
	end = next
	if weekEndExcl.After(end) {
		end = weekEndExcl
	}
	return start, end
}
