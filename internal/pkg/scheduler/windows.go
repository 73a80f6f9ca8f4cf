package scheduler

import (
	"fmt"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
)

// WindowFor derives the reporting window for a period type at a given
// instant. WEEK is the rolling last 7 days, MONTH and YEAR run from their
// calendar start to now, TERM is the most recently completed four-month
// term (the one ending on the last April 30, August 31 or December 31 at or
// before now).
func WindowFor(periodType string, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()
	switch periodType {
	case models.PeriodWeek:
		return now.AddDate(0, 0, -7), now, nil
	case models.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), now, nil
	case models.PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), now, nil
	case models.PeriodTerm:
		end := lastTermEnd(now)
		start := time.Date(end.Year(), end.Month()-3, 1, 0, 0, 0, 0, loc)
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period type: %q", periodType)
	}
}

// lastTermEnd returns the most recent term boundary (end of April, August
// or December) at or before now.
func lastTermEnd(now time.Time) time.Time {
	loc := now.Location()
	year := now.Year()
	for _, month := range []time.Month{time.December, time.August, time.April} {
		candidate := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
		if !candidate.After(now) {
			return candidate
		}
	}
	// Before April 30: the last completed term ended the previous December.
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
}

// previousMonthWindow is the fully completed calendar month before now.
func previousMonthWindow(now time.Time) (time.Time, time.Time) {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfPrevious := firstOfCurrent.AddDate(0, -1, 0)
	return firstOfPrevious, firstOfCurrent
}

// previousYearWindow is the fully completed calendar year before now.
func previousYearWindow(now time.Time) (time.Time, time.Time) {
	firstOfCurrent := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	firstOfPrevious := firstOfCurrent.AddDate(-1, 0, 0)
	return firstOfPrevious, firstOfCurrent
}
