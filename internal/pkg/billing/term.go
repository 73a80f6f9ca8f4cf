package billing

import (
	"fmt"
	"time"
)

// The billing year is split into three fixed terms ending April 30,
// August 31 and December 31. Subscriptions are always billed through a term
// boundary: paying mid-term still buys the remainder of the current term.
var termEndMonths = [3]time.Month{time.April, time.August, time.December}

// FixedTermEndDate quantizes a reference date and a purchased duration into
// a term-boundary expiry: the last instant (23:59:59.999 local time) of the
// end month of the resulting term.
//
// The current term is the one whose end month is the smallest end month not
// before the reference month. Purchases beyond one term advance the
// boundary term by term (April, August, December, then April of the next
// year). A chain never extends past the April boundary of the following
// membership year; reaching April stops it.
//
// monthsPurchased must be 4, 8 or 12; anything else is a caller contract
// violation and is rejected rather than silently coerced.
func FixedTermEndDate(referenceDate time.Time, monthsPurchased int) (time.Time, error) {
	switch monthsPurchased {
	case 4, 8, 12:
	default:
		return time.Time{}, fmt.Errorf("invalid term length: %d months (must be 4, 8 or 12)", monthsPurchased)
	}

	year := referenceDate.Year()
	idx := int(referenceDate.Month()-1) / 4 // 0-3 Apr, 4-7 Aug, 8-11 Dec

	extraTerms := monthsPurchased/4 - 1
	for i := 0; i < extraTerms; i++ {
		idx++
		if idx == len(termEndMonths) {
			idx = 0
			year++
		}
		if termEndMonths[idx] == time.April {
			// Rolled into the next membership year; the chain ends here.
			break
		}
	}

	return endOfMonth(year, termEndMonths[idx], referenceDate.Location()), nil
}

// endOfMonth returns the last instant of the month at millisecond precision.
func endOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	return firstOfNext.Add(-time.Millisecond)
}
