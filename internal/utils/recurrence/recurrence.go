// Package recurrence implements the calendar arithmetic behind recurring costs.
//
// Month arithmetic clamps to the last day of the target month: Jan 31 advanced
// one month is Feb 28 (or 29), never Mar 3. Each advance starts from the
// previous result, so a template anchored on the 31st drifts to the 28th after
// February and stays there.
package recurrence

import (
	"fmt"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// MonthsFor returns the number of calendar months one period of freq spans.
func MonthsFor(freq domain.RecurrenceFrequency) (int, error) {
	switch freq {
	case domain.FrequencyMonthly:
		return 1, nil
	case domain.FrequencyQuarterly:
		return 3, nil
	case domain.FrequencyYearly:
		return 12, nil
	}
	return 0, fmt.Errorf("unknown recurrence frequency %q", freq)
}

// Advance moves date forward by one period of freq.
func Advance(date time.Time, freq domain.RecurrenceFrequency) (time.Time, error) {
	months, err := MonthsFor(freq)
	if err != nil {
		return time.Time{}, err
	}
	return AddMonths(date, months), nil
}

// AddMonths adds n calendar months to t, clamping the day to the target month's length.
// The time of day and location are preserved.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysIn returns the number of days in month m of year y.
func DaysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NormalizeDay truncates t to midnight in its own location.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDue reports whether next falls on or before today, ignoring time of day.
func IsDue(next, today time.Time) bool {
	n := NormalizeDay(next)
	return !n.After(NormalizeDay(today.In(next.Location())))
}
