package timeseries

import (
	"time"

	"github.com/rickar/cal/v2"
)

// NextMonth advances a date by one calendar month, clamping the day of month
// to the target month's last day instead of letting the overflow spill into
// the following month. Jan 31 therefore lands on Feb 28/29 rather than Mar 2.
func NextMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month()+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := cal.MonthEnd(first).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// FutureDates derives the shared date axis for out-of-sample forecasts: n
// dates stepping one calendar month at a time from the last historical date.
// Stepping is sequential, so a clamped month carries its day forward
// (2024-01-31 -> 2024-02-29 -> 2024-03-29). Validation charts never call
// this; their forecast dates are the historical dates at the same index.
func FutureDates(last time.Time, n int) []time.Time {
	if last.IsZero() || n <= 0 {
		return nil
	}
	dates := make([]time.Time, 0, n)
	d := last
	for i := 0; i < n; i++ {
		d = NextMonth(d)
		dates = append(dates, d)
	}
	return dates
}
