// Package dates isolates the persistence-boundary contract for date values:
// business dates (issue, due, payment, filing periods) are written and read
// as explicit local wall-clock days with no implicit timezone shifting.
package dates

import "time"

// DayFormat is the canonical wire/storage format for business dates.
const DayFormat = "2006-01-02"

// Normalize strips the time-of-day and timezone from a business date,
// keeping the wall-clock day the caller saw.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a business date as its wall-clock day.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a wall-clock day into a normalized business date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// PeriodKey derives the stable filing-period key for a [start, end] window,
// e.g. "2026-01-01_2026-03-31". Uniqueness of filings per company hangs on
// this key.
func PeriodKey(start, end time.Time) string {
	return FormatDay(start) + "_" + FormatDay(end)
}
