// Package period provides calendar math for payroll and leave periods.
package period

import (
	"errors"
	"time"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// MonthRange returns the first and last instants of the given month in loc.
// The end bound is inclusive: 23:59:59.999999999 on the last day.
func MonthRange(month, year int, loc *time.Location) (start, end time.Time, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// DaysInMonth returns the number of calendar days in the given month.
// Day zero of the following month is the last day of this one.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WorkingDaysBetween counts the days in [start, end] inclusive that fall on
// Monday through Friday. Both bounds are treated as whole days; holidays are
// not considered.
func WorkingDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	count := 0
	for !day.After(last) {
		wd := day.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
