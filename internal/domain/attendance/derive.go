package attendance

import (
	"fmt"
	"time"
)

// DayTime is a time-of-day threshold such as the 09:30 office start.
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses a "HH:MM" string.
func ParseDayTime(s string) (DayTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return DayTime{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return DayTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// On anchors the time-of-day onto the calendar day of t, in t's location.
func (d DayTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), d.Hour, d.Minute, 0, 0, t.Location())
}

// IsLate reports whether checkIn's local time-of-day is strictly after the
// threshold. Checking in at the threshold exactly is on time.
func IsLate(checkIn time.Time, threshold DayTime) bool {
	return checkIn.After(threshold.On(checkIn))
}

// WorkingHours returns the worked duration between check-in and check-out
// in hours, floored to whole minutes and clamped to zero. The clamp is a
// defensive floor against clock skew or corrupt checkout-before-checkin
// data, not a reported error.
func WorkingHours(checkIn, checkOut time.Time) float64 {
	mins := int(checkOut.Sub(checkIn).Minutes())
	if mins < 0 {
		mins = 0
	}
	return float64(mins) / 60.0
}
