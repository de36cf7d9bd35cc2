package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange(t *testing.T) {
	t.Parallel()

	start, end, err := MonthRange(2, 2024, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 29, end.Day()) // leap year
	assert.Equal(t, 23, end.Hour())
	assert.True(t, start.Before(end))
}

func TestMonthRange_AllMonthsOrdered(t *testing.T) {
	t.Parallel()

	for month := 1; month <= 12; month++ {
		start, end, err := MonthRange(month, 2025, time.UTC)
		require.NoError(t, err)
		assert.True(t, start.Before(end), "month %d", month)
		assert.Equal(t, time.Month(month), start.Month())
		assert.Equal(t, time.Month(month), end.Month())
	}
}

func TestMonthRange_InvalidMonth(t *testing.T) {
	t.Parallel()

	for _, month := range []int{0, 13, -1} {
		_, _, err := MonthRange(month, 2025, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidMonth, "month %d", month)
	}
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, DaysInMonth(1, 2025))
	assert.Equal(t, 28, DaysInMonth(2, 2025))
	assert.Equal(t, 29, DaysInMonth(2, 2024))
	assert.Equal(t, 30, DaysInMonth(4, 2025))
}

func TestWorkingDaysBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			// June 2025: 30 days, starts on a Sunday, 21 weekdays
			name:  "full month june 2025",
			start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
			want:  21,
		},
		{
			// Feb 2024: leap month, 21 weekdays
			name:  "full month february 2024",
			start: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want:  21,
		},
		{
			name:  "single weekday",
			start: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "weekend only",
			start: time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "end before start",
			start: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			// Time-of-day on the bounds must not change the count.
			name:  "intra-day bounds",
			start: time.Date(2025, time.June, 2, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 3, 0, 1, 0, 0, time.UTC),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingDaysBetween(tt.start, tt.end))
		})
	}
}

func TestWorkingDaysBetween_MatchesMonthRange(t *testing.T) {
	t.Parallel()

	// Cross-check against a brute-force weekday count for every month of
	// two different years.
	for _, year := range []int{2024, 2025} {
		for month := 1; month <= 12; month++ {
			start, end, err := MonthRange(month, year, time.UTC)
			require.NoError(t, err)

			want := 0
			for d := 1; d <= DaysInMonth(month, year); d++ {
				wd := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Weekday()
				if wd != time.Saturday && wd != time.Sunday {
					want++
				}
			}
			assert.Equal(t, want, WorkingDaysBetween(start, end), "%d-%d", year, month)
		}
	}
}
