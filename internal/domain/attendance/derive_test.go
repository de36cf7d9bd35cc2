package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayTime(t *testing.T) {
	t.Parallel()

	dt, err := ParseDayTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, dt.Hour)
	assert.Equal(t, 30, dt.Minute)
	assert.Equal(t, "09:30", dt.String())

	_, err = ParseDayTime("25:00")
	assert.Error(t, err)
	_, err = ParseDayTime("nine thirty")
	assert.Error(t, err)
}

func TestIsLate(t *testing.T) {
	t.Parallel()

	threshold := DayTime{Hour: 9, Minute: 30}
	day := func(h, m, s int) time.Time {
		return time.Date(2025, time.June, 16, h, m, s, 0, time.UTC)
	}

	tests := []struct {
		name    string
		checkIn time.Time
		want    bool
	}{
		{"well before start", day(8, 0, 0), false},
		{"one minute before", day(9, 29, 0), false},
		{"exactly on the threshold", day(9, 30, 0), false},
		{"one second after", day(9, 30, 1), true},
		{"one minute after", day(9, 31, 0), true},
		{"afternoon", day(14, 0, 0), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsLate(tt.checkIn, threshold))
		})
	}
}

func TestWorkingHours(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.June, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     float64
	}{
		{"standard day", base, base.Add(8 * time.Hour), 8},
		{"half day", base, base.Add(4*time.Hour + 30*time.Minute), 4.5},
		{"sub-minute remainder floors", base, base.Add(1*time.Hour + 59*time.Second), 1},
		{"same instant", base, base, 0},
		{"checkout before checkin clamps to zero", base, base.Add(-2 * time.Hour), 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, WorkingHours(tt.checkIn, tt.checkOut), 1e-9)
		})
	}
}

func TestWorkingHoursNeverNegative(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{-48 * time.Hour, -1 * time.Minute, 0, time.Minute, 12 * time.Hour} {
		assert.GreaterOrEqual(t, WorkingHours(checkIn, checkIn.Add(offset)), 0.0)
	}
}
