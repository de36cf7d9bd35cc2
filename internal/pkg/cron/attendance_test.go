package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-backend-go/internal/config"
	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
)

type stubAttendanceRepo struct {
	stale   []attendance.Attendance
	updated []attendance.Attendance
}

func (r *stubAttendanceRepo) ListStaleOpenSessions(_ context.Context, before time.Time) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for _, att := range r.stale {
		if att.Date.Before(before) {
			result = append(result, att)
		}
	}
	return result, nil
}

func (r *stubAttendanceRepo) Update(_ context.Context, att *attendance.Attendance) error {
	r.updated = append(r.updated, *att)
	return nil
}

func (r *stubAttendanceRepo) Create(context.Context, *attendance.Attendance) error { return nil }
func (r *stubAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}
func (r *stubAttendanceRepo) ListByEmployeeAndRange(context.Context, string, time.Time, time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}
func (r *stubAttendanceRepo) List(context.Context, attendance.ListFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func TestAttendanceAutoCloseJob(t *testing.T) {
	t.Parallel()

	yesterday := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	repo := &stubAttendanceRepo{stale: []attendance.Attendance{
		{
			ID:         "att-1",
			EmployeeID: "emp-1",
			Date:       yesterday,
			CheckIn:    yesterday.Add(9 * time.Hour),
		},
		{
			// Checked in after the scheduled end of day.
			ID:         "att-2",
			EmployeeID: "emp-2",
			Date:       yesterday,
			CheckIn:    yesterday.Add(20 * time.Hour),
		},
	}}

	office := config.OfficeConfig{StartTime: "09:30", EndTime: "17:30", StandardShiftMinutes: 480, RadiusMeters: 200}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	job, err := NewAttendanceAutoCloseJob(repo, office, time.UTC, logger)
	require.NoError(t, err)
	job.now = func() time.Time {
		return time.Date(2025, time.June, 17, 3, 0, 0, 0, time.UTC)
	}

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, repo.updated, 2)

	first := repo.updated[0]
	require.NotNil(t, first.CheckOut)
	assert.Equal(t, yesterday.Add(17*time.Hour+30*time.Minute), *first.CheckOut)
	require.NotNil(t, first.WorkingHours)
	assert.InDelta(t, 8.5, *first.WorkingHours, 1e-9)

	second := repo.updated[1]
	require.NotNil(t, second.CheckOut)
	assert.Equal(t, second.CheckIn, *second.CheckOut)
	require.NotNil(t, second.WorkingHours)
	assert.Zero(t, *second.WorkingHours)
}
