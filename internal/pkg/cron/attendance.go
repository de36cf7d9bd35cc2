package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendly-backend-go/internal/config"
	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
)

// AttendanceAutoCloseJob closes sessions whose check-out never arrived.
// A forgotten check-out would otherwise leave the day without working
// hours and block the next day's check-in semantics from being clean, so
// the job stamps the scheduled end of that working day as the check-out.
type AttendanceAutoCloseJob struct {
	repo     attendance.AttendanceRepository
	endOfDay attendance.DayTime
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

func NewAttendanceAutoCloseJob(
	repo attendance.AttendanceRepository,
	office config.OfficeConfig,
	location *time.Location,
	logger *slog.Logger,
) (*AttendanceAutoCloseJob, error) {
	endOfDay, err := attendance.ParseDayTime(office.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid office end time: %w", err)
	}

	return &AttendanceAutoCloseJob{
		repo:     repo,
		endOfDay: endOfDay,
		location: location,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (j *AttendanceAutoCloseJob) Name() string {
	return "attendance_auto_close"
}

func (j *AttendanceAutoCloseJob) Run(ctx context.Context) error {
	now := j.now().In(j.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.location)

	stale, err := j.repo.ListStaleOpenSessions(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}

	for i := range stale {
		att := &stale[i]

		checkOut := j.endOfDay.On(att.Date)
		if checkOut.Before(att.CheckIn) {
			// Checked in after the scheduled end of day; close at
			// check-in so hours stay at zero.
			checkOut = att.CheckIn
		}
		hours := attendance.WorkingHours(att.CheckIn, checkOut)

		att.CheckOut = &checkOut
		att.WorkingHours = &hours
		if err := j.repo.Update(ctx, att); err != nil {
			j.logger.Error("failed to auto-close session",
				"attendance_id", att.ID, "employee_id", att.EmployeeID, "error", err)
			continue
		}

		j.logger.Info("auto-closed stale session",
			"attendance_id", att.ID, "employee_id", att.EmployeeID,
			"date", att.Date.Format("2006-01-02"))
	}
	return nil
}
