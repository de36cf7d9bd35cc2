package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/attendly/attendly-backend-go/internal/config"
	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/timelog"
	"github.com/attendly/attendly-backend-go/internal/pkg/period"
	"github.com/attendly/attendly-backend-go/internal/pkg/storage"
	"github.com/attendly/attendly-backend-go/internal/pkg/utils"
)

type service struct {
	attendanceRepo attendance.AttendanceRepository
	timeLogRepo    timelog.TimeLogRepository
	files          storage.FileStorage
	office         config.OfficeConfig
	startOfDay     attendance.DayTime
	location       *time.Location
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.AttendanceRepository,
	timeLogRepo timelog.TimeLogRepository,
	files storage.FileStorage,
	office config.OfficeConfig,
	location *time.Location,
	logger *slog.Logger,
) (attendance.AttendanceService, error) {
	startOfDay, err := attendance.ParseDayTime(office.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid office start time: %w", err)
	}

	return &service{
		attendanceRepo: attendanceRepo,
		timeLogRepo:    timeLogRepo,
		files:          files,
		office:         office,
		startOfDay:     startOfDay,
		location:       location,
		logger:         logger,
		now:            time.Now,
	}, nil
}

func (s *service) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.location)
	today := dateOf(now)

	_, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	proofKey, err := s.files.Upload(ctx, req.Proof, s.proofPath(req.EmployeeID, today, "in", req.ProofMeta.Filename))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload check-in proof: %w", err)
	}
	proofURL := s.files.URL(proofKey)

	// Lateness is decided and stored now. Later changes to the office
	// start time do not rewrite history.
	att := &attendance.Attendance{
		ID:               uuid.NewString(),
		EmployeeID:       req.EmployeeID,
		Date:             today,
		CheckIn:          now,
		IsLate:           attendance.IsLate(now, s.startOfDay),
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInProofURL:  &proofURL,
	}

	if err := s.attendanceRepo.Create(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	s.openTimeLog(ctx, att)

	s.logger.Info("employee checked in",
		"employee_id", att.EmployeeID, "date", today.Format("2006-01-02"), "is_late", att.IsLate)
	return mapToResponse(att), nil
}

func (s *service) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.location)
	today := dateOf(now)

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	proofKey, err := s.files.Upload(ctx, req.Proof, s.proofPath(req.EmployeeID, today, "out", req.ProofMeta.Filename))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload check-out proof: %w", err)
	}
	proofURL := s.files.URL(proofKey)

	hours := attendance.WorkingHours(att.CheckIn, now)
	att.CheckOut = &now
	att.WorkingHours = &hours
	att.CheckOutLatitude = &req.Latitude
	att.CheckOutLongitude = &req.Longitude
	att.CheckOutProofURL = &proofURL

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	s.closeTimeLog(ctx, att, now)

	s.logger.Info("employee checked out",
		"employee_id", att.EmployeeID, "date", today.Format("2006-01-02"), "working_hours", hours)
	return mapToResponse(att), nil
}

// openTimeLog starts the day's entry in the clocked-time stream. The
// stream is an optional payroll input, so a write failure is logged and
// does not fail the check-in.
func (s *service) openTimeLog(ctx context.Context, att *attendance.Attendance) {
	log := &timelog.TimeLog{
		ID:         uuid.NewString(),
		EmployeeID: att.EmployeeID,
		Date:       att.Date,
		ClockIn:    att.CheckIn,
	}
	if err := s.timeLogRepo.Upsert(ctx, log); err != nil {
		s.logger.Warn("failed to open time log",
			"employee_id", att.EmployeeID, "date", att.Date.Format("2006-01-02"), "error", err)
	}
}

// closeTimeLog fills in the clock-out side of the day's entry along with
// the minutes worked beyond the standard shift. Best effort, like
// openTimeLog.
func (s *service) closeTimeLog(ctx context.Context, att *attendance.Attendance, checkOut time.Time) {
	overtimeMinutes := int(checkOut.Sub(att.CheckIn).Minutes()) - s.office.StandardShiftMinutes
	if overtimeMinutes < 0 {
		overtimeMinutes = 0
	}

	log := &timelog.TimeLog{
		ID:              uuid.NewString(),
		EmployeeID:      att.EmployeeID,
		Date:            att.Date,
		ClockIn:         att.CheckIn,
		ClockOut:        &checkOut,
		OvertimeMinutes: overtimeMinutes,
	}
	if err := s.timeLogRepo.Upsert(ctx, log); err != nil {
		s.logger.Warn("failed to close time log",
			"employee_id", att.EmployeeID, "date", att.Date.Format("2006-01-02"), "error", err)
	}
}

func (s *service) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.AttendanceResponse, int, error) {
	filter.EmployeeID = employeeID
	return s.List(ctx, filter)
}

func (s *service) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, int, error) {
	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapToResponse(&records[i]))
	}
	return responses, total, nil
}

func (s *service) MonthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummaryResponse, error) {
	start, end, err := period.MonthRange(month, year, s.location)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	summary := attendance.MonthlySummaryResponse{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		WorkingDays: period.WorkingDaysBetween(start, end),
	}
	for _, r := range records {
		summary.PresentDays++
		if r.IsLate {
			summary.LateDays++
		}
		if r.WorkingHours != nil {
			summary.TotalWorkingHours += *r.WorkingHours
		}
	}
	return summary, nil
}

func (s *service) checkGeofence(lat, lon float64) error {
	if !utils.WithinRadius(s.office.Latitude, s.office.Longitude, lat, lon, s.office.RadiusMeters) {
		return attendance.ErrOutsideAllowedRadius
	}
	return nil
}

func (s *service) proofPath(employeeID string, day time.Time, direction, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("attendance/%s/%s-%s%s", employeeID, day.Format("2006-01-02"), direction, ext)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mapToResponse(att *attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.Format("2006-01-02"),
		CheckIn:           att.CheckIn,
		CheckOut:          att.CheckOut,
		IsLate:            att.IsLate,
		WorkingHours:      att.WorkingHours,
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckInProofURL:   att.CheckInProofURL,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		CheckOutProofURL:  att.CheckOutProofURL,
	}
}
