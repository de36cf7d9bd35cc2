package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/employee"
	"github.com/attendly/attendly-backend-go/internal/domain/payroll"
	"github.com/attendly/attendly-backend-go/internal/domain/timelog"
	"github.com/attendly/attendly-backend-go/internal/pkg/period"
)

type service struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	timeLogRepo    timelog.TimeLogRepository
	employeeRepo   employee.EmployeeRepository
	location       *time.Location
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	timeLogRepo timelog.TimeLogRepository,
	employeeRepo employee.EmployeeRepository,
	location *time.Location,
	logger *slog.Logger,
) payroll.PayrollService {
	return &service{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		timeLogRepo:    timeLogRepo,
		employeeRepo:   employeeRepo,
		location:       location,
		logger:         logger,
		now:            time.Now,
	}
}

// Generate derives payroll for the period and stores one record per
// employee, replacing any record a previous run produced for the same
// period. Employees without a base salary are skipped, not failed, so a
// single unconfigured profile cannot block the whole run.
func (s *service) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	start, end, err := period.MonthRange(req.Month, req.Year, s.location)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	var employees []employee.Employee
	if req.EmployeeID != "" {
		e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, err
		}
		// An explicit request for one employee must not silently skip;
		// the caller asked for this payslip and gets told why there is
		// none.
		if !e.BaseSalary.IsPositive() {
			return payroll.GeneratePayrollResponse{}, employee.ErrNoBaseSalary
		}
		employees = []employee.Employee{*e}
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
		if len(employees) == 0 {
			return payroll.GeneratePayrollResponse{}, payroll.ErrNoActiveEmployees
		}
	}

	resp := payroll.GeneratePayrollResponse{Month: req.Month, Year: req.Year}
	for i := range employees {
		e := &employees[i]
		if !e.BaseSalary.IsPositive() {
			s.logger.Warn("skipping employee without base salary", "employee_id", e.ID)
			resp.Skipped++
			continue
		}

		record, err := s.generateForEmployee(ctx, e, req.Month, req.Year, start, end)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to generate payroll for employee %s: %w", e.ID, err)
		}
		resp.Generated++
		resp.Records = append(resp.Records, mapToResponse(record))
	}

	s.logger.Info("payroll generated",
		"month", req.Month, "year", req.Year, "generated", resp.Generated, "skipped", resp.Skipped)
	return resp, nil
}

func (s *service) generateForEmployee(ctx context.Context, e *employee.Employee, month, year int, start, end time.Time) (*payroll.Payroll, error) {
	att, err := s.aggregateAttendance(ctx, e.ID, start, end)
	if err != nil {
		return nil, err
	}

	b := Compute(e.BaseSalary, att)

	record := &payroll.Payroll{
		ID:            uuid.NewString(),
		EmployeeID:    e.ID,
		Month:         month,
		Year:          year,
		BaseSalary:    e.BaseSalary,
		WorkingDays:   WorkingDaysPerMonth,
		PresentDays:   att.PresentDays,
		LateDays:      att.LateDays,
		OvertimeHours: att.OvertimeHours,
		OvertimePay:   b.OvertimePay,
		Deductions:    b.Deductions,
		Bonus:         b.Bonus,
		GrossSalary:   b.GrossSalary,
		NetSalary:     b.NetSalary,
		Status:        payroll.PayrollStatusPending,
		GeneratedAt:   s.now(),
		EmployeeName:  &e.FullName,
	}

	if err := s.payrollRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// aggregateAttendance rolls one employee-month up into engine inputs.
// Attendance is a mandatory input and its errors propagate. Overtime is
// optional: when the time log store cannot be read the month is computed
// with zero overtime and a warning, since blocking every salary on the
// overtime stream is worse than underpaying overtime one run.
func (s *service) aggregateAttendance(ctx context.Context, employeeID string, start, end time.Time) (MonthlyAttendance, error) {
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return MonthlyAttendance{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	att := MonthlyAttendance{OvertimeHours: decimal.Zero}
	for _, r := range records {
		att.PresentDays++
		if r.IsLate {
			att.LateDays++
		}
	}

	overtimeMinutes, err := s.timeLogRepo.SumOvertimeMinutes(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Warn("failed to load overtime, using zero",
			"employee_id", employeeID, "error", err)
		overtimeMinutes = 0
	}
	att.OvertimeHours = decimal.NewFromInt(overtimeMinutes).Div(decimal.NewFromInt(60))

	return att, nil
}

func (s *service) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return mapToResponse(record), nil
}

func (s *service) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, int, error) {
	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapToResponse(&records[i]))
	}
	return responses, total, nil
}

func (s *service) GetMyPayrolls(ctx context.Context, employeeID string, filter payroll.ListFilter) ([]payroll.PayrollResponse, int, error) {
	filter.EmployeeID = employeeID
	return s.List(ctx, filter)
}

func (s *service) MarkAsPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.MarkPaid(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	s.logger.Info("payroll marked as paid", "payroll_id", record.ID, "employee_id", record.EmployeeID)
	return mapToResponse(record), nil
}

func mapToResponse(p *payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		EmployeeName:  p.EmployeeName,
		Month:         p.Month,
		Year:          p.Year,
		BaseSalary:    p.BaseSalary,
		WorkingDays:   p.WorkingDays,
		PresentDays:   p.PresentDays,
		LateDays:      p.LateDays,
		OvertimeHours: p.OvertimeHours,
		OvertimePay:   p.OvertimePay,
		Deductions:    p.Deductions,
		Bonus:         p.Bonus,
		GrossSalary:   p.GrossSalary,
		NetSalary:     p.NetSalary,
		Status:        p.Status,
		GeneratedAt:   p.GeneratedAt,
		PaidAt:        p.PaidAt,
	}
}
