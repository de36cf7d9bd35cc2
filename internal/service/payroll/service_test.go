package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/employee"
	"github.com/attendly/attendly-backend-go/internal/domain/payroll"
	"github.com/attendly/attendly-backend-go/internal/domain/timelog"
)

// ===== FAKES =====

type fakePayrollRepo struct {
	records map[string]*payroll.Payroll // keyed employee/month/year
	now     time.Time
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]*payroll.Payroll), now: time.Now()}
}

func periodKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s/%d/%d", employeeID, month, year)
}

func (r *fakePayrollRepo) Upsert(_ context.Context, p *payroll.Payroll) error {
	key := periodKey(p.EmployeeID, p.Month, p.Year)
	if existing, ok := r.records[key]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = r.now
	}
	p.PaidAt = nil
	p.UpdatedAt = r.now

	stored := *p
	r.records[key] = &stored
	return nil
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id string) (*payroll.Payroll, error) {
	for _, p := range r.records {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, payroll.ErrPayrollNotFound
}

func (r *fakePayrollRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	if p, ok := r.records[periodKey(employeeID, month, year)]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, payroll.ErrPayrollNotFound
}

func (r *fakePayrollRepo) List(_ context.Context, filter payroll.ListFilter) ([]payroll.Payroll, int, error) {
	var result []payroll.Payroll
	for _, p := range r.records {
		if filter.EmployeeID != "" && p.EmployeeID != filter.EmployeeID {
			continue
		}
		result = append(result, *p)
	}
	return result, len(result), nil
}

func (r *fakePayrollRepo) MarkPaid(_ context.Context, id string) (*payroll.Payroll, error) {
	for _, p := range r.records {
		if p.ID == id {
			now := time.Now()
			p.Status = payroll.PayrollStatusPaid
			p.PaidAt = &now
			copied := *p
			return &copied, nil
		}
	}
	return nil, payroll.ErrPayrollNotFound
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
	failErr error
}

func (r *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	var result []attendance.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID && !a.Date.Before(start) && !a.Date.After(end) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeAttendanceRepo) Create(context.Context, *attendance.Attendance) error { return nil }
func (r *fakeAttendanceRepo) Update(context.Context, *attendance.Attendance) error { return nil }
func (r *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}
func (r *fakeAttendanceRepo) List(context.Context, attendance.ListFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}
func (r *fakeAttendanceRepo) ListStaleOpenSessions(context.Context, time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeTimeLogRepo struct {
	totals  map[string]int64
	failErr error
}

func (r *fakeTimeLogRepo) SumOvertimeMinutes(_ context.Context, employeeID string, _, _ time.Time) (int64, error) {
	if r.failErr != nil {
		return 0, r.failErr
	}
	return r.totals[employeeID], nil
}

func (r *fakeTimeLogRepo) Upsert(context.Context, *timelog.TimeLog) error { return nil }
func (r *fakeTimeLogRepo) ListByEmployeeAndRange(context.Context, string, time.Time, time.Time) ([]timelog.TimeLog, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	for i := range r.employees {
		if r.employees[i].ID == id {
			copied := r.employees[i]
			return &copied, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetActive(context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, e := range r.employees {
		if e.Active {
			active = append(active, e)
		}
	}
	return active, nil
}

func (r *fakeEmployeeRepo) Create(context.Context, *employee.Employee) error { return nil }
func (r *fakeEmployeeRepo) GetByEmail(context.Context, string) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}
func (r *fakeEmployeeRepo) Update(context.Context, *employee.Employee) error { return nil }
func (r *fakeEmployeeRepo) Deactivate(context.Context, string) error         { return nil }

// ===== HELPERS =====

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedAttendance(employeeID string, year int, month time.Month, presentDays, lateDays int) []attendance.Attendance {
	records := make([]attendance.Attendance, 0, presentDays)
	for i := 0; i < presentDays; i++ {
		records = append(records, attendance.Attendance{
			ID:         fmt.Sprintf("att-%d", i),
			EmployeeID: employeeID,
			Date:       time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC),
			IsLate:     i < lateDays,
		})
	}
	return records
}

func newTestService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	timeLogRepo timelog.TimeLogRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return NewService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo, time.UTC, testLogger())
}

// ===== TESTS =====

func TestGenerate_DerivesSalaryFromAttendance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{records: seedAttendance("emp-1", 2025, time.June, 20, 3)}
	timeLogRepo := &fakeTimeLogRepo{totals: map[string]int64{"emp-1": 600}}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Generated)
	require.Len(t, resp.Records, 1)

	record := resp.Records[0]
	assert.Equal(t, WorkingDaysPerMonth, record.WorkingDays)
	assert.Equal(t, 20, record.PresentDays)
	assert.Equal(t, 3, record.LateDays)
	assert.True(t, record.OvertimeHours.Equal(d("10")), "overtime hours: %s", record.OvertimeHours)
	assert.True(t, record.OvertimePay.Equal(d("1875")), "overtime pay: %s", record.OvertimePay)
	assert.True(t, record.Deductions.Equal(d("300")), "deductions: %s", record.Deductions)
	assert.True(t, record.GrossSalary.Equal(d("21875")), "gross: %s", record.GrossSalary)
	assert.True(t, record.NetSalary.Equal(d("21575")), "net: %s", record.NetSalary)
	assert.Equal(t, payroll.PayrollStatusPending, record.Status)

	stored, err := payrollRepo.GetByEmployeeAndPeriod(ctx, "emp-1", 6, 2025)
	require.NoError(t, err)
	assert.True(t, stored.NetSalary.Equal(d("21575")))
}

func TestGenerate_RegenerationReplacesRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{records: seedAttendance("emp-1", 2025, time.June, 20, 3)}
	timeLogRepo := &fakeTimeLogRepo{totals: map[string]int64{}}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo)

	first, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)

	// Pay the first record, then correct the attendance and rerun.
	_, err = svc.MarkAsPaid(ctx, first.Records[0].ID)
	require.NoError(t, err)

	attendanceRepo.records = seedAttendance("emp-1", 2025, time.June, 26, 0)
	second, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)

	stored, err := payrollRepo.GetByEmployeeAndPeriod(ctx, "emp-1", 6, 2025)
	require.NoError(t, err)

	// One record per period: the rerun overwrote everything, including
	// the paid status.
	assert.Len(t, payrollRepo.records, 1)
	assert.Equal(t, 26, stored.PresentDays)
	assert.True(t, stored.NetSalary.Equal(d("27000")), "net: %s", stored.NetSalary)
	assert.Equal(t, payroll.PayrollStatusPending, stored.Status)
	assert.Nil(t, stored.PaidAt)
	assert.Equal(t, 1, second.Generated)
}

func TestGenerate_AttendanceFailurePropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{failErr: errors.New("attendance store down")}
	timeLogRepo := &fakeTimeLogRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo)

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.Error(t, err)
	assert.Empty(t, payrollRepo.records)
}

func TestGenerate_TimeLogFailureFallsBackToZeroOvertime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{records: seedAttendance("emp-1", 2025, time.June, 20, 0)}
	timeLogRepo := &fakeTimeLogRepo{failErr: errors.New("time log store down")}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)

	assert.True(t, resp.Records[0].OvertimeHours.IsZero())
	assert.True(t, resp.Records[0].OvertimePay.IsZero())
	assert.True(t, resp.Records[0].NetSalary.Equal(d("20000")), "net: %s", resp.Records[0].NetSalary)
}

func TestGenerate_NoAttendanceRecordsStillSucceeds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{}
	timeLogRepo := &fakeTimeLogRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)

	record := resp.Records[0]
	assert.Equal(t, 0, record.PresentDays)
	assert.True(t, record.NetSalary.IsZero(), "net: %s", record.NetSalary)
}

func TestGenerate_SkipsEmployeesWithoutBaseSalary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{}
	timeLogRepo := &fakeTimeLogRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
		{ID: "emp-2", FullName: "Budi Santoso", BaseSalary: decimal.Zero, Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
	assert.Equal(t, 1, resp.Skipped)
}

func TestGenerate_ExplicitEmployeeWithoutBaseSalaryFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name   string
		salary decimal.Decimal
	}{
		{"zero salary", decimal.Zero},
		{"negative salary", d("-100")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payrollRepo := newFakePayrollRepo()
			employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
				{ID: "emp-2", FullName: "Budi Santoso", BaseSalary: tt.salary, Active: true},
			}}

			svc := newTestService(payrollRepo, &fakeAttendanceRepo{}, &fakeTimeLogRepo{}, employeeRepo)

			_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025, EmployeeID: "emp-2"})
			assert.ErrorIs(t, err, employee.ErrNoBaseSalary)
			assert.Empty(t, payrollRepo.records)
		})
	}
}

func TestGenerate_InvalidMonthRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newFakePayrollRepo(), &fakeAttendanceRepo{}, &fakeTimeLogRepo{}, &fakeEmployeeRepo{})

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 13, Year: 2025})
	assert.Error(t, err)
	_, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 0, Year: 2025})
	assert.Error(t, err)
}

func TestMarkAsPaid_UnknownIDReturnsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	svc := newTestService(payrollRepo, &fakeAttendanceRepo{}, &fakeTimeLogRepo{}, &fakeEmployeeRepo{})

	_, err := svc.MarkAsPaid(ctx, "does-not-exist")
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
	assert.Empty(t, payrollRepo.records)
}

func TestMarkAsPaid_StampsPaidAtAndRestampsOnRepeat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	payrollRepo := newFakePayrollRepo()
	attendanceRepo := &fakeAttendanceRepo{records: seedAttendance("emp-1", 2025, time.June, 26, 0)}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Ayu Lestari", BaseSalary: d("26000"), Active: true},
	}}

	svc := newTestService(payrollRepo, attendanceRepo, &fakeTimeLogRepo{}, employeeRepo)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: 6, Year: 2025})
	require.NoError(t, err)
	id := resp.Records[0].ID

	first, err := svc.MarkAsPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, first.Status)
	require.NotNil(t, first.PaidAt)

	time.Sleep(5 * time.Millisecond)

	second, err := svc.MarkAsPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, second.Status)
	require.NotNil(t, second.PaidAt)
	assert.True(t, second.PaidAt.After(*first.PaidAt), "repeat payment should re-stamp paid_at")
}
