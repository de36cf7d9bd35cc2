package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendly-backend-go/internal/domain/payroll"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.base_salary, p.working_days,
	p.present_days, p.late_days, p.overtime_hours, p.overtime_pay,
	p.deductions, p.bonus, p.gross_salary, p.net_salary,
	p.status, p.generated_at, p.paid_at, p.created_at, p.updated_at`

func scanPayroll(row pgx.Row, p *payroll.Payroll) error {
	return row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary, &p.WorkingDays,
		&p.PresentDays, &p.LateDays, &p.OvertimeHours, &p.OvertimePay,
		&p.Deductions, &p.Bonus, &p.GrossSalary, &p.NetSalary,
		&p.Status, &p.GeneratedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
}

// Upsert replaces every derived field on conflict, including resetting the
// status to pending and clearing paid_at. Regeneration yields the same
// record a fresh generation would have produced.
func (r *payrollRepository) Upsert(ctx context.Context, p *payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			id, employee_id, month, year, base_salary, working_days,
			present_days, late_days, overtime_hours, overtime_pay,
			deductions, bonus, gross_salary, net_salary,
			status, generated_at, paid_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NULL, NOW(), NOW())
		ON CONFLICT (employee_id, month, year) DO UPDATE
		SET base_salary = EXCLUDED.base_salary,
			working_days = EXCLUDED.working_days,
			present_days = EXCLUDED.present_days,
			late_days = EXCLUDED.late_days,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_pay = EXCLUDED.overtime_pay,
			deductions = EXCLUDED.deductions,
			bonus = EXCLUDED.bonus,
			gross_salary = EXCLUDED.gross_salary,
			net_salary = EXCLUDED.net_salary,
			status = EXCLUDED.status,
			generated_at = EXCLUDED.generated_at,
			paid_at = NULL,
			updated_at = NOW()
		RETURNING id, status, paid_at, created_at, updated_at`

	err := q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.Month, p.Year, p.BaseSalary, p.WorkingDays,
		p.PresentDays, p.LateDays, p.OvertimeHours, p.OvertimePay,
		p.Deductions, p.Bonus, p.GrossSalary, p.NetSalary,
		p.Status, p.GeneratedAt,
	).Scan(&p.ID, &p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert payroll: %w", err)
	}
	return nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, e.full_name
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary, &p.WorkingDays,
		&p.PresentDays, &p.LateDays, &p.OvertimeHours, &p.OvertimePay,
		&p.Deductions, &p.Bonus, &p.GrossSalary, &p.NetSalary,
		&p.Status, &p.GeneratedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to get payroll: %w", err)
	}
	return &p, nil
}

func (r *payrollRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3`

	var p payroll.Payroll
	if err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to get payroll by period: %w", err)
	}
	return &p, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.Payroll, int, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Month != 0 {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argPos))
		args = append(args, filter.Month)
		argPos++
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", argPos))
		args = append(args, filter.Year)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM payrolls p WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	query := `
		SELECT ` + payrollColumns + `, e.full_name
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE ` + where + `
		ORDER BY p.year DESC, p.month DESC, e.full_name
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary, &p.WorkingDays,
			&p.PresentDays, &p.LateDays, &p.OvertimeHours, &p.OvertimePay,
			&p.Deductions, &p.Bonus, &p.GrossSalary, &p.NetSalary,
			&p.Status, &p.GeneratedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}
	return result, total, nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	// Repeat calls re-stamp paid_at rather than erroring, so retried
	// payment confirmations stay idempotent in status.
	query := `
		UPDATE payrolls p
		SET status = $2, paid_at = NOW(), updated_at = NOW()
		WHERE p.id = $1
		RETURNING ` + payrollColumns

	var p payroll.Payroll
	if err := scanPayroll(q.QueryRow(ctx, query, id, payroll.PayrollStatusPaid), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to mark payroll as paid: %w", err)
	}
	return &p, nil
}
