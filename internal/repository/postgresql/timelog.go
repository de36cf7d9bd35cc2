package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/timelog"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
)

type timeLogRepository struct {
	db *database.DB
}

func NewTimeLogRepository(db *database.DB) timelog.TimeLogRepository {
	return &timeLogRepository{db: db}
}

func (r *timeLogRepository) Upsert(ctx context.Context, log *timelog.TimeLog) error {
	q := GetQuerier(ctx, r.db)

	// The conflict branch keeps the original clock_in: the row is
	// created at clock-in and only its clock-out side mutates.
	query := `
		INSERT INTO time_logs (id, employee_id, date, clock_in, clock_out, overtime_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE
		SET clock_out = EXCLUDED.clock_out,
			overtime_minutes = EXCLUDED.overtime_minutes,
			updated_at = NOW()
		RETURNING id, clock_in, created_at, updated_at`

	err := q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.Date, log.ClockIn, log.ClockOut, log.OvertimeMinutes,
	).Scan(&log.ID, &log.ClockIn, &log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert time log: %w", err)
	}
	return nil
}

func (r *timeLogRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, overtime_minutes, created_at, updated_at
		FROM time_logs
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	defer rows.Close()

	var logs []timelog.TimeLog
	for rows.Next() {
		var l timelog.TimeLog
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Date, &l.ClockIn, &l.ClockOut, &l.OvertimeMinutes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time logs: %w", err)
	}
	return logs, nil
}

func (r *timeLogRepository) SumOvertimeMinutes(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(overtime_minutes), 0)
		FROM time_logs
		WHERE employee_id = $1 AND date >= $2 AND date <= $3`

	var total int64
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum overtime minutes: %w", err)
	}
	return total, nil
}
