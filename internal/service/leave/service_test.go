package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
)

type memLeaveRepo struct {
	records map[string]*leave.LeaveRequest
}

func newMemLeaveRepo() *memLeaveRepo {
	return &memLeaveRepo{records: make(map[string]*leave.LeaveRequest)}
}

func (r *memLeaveRepo) Create(_ context.Context, lr *leave.LeaveRequest) error {
	stored := *lr
	r.records[lr.ID] = &stored
	return nil
}

func (r *memLeaveRepo) GetByID(_ context.Context, id string) (*leave.LeaveRequest, error) {
	if lr, ok := r.records[id]; ok {
		copied := *lr
		return &copied, nil
	}
	return nil, leave.ErrLeaveNotFound
}

func (r *memLeaveRepo) List(_ context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int, error) {
	var result []leave.LeaveRequest
	for _, lr := range r.records {
		if filter.EmployeeID != "" && lr.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && lr.Status != filter.Status {
			continue
		}
		result = append(result, *lr)
	}
	return result, len(result), nil
}

func (r *memLeaveRepo) HasOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, lr := range r.records {
		if lr.EmployeeID != employeeID {
			continue
		}
		if lr.Status == leave.LeaveStatusRejected {
			continue
		}
		if !lr.StartDate.After(end) && !lr.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLeaveRepo) UpdateStatus(_ context.Context, lr *leave.LeaveRequest) error {
	if _, ok := r.records[lr.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	stored := *lr
	r.records[lr.ID] = &stored
	return nil
}

func newTestService(repo leave.LeaveRepository) leave.LeaveService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, time.UTC, logger)
}

func TestSubmit_CountsWorkingDaysOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newMemLeaveRepo())

	// Friday June 13 through Tuesday June 17 2025 spans a weekend:
	// three working days.
	resp, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Type:       leave.LeaveTypeAnnual,
		StartDate:  "2025-06-13",
		EndDate:    "2025-06-17",
		Reason:     "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, leave.LeaveStatusPending, resp.Status)
}

func TestSubmit_RejectsOverlap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newMemLeaveRepo())

	_, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Type:       leave.LeaveTypeAnnual,
		StartDate:  "2025-06-10",
		EndDate:    "2025-06-12",
		Reason:     "first request",
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Type:       leave.LeaveTypeSick,
		StartDate:  "2025-06-12",
		EndDate:    "2025-06-13",
		Reason:     "overlapping request",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveOverlap)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newMemLeaveRepo())

	tests := []struct {
		name string
		req  leave.SubmitLeaveRequest
	}{
		{"unknown type", leave.SubmitLeaveRequest{EmployeeID: "emp-1", Type: "sabbatical", StartDate: "2025-06-10", EndDate: "2025-06-11", Reason: "x"}},
		{"bad date format", leave.SubmitLeaveRequest{EmployeeID: "emp-1", Type: leave.LeaveTypeAnnual, StartDate: "10/06/2025", EndDate: "2025-06-11", Reason: "x"}},
		{"end before start", leave.SubmitLeaveRequest{EmployeeID: "emp-1", Type: leave.LeaveTypeAnnual, StartDate: "2025-06-11", EndDate: "2025-06-10", Reason: "x"}},
		{"missing reason", leave.SubmitLeaveRequest{EmployeeID: "emp-1", Type: leave.LeaveTypeAnnual, StartDate: "2025-06-10", EndDate: "2025-06-11"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Submit(ctx, tt.req)
			assert.Error(t, err)
		})
	}
}

func TestReview_OneWayTransition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemLeaveRepo()
	svc := newTestService(repo)

	submitted, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Type:       leave.LeaveTypeAnnual,
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-03",
		Reason:     "vacation",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, leave.ReviewLeaveRequest{ID: submitted.ID, ReviewerID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "admin-1", *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	// A reviewed request cannot flip.
	_, err = svc.Reject(ctx, leave.ReviewLeaveRequest{ID: submitted.ID, ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyReviewed)
	_, err = svc.Approve(ctx, leave.ReviewLeaveRequest{ID: submitted.ID, ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyReviewed)
}

func TestReview_UnknownID(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemLeaveRepo())

	_, err := svc.Approve(context.Background(), leave.ReviewLeaveRequest{ID: "missing", ReviewerID: "admin-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}
