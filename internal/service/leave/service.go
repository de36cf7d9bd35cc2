package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/period"
)

type service struct {
	leaveRepo leave.LeaveRepository
	location  *time.Location
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(leaveRepo leave.LeaveRepository, location *time.Location, logger *slog.Logger) leave.LeaveService {
	return &service{
		leaveRepo: leaveRepo,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.location)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.location)

	overlap, err := s.leaveRepo.HasOverlap(ctx, req.EmployeeID, start, end)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrLeaveOverlap
	}

	lr := &leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  period.WorkingDaysBetween(start, end),
		Reason:     req.Reason,
		Status:     leave.LeaveStatusPending,
	}

	if err := s.leaveRepo.Create(ctx, lr); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.logger.Info("leave request submitted",
		"leave_id", lr.ID, "employee_id", lr.EmployeeID, "type", lr.Type, "total_days", lr.TotalDays)
	return mapToResponse(lr), nil
}

func (s *service) GetMyLeaves(ctx context.Context, employeeID string, filter leave.ListFilter) ([]leave.LeaveResponse, int, error) {
	filter.EmployeeID = employeeID
	return s.List(ctx, filter)
}

func (s *service) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveResponse, int, error) {
	records, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapToResponse(&records[i]))
	}
	return responses, total, nil
}

func (s *service) Approve(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return s.review(ctx, req, leave.LeaveStatusApproved)
}

func (s *service) Reject(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return s.review(ctx, req, leave.LeaveStatusRejected)
}

// review is a one-way transition out of pending. A request that was
// already approved or rejected stays as it is.
func (s *service) review(ctx context.Context, req leave.ReviewLeaveRequest, status leave.LeaveStatus) (leave.LeaveResponse, error) {
	lr, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if lr.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyReviewed
	}

	now := s.now()
	lr.Status = status
	lr.ReviewedBy = &req.ReviewerID
	lr.ReviewedAt = &now
	lr.ReviewNote = req.Note

	if err := s.leaveRepo.UpdateStatus(ctx, lr); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	s.logger.Info("leave request reviewed", "leave_id", lr.ID, "status", lr.Status)
	return mapToResponse(lr), nil
}

func mapToResponse(lr *leave.LeaveRequest) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		Type:         lr.Type,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		TotalDays:    lr.TotalDays,
		Reason:       lr.Reason,
		Status:       lr.Status,
		ReviewedBy:   lr.ReviewedBy,
		ReviewedAt:   lr.ReviewedAt,
		ReviewNote:   lr.ReviewNote,
		CreatedAt:    lr.CreatedAt,
	}
}
