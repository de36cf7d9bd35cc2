package leave

import (
	"time"

	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID string    `json:"-"`
	Type       LeaveType `json:"type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Reason     string    `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidLeaveType(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of annual, sick, unpaid"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLeaveRequest struct {
	ID         string  `json:"-"`
	ReviewerID string  `json:"-"`
	Note       *string `json:"note,omitempty"`
}

type ListFilter struct {
	EmployeeID string
	Status     LeaveStatus
	Page       int
	Limit      int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type LeaveResponse struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName *string     `json:"employee_name,omitempty"`
	Type         LeaveType   `json:"type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	TotalDays    int         `json:"total_days"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	ReviewedBy   *string     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time  `json:"reviewed_at,omitempty"`
	ReviewNote   *string     `json:"review_note,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
