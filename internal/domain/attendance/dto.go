package attendance

import (
	"mime/multipart"
	"time"

	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

// CheckInRequest carries the multipart payload of a check-in: the device
// coordinates plus the selfie proof photo.
type CheckInRequest struct {
	EmployeeID string
	Latitude   float64
	Longitude  float64
	Proof      multipart.File
	ProofMeta  *multipart.FileHeader
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "coordinates are out of range"})
	}
	if r.Proof == nil || r.ProofMeta == nil {
		errs = append(errs, validator.ValidationError{Field: "proof", Message: "selfie photo is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string
	Latitude   float64
	Longitude  float64
	Proof      multipart.File
	ProofMeta  *multipart.FileHeader
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "coordinates are out of range"})
	}
	if r.Proof == nil || r.ProofMeta == nil {
		errs = append(errs, validator.ValidationError{Field: "proof", Message: "selfie photo is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows the admin listing. Zero values mean "no filter".
type ListFilter struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
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

type AttendanceResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	EmployeeName      *string    `json:"employee_name,omitempty"`
	Date              string     `json:"date"`
	CheckIn           time.Time  `json:"check_in"`
	CheckOut          *time.Time `json:"check_out,omitempty"`
	IsLate            bool       `json:"is_late"`
	WorkingHours      *float64   `json:"working_hours,omitempty"`
	CheckInLatitude   float64    `json:"check_in_latitude"`
	CheckInLongitude  float64    `json:"check_in_longitude"`
	CheckInProofURL   *string    `json:"check_in_proof_url,omitempty"`
	CheckOutLatitude  *float64   `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64   `json:"check_out_longitude,omitempty"`
	CheckOutProofURL  *string    `json:"check_out_proof_url,omitempty"`
}

// MonthlySummaryResponse is the per-employee aggregate for one month,
// the same rollup the payroll generator consumes.
type MonthlySummaryResponse struct {
	EmployeeID        string  `json:"employee_id"`
	Month             int     `json:"month"`
	Year              int     `json:"year"`
	PresentDays       int     `json:"present_days"`
	LateDays          int     `json:"late_days"`
	TotalWorkingHours float64 `json:"total_working_hours"`
	WorkingDays       int     `json:"working_days"`
}
