package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/employee"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/domain/payroll"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/period"
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

// HandleError maps service errors onto HTTP statuses. Anything that is
// not a known domain error is treated as internal and kept out of the
// response body.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationFailed(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())

	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, payroll.ErrPayrollNotFound),
		errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, leave.ErrLeaveOverlap),
		errors.Is(err, leave.ErrLeaveAlreadyReviewed):
		Conflict(w, err.Error())

	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrOutsideAllowedRadius),
		errors.Is(err, auth.ErrEmailNotRegistered),
		errors.Is(err, employee.ErrNoBaseSalary),
		errors.Is(err, payroll.ErrNoActiveEmployees),
		errors.Is(err, period.ErrInvalidMonth):
		BadRequest(w, err.Error())

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w)
	}
}
