package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

const maxProofSize = 10 << 20 // 10 MiB

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandler struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandler{attendanceService: attendanceService}
}

func (h *attendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	proof, meta, err := r.FormFile("proof")
	if err != nil {
		response.BadRequest(w, "selfie photo is required")
		return
	}
	defer proof.Close()

	resp, err := h.attendanceService.CheckIn(r.Context(), attendance.CheckInRequest{
		EmployeeID: employeeID,
		Latitude:   lat,
		Longitude:  lon,
		Proof:      proof,
		ProofMeta:  meta,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, resp)
}

func (h *attendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	proof, meta, err := r.FormFile("proof")
	if err != nil {
		response.BadRequest(w, "selfie photo is required")
		return
	}
	defer proof.Close()

	resp, err := h.attendanceService.CheckOut(r.Context(), attendance.CheckOutRequest{
		EmployeeID: employeeID,
		Latitude:   lat,
		Longitude:  lon,
		Proof:      proof,
		ProofMeta:  meta,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandler) Me(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	filter := parseAttendanceFilter(r)
	records, total, err := h.attendanceService.GetMyAttendance(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

func (h *attendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseAttendanceFilter(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

// Summary returns the monthly rollup. Employees may only query their own;
// admins may pass any employee_id.
func (h *attendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if middleware.Role(r) != "admin" || employeeID == "" {
		employeeID = middleware.EmployeeID(r)
	}
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be a number")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number")
		return
	}

	summary, err := h.attendanceService.MonthlySummary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func parseCoordinates(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		response.BadRequest(w, "latitude must be a number")
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		response.BadRequest(w, "longitude must be a number")
		return 0, 0, false
	}
	return lat, lon, true
}

func parseAttendanceFilter(r *http.Request) attendance.ListFilter {
	q := r.URL.Query()

	filter := attendance.ListFilter{}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = t
		}
	}
	if v := q.Get("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = t
		}
	}
	filter.Normalize()
	return filter
}
