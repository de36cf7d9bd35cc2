package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendly-backend-go/internal/domain/payroll"
	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	MarkAsPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandler struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandler{payrollService: payrollService}
}

func (h *payrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Employees can only read their own payslips.
	if middleware.Role(r) != "admin" && record.EmployeeID != middleware.EmployeeID(r) {
		response.NotFound(w, payroll.ErrPayrollNotFound.Error())
		return
	}
	response.Success(w, record)
}

func (h *payrollHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parsePayrollFilter(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	records, total, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

func (h *payrollHandler) Me(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	filter := parsePayrollFilter(r)
	records, total, err := h.payrollService.GetMyPayrolls(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

func (h *payrollHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.payrollService.MarkAsPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

func parsePayrollFilter(r *http.Request) payroll.ListFilter {
	q := r.URL.Query()

	filter := payroll.ListFilter{}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Month, _ = strconv.Atoi(q.Get("month"))
	filter.Year, _ = strconv.Atoi(q.Get("year"))
	if v := q.Get("status"); v != "" {
		filter.Status = payroll.PayrollStatus(v)
	}
	filter.Normalize()
	return filter
}
