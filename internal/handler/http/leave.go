package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandler struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandler{leaveService: leaveService}
}

func (h *leaveHandler) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	req.EmployeeID = employeeID

	created, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *leaveHandler) Me(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Forbidden(w, "account has no employee profile")
		return
	}

	filter := parseLeaveFilter(r)
	records, total, err := h.leaveService.GetMyLeaves(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

func (h *leaveHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseLeaveFilter(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	records, total, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

func (h *leaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.leaveService.Approve)
}

func (h *leaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.leaveService.Reject)
}

func (h *leaveHandler) review(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error),
) {
	var req leave.ReviewLeaveRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
	}
	req.ID = chi.URLParam(r, "id")
	req.ReviewerID = middleware.UserID(r)

	reviewed, err := fn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, reviewed)
}

func parseLeaveFilter(r *http.Request) leave.ListFilter {
	q := r.URL.Query()

	filter := leave.ListFilter{}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("status"); v != "" {
		filter.Status = leave.LeaveStatus(v)
	}
	filter.Normalize()
	return filter
}
