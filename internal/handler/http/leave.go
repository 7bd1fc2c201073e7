package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/handler/http/middleware"
	"github.com/campus-erp/leave-backend-go/internal/handler/http/response"
	leaveservice "github.com/campus-erp/leave-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Breakup(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	RecommendRequest(w http.ResponseWriter, r *http.Request)

	CreateAdjustment(w http.ResponseWriter, r *http.Request)
	ListMyAdjustments(w http.ResponseWriter, r *http.Request)
	ListPendingAdjustments(w http.ResponseWriter, r *http.Request)
	ApproveAdjustment(w http.ResponseWriter, r *http.Request)
	RejectAdjustment(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.Service
}

func NewLeaveHandler(leaveService *leaveservice.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Breakup implements LeaveHandler. Malformed dates come back as a zero
// breakup, not an error, so the UI can render as the user types.
func (l *LeaveHandlerImpl) Breakup(w http.ResponseWriter, r *http.Request) {
	var req leave.BreakupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Breakup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	breakup, err := l.leaveService.Requests.Breakup(r.Context(), middleware.EmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakup)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	summaries, err := l.leaveService.Balances.Summary(r.Context(), middleware.EmployeeID(r), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

// GetHistory implements LeaveHandler. Returns the taken records charged in
// the financial year containing today.
func (l *LeaveHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := l.leaveService.Balances.History(r.Context(), middleware.EmployeeID(r), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID := middleware.EmployeeID(r)
	req.EmployeeID = employeeID
	req.RequesterID = employeeID

	created, err := l.leaveService.Requests.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.ID = chi.URLParam(r, "id")
	req.RequesterID = middleware.EmployeeID(r)

	if err := l.leaveService.Requests.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", nil)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	if err := l.leaveService.Requests.Cancel(r.Context(), requestID, middleware.EmployeeID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", nil)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := l.leaveService.Requests.Get(r.Context(), requestID, middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// ListMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.RequestFilter{
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if v := r.URL.Query().Get("leave_type_id"); v != "" {
		filter.LeaveTypeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	list, err := l.leaveService.Requests.List(r.Context(), middleware.EmployeeID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// ListPendingRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	pending, err := l.leaveService.Requests.ListPending(r.Context(), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	comment := decideComment(r)

	if err := l.leaveService.Requests.Approve(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r), comment); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", nil)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	comment := decideComment(r)

	if err := l.leaveService.Requests.Reject(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r), comment); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", nil)
}

// RecommendRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RecommendRequest(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.Requests.Recommend(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request forwarded", nil)
}

// CreateAdjustment implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAdjustment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.RequestedBy = middleware.EmployeeID(r)

	adj, err := l.leaveService.Adjustments.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment request submitted successfully", adj)
}

// ListMyAdjustments implements LeaveHandler.
func (l *LeaveHandlerImpl) ListMyAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := l.leaveService.Adjustments.ListMine(r.Context(), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, adjustments)
}

// ListPendingAdjustments implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPendingAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := l.leaveService.Adjustments.ListPending(r.Context(), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, adjustments)
}

// ApproveAdjustment implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveAdjustment(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.Adjustments.Approve(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment approved successfully", nil)
}

// RejectAdjustment implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectAdjustment(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.Adjustments.Reject(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment rejected", nil)
}

// decideComment reads the optional comment body on approve/reject. An empty or
// absent body is fine.
func decideComment(r *http.Request) *string {
	var body struct {
		Comment *string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil
	}
	return body.Comment
}
