package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/campus-erp/leave-backend-go/internal/pkg/fiscal"
	"github.com/campus-erp/leave-backend-go/internal/pkg/validator"
)

// RequestService drives the leave request lifecycle: submitted requests may be
// edited or cancelled by their requester, and approved or rejected by the
// resolved reporting officer within the current financial year.
type RequestService struct {
	tx          database.Transactor
	requests    leave.LeaveRequestRepository
	taken       leave.LeaveTakenRepository
	assignments leave.LeaveAssignmentRepository
	calculator  *DayCalculator
	resolver    *OfficerResolver
}

func NewRequestService(
	tx database.Transactor,
	requestRepo leave.LeaveRequestRepository,
	takenRepo leave.LeaveTakenRepository,
	assignmentRepo leave.LeaveAssignmentRepository,
	calculator *DayCalculator,
	resolver *OfficerResolver,
) *RequestService {
	return &RequestService{
		tx:          tx,
		requests:    requestRepo,
		taken:       takenRepo,
		assignments: assignmentRepo,
		calculator:  calculator,
		resolver:    resolver,
	}
}

// Breakup exposes the day calculator for the pre-submission confirmation step.
func (s *RequestService) Breakup(ctx context.Context, employeeID string, req leave.BreakupRequest) (leave.BreakupResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BreakupResponse{}, err
	}

	breakup, err := s.calculator.Breakup(ctx, employeeID, req)
	if err != nil {
		return leave.BreakupResponse{}, err
	}

	response := leave.BreakupResponse{
		Days:         breakup.Days,
		CalendarDays: breakup.CalendarDays,
	}
	for _, d := range breakup.Dates {
		response.Dates = append(response.Dates, leave.BreakupDayResponse{
			Date:    d.Date.Format("2006-01-02"),
			Weekday: d.Weekday,
		})
	}

	return response, nil
}

// Create validates, recomputes the day count server-side, resolves the
// reporting officer, and stores the request as submitted. The client-supplied
// count is never trusted.
func (s *RequestService) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	breakup, err := s.calculator.Breakup(ctx, req.EmployeeID, leave.BreakupRequest{
		LeaveTypeID: req.LeaveTypeID,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		ShortLeave:  req.ShortLeave,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if breakup.Days <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrZeroDayRequest
	}

	officerID, err := s.resolver.Resolve(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	fromDate, _ := validator.IsValidDate(req.FromDate)
	toDate, _ := validator.IsValidDate(req.ToDate)

	request := leave.LeaveRequest{
		RequesterID:        req.RequesterID,
		EmployeeID:         req.EmployeeID,
		LeaveTypeID:        req.LeaveTypeID,
		FromDate:           fromDate,
		ToDate:             toDate,
		StationFrom:        parseOptionalDate(req.StationFrom),
		StationTo:          parseOptionalDate(req.StationTo),
		ShortLeave:         req.ShortLeave,
		ShortLeaveTime:     req.ShortLeaveTime,
		Days:               breakup.Days,
		CalendarDays:       breakup.CalendarDays,
		Reason:             req.Reason,
		ContactInfo:        req.ContactInfo,
		Status:             leave.RequestStatusSubmitted,
		ReportingOfficerID: officerID,
		Recommender1:       req.Recommender1,
		Recommender2:       req.Recommender2,
		Recommender3:       req.Recommender3,
		CreatedBy:          req.RequesterID,
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	stored, err := s.requests.GetByID(ctx, created.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to reload leave request: %w", err)
	}

	return toRequestResponse(stored), nil
}

// Update edits a request while it is still submitted. Date or type changes
// re-derive the day count.
func (s *RequestService) Update(ctx context.Context, req leave.UpdateLeaveRequestRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if current.RequesterID != req.RequesterID {
		return leave.ErrNotRequestOwner
	}
	if current.Status != leave.RequestStatusSubmitted {
		return leave.ErrLeaveAlreadyProcessed
	}

	input := leave.UpdateLeaveRequestInput{
		ID:           req.ID,
		RequesterID:  req.RequesterID,
		LeaveTypeID:  req.LeaveTypeID,
		StationFrom:  parseOptionalDate(req.StationFrom),
		StationTo:    parseOptionalDate(req.StationTo),
		Reason:       req.Reason,
		ContactInfo:  req.ContactInfo,
		Recommender1: req.Recommender1,
		Recommender2: req.Recommender2,
		Recommender3: req.Recommender3,
		UpdatedBy:    req.RequesterID,
	}

	if req.FromDate != nil {
		d, _ := validator.IsValidDate(*req.FromDate)
		input.FromDate = &d
	}
	if req.ToDate != nil {
		d, _ := validator.IsValidDate(*req.ToDate)
		input.ToDate = &d
	}

	if req.FromDate != nil || req.ToDate != nil || req.LeaveTypeID != nil {
		effectiveFrom := current.FromDate
		if input.FromDate != nil {
			effectiveFrom = *input.FromDate
		}
		effectiveTo := current.ToDate
		if input.ToDate != nil {
			effectiveTo = *input.ToDate
		}
		effectiveType := current.LeaveTypeID
		if req.LeaveTypeID != nil {
			effectiveType = *req.LeaveTypeID
		}

		breakup, err := s.calculator.Breakup(ctx, current.EmployeeID, leave.BreakupRequest{
			LeaveTypeID: effectiveType,
			FromDate:    effectiveFrom.Format("2006-01-02"),
			ToDate:      effectiveTo.Format("2006-01-02"),
			ShortLeave:  current.ShortLeave,
		})
		if err != nil {
			return err
		}
		if breakup.Days <= 0 {
			return leave.ErrZeroDayRequest
		}

		input.Days = &breakup.Days
		input.CalendarDays = &breakup.CalendarDays
	}

	ok, err := s.requests.UpdateSubmitted(ctx, input)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race against an approver.
		return leave.ErrLeaveAlreadyProcessed
	}

	return nil
}

// Cancel withdraws a still-submitted request. Approved requests go through the
// cancellation sub-workflow instead.
func (s *RequestService) Cancel(ctx context.Context, requestID, requesterID string) error {
	ok, err := s.requests.CancelSubmitted(ctx, requestID, requesterID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.RequesterID != requesterID {
		return leave.ErrNotRequestOwner
	}
	return leave.ErrLeaveAlreadyProcessed
}

// Approve transitions a submitted request to approved and charges the days:
// the taken record and its day rows are written and availed is incremented,
// all in one transaction with the status flip.
func (s *RequestService) Approve(ctx context.Context, requestID, officerID string, comment *string) error {
	from, to := fiscal.Window(time.Now())

	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, err := s.decide(txCtx, requestID, officerID, leave.RequestStatusApproved, comment, from, to)
		if err != nil {
			return err
		}

		breakup, err := s.calculator.Breakup(txCtx, request.EmployeeID, leave.BreakupRequest{
			LeaveTypeID: request.LeaveTypeID,
			FromDate:    request.FromDate.Format("2006-01-02"),
			ToDate:      request.ToDate.Format("2006-01-02"),
			ShortLeave:  request.ShortLeave,
		})
		if err != nil {
			return err
		}

		dates := make([]time.Time, 0, len(breakup.Dates))
		for _, d := range breakup.Dates {
			dates = append(dates, d.Date)
		}

		// Charge what the calendar says today, not what was computed at
		// submission; the day rows and the charged total must agree.
		year := fiscal.Year(request.FromDate)
		_, err = s.taken.Create(txCtx, leave.LeaveTaken{
			RequestID:   request.ID,
			EmployeeID:  request.EmployeeID,
			LeaveTypeID: request.LeaveTypeID,
			Year:        year,
			Days:        breakup.Days,
		}, dates)
		if err != nil {
			return err
		}

		return s.charge(txCtx, request.EmployeeID, request.LeaveTypeID, year, breakup.Days)
	})
}

// Reject transitions a submitted request to rejected. No balance effect.
func (s *RequestService) Reject(ctx context.Context, requestID, officerID string, comment *string) error {
	from, to := fiscal.Window(time.Now())

	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		_, err := s.decide(txCtx, requestID, officerID, leave.RequestStatusRejected, comment, from, to)
		return err
	})
}

func (s *RequestService) decide(ctx context.Context, requestID, officerID string, status leave.RequestStatus, comment *string, from, to time.Time) (leave.LeaveRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.RequestStatusSubmitted {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}
	if request.ReportingOfficerID != officerID {
		return leave.LeaveRequest{}, leave.ErrNotReportingOfficer
	}
	if request.FromDate.Before(from) || request.FromDate.After(to) {
		return leave.LeaveRequest{}, leave.ErrOutsideFinancialYear
	}

	ok, err := s.requests.Decide(ctx, requestID, officerID, status, comment, from, to)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	return request, nil
}

// charge increments availed, creating the assignment row first when the leave
// type has no stored quota for the year.
func (s *RequestService) charge(ctx context.Context, employeeID, leaveTypeID string, year int, days float64) error {
	err := s.assignments.ApplyDelta(ctx, employeeID, leaveTypeID, year, days, 0)
	if !errors.Is(err, leave.ErrAssignmentNotFound) {
		return err
	}

	if err := s.assignments.AddAssigned(ctx, employeeID, leaveTypeID, year, 0); err != nil {
		return err
	}
	return s.assignments.ApplyDelta(ctx, employeeID, leaveTypeID, year, days, 0)
}

// Recommend records an informational forward by a listed recommender without
// changing the request's status.
func (s *RequestService) Recommend(ctx context.Context, requestID, recommenderID string) error {
	ok, err := s.requests.Recommend(ctx, requestID, recommenderID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != leave.RequestStatusSubmitted {
		return leave.ErrLeaveAlreadyProcessed
	}
	for _, id := range request.Recommenders() {
		if id == recommenderID {
			return leave.ErrLeaveAlreadyProcessed
		}
	}
	return leave.ErrNotRecommender
}

// Get returns a request to a party involved in it: the subject employee, the
// requester, the reporting officer, or a listed recommender.
func (s *RequestService) Get(ctx context.Context, requestID, actorID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	allowed := actorID == request.EmployeeID ||
		actorID == request.RequesterID ||
		actorID == request.ReportingOfficerID
	for _, id := range request.Recommenders() {
		if id == actorID {
			allowed = true
		}
	}
	if !allowed {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}

	return toRequestResponse(request), nil
}

// List returns an employee's own request history.
func (s *RequestService) List(ctx context.Context, employeeID string, filter leave.RequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.requests.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toRequestResponse(request))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// ListPending returns the submitted requests awaiting the officer within the
// current financial year.
func (s *RequestService) ListPending(ctx context.Context, officerID string) ([]leave.LeaveRequestResponse, error) {
	from, to := fiscal.Window(time.Now())

	requests, err := s.requests.ListPendingForOfficer(ctx, officerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toRequestResponse(request))
	}

	return responses, nil
}

func toRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	response := leave.LeaveRequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		LeaveTypeID:     request.LeaveTypeID,
		FromDate:        request.FromDate,
		ToDate:          request.ToDate,
		ShortLeave:      request.ShortLeave,
		ShortLeaveTime:  request.ShortLeaveTime,
		Days:            request.Days,
		CalendarDays:    request.CalendarDays,
		Reason:          request.Reason,
		Status:          string(request.Status),
		ReportingTo:     request.ReportingOfficerID,
		RecommendedBy:   request.RecommendedBy,
		ResponderID:     request.ResponderID,
		RespondedAt:     request.RespondedAt,
		ResponseComment: request.ResponseComment,
		CreatedAt:       request.CreatedAt,
	}
	if request.EmployeeName != nil {
		response.EmployeeName = *request.EmployeeName
	}
	if request.LeaveTypeName != nil {
		response.LeaveTypeName = *request.LeaveTypeName
	}
	return response
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &d
}
