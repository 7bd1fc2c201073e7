package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
)

// In-memory repository fakes reproducing the conditional-update semantics of
// the SQL layer, so the services can be exercised without a database.

type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeLeaveTypeRepo) ListMonthlyAccrual(_ context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if lt.AccrualMethod != nil && *lt.AccrualMethod == "monthly" {
			out = append(out, lt)
		}
	}
	return out, nil
}

type fakeRuleRepo struct {
	rules []leave.LeaveTypeRule
}

func (f *fakeRuleRepo) GetByTypeAndNature(_ context.Context, leaveTypeID, nature string) (leave.LeaveTypeRule, error) {
	for _, r := range f.rules {
		if r.LeaveTypeID == leaveTypeID && r.Nature != nil && *r.Nature == nature {
			return r, nil
		}
	}
	return leave.LeaveTypeRule{}, leave.ErrRuleNotFound
}

func (f *fakeRuleRepo) GetByType(_ context.Context, leaveTypeID string) (leave.LeaveTypeRule, error) {
	for _, r := range f.rules {
		if r.LeaveTypeID == leaveTypeID && r.Nature == nil {
			return r, nil
		}
	}
	return leave.LeaveTypeRule{}, leave.ErrRuleNotFound
}

type fakeEmployeeRepo struct {
	employees   map[string]employee.Employee
	departments map[string]employee.Department
	offices     map[string]employee.ControllingOffice
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Status == employee.StatusActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetDepartment(_ context.Context, id string) (employee.Department, error) {
	dept, ok := f.departments[id]
	if !ok {
		return employee.Department{}, employee.ErrDepartmentNotFound
	}
	return dept, nil
}

func (f *fakeEmployeeRepo) GetControllingOffice(_ context.Context, id string) (employee.ControllingOffice, error) {
	office, ok := f.offices[id]
	if !ok {
		return employee.ControllingOffice{}, employee.ErrControllingOfficeNotFound
	}
	return office, nil
}

type fakeHolidayRepo struct {
	calendars map[string]calendar.HolidayCalendar // key locationID|year
	entries   map[string][]calendar.HolidayEntry  // key calendarID
}

func (f *fakeHolidayRepo) GetCalendar(_ context.Context, locationID string, year int) (calendar.HolidayCalendar, error) {
	cal, ok := f.calendars[fmt.Sprintf("%s|%d", locationID, year)]
	if !ok {
		return calendar.HolidayCalendar{}, calendar.ErrCalendarNotFound
	}
	return cal, nil
}

func (f *fakeHolidayRepo) GetEntries(_ context.Context, calendarID string) ([]calendar.HolidayEntry, error) {
	return f.entries[calendarID], nil
}

func (f *fakeHolidayRepo) ListLocations(_ context.Context) ([]calendar.Location, error) {
	return nil, nil
}

type fakeWeeklyOffRepo struct {
	offs map[string][]time.Weekday
}

func (f *fakeWeeklyOffRepo) GetByLocation(_ context.Context, locationID string) ([]time.Weekday, error) {
	return f.offs[locationID], nil
}

type fakeRequestRepo struct {
	requests map[string]*leave.LeaveRequest
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	stored := request
	f.requests[request.ID] = &stored
	return request, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *req, nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		if filter.LeaveTypeID != nil && req.LeaveTypeID != *filter.LeaveTypeID {
			continue
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ListPendingForOfficer(_ context.Context, officerID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.ReportingOfficerID == officerID && req.Status == leave.RequestStatusSubmitted &&
			!req.FromDate.Before(from) && !req.FromDate.After(to) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateSubmitted(_ context.Context, upd leave.UpdateLeaveRequestInput) (bool, error) {
	req, ok := f.requests[upd.ID]
	if !ok || req.RequesterID != upd.RequesterID || req.Status != leave.RequestStatusSubmitted {
		return false, nil
	}
	if upd.LeaveTypeID != nil {
		req.LeaveTypeID = *upd.LeaveTypeID
	}
	if upd.FromDate != nil {
		req.FromDate = *upd.FromDate
	}
	if upd.ToDate != nil {
		req.ToDate = *upd.ToDate
	}
	if upd.Days != nil {
		req.Days = *upd.Days
	}
	if upd.CalendarDays != nil {
		req.CalendarDays = *upd.CalendarDays
	}
	if upd.Reason != nil {
		req.Reason = *upd.Reason
	}
	req.UpdatedBy = &upd.UpdatedBy
	req.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRequestRepo) CancelSubmitted(_ context.Context, id, requesterID string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.RequesterID != requesterID || req.Status != leave.RequestStatusSubmitted {
		return false, nil
	}
	req.Status = leave.RequestStatusCancelled
	return true, nil
}

func (f *fakeRequestRepo) Decide(_ context.Context, id, officerID string, status leave.RequestStatus, comment *string, from, to time.Time) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.ReportingOfficerID != officerID || req.Status != leave.RequestStatusSubmitted {
		return false, nil
	}
	if req.FromDate.Before(from) || req.FromDate.After(to) {
		return false, nil
	}
	now := time.Now()
	req.Status = status
	req.ResponderID = &officerID
	req.RespondedAt = &now
	req.ResponseComment = comment
	return true, nil
}

func (f *fakeRequestRepo) Recommend(_ context.Context, id, recommenderID string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != leave.RequestStatusSubmitted {
		return false, nil
	}
	for _, r := range req.Recommenders() {
		if r == recommenderID {
			now := time.Now()
			req.RecommendedBy = &recommenderID
			req.RecommendedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) MarkApprovedCancelled(_ context.Context, id string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != leave.RequestStatusApproved {
		return false, nil
	}
	req.Status = leave.RequestStatusCancelled
	return true, nil
}

func (f *fakeRequestRepo) SumSubmittedDays(_ context.Context, employeeID, leaveTypeID string, from, to time.Time) (float64, error) {
	var sum float64
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.LeaveTypeID == leaveTypeID &&
			req.Status == leave.RequestStatusSubmitted &&
			!req.FromDate.Before(from) && !req.FromDate.After(to) {
			sum += req.Days
		}
	}
	return sum, nil
}

func (f *fakeRequestRepo) LastApproverID(_ context.Context, employeeID string) (string, error) {
	var latest *leave.LeaveRequest
	for _, req := range f.requests {
		if req.EmployeeID != employeeID || req.Status != leave.RequestStatusApproved || req.ResponderID == nil {
			continue
		}
		if latest == nil || (req.RespondedAt != nil && latest.RespondedAt != nil && req.RespondedAt.After(*latest.RespondedAt)) {
			latest = req
		}
	}
	if latest == nil {
		return "", nil
	}
	return *latest.ResponderID, nil
}

type fakeTakenRepo struct {
	records map[string]*leave.LeaveTaken
	days    map[string][]time.Time
	nextID  int
}

func newFakeTakenRepo() *fakeTakenRepo {
	return &fakeTakenRepo{
		records: make(map[string]*leave.LeaveTaken),
		days:    make(map[string][]time.Time),
	}
}

func (f *fakeTakenRepo) Create(_ context.Context, taken leave.LeaveTaken, dates []time.Time) (leave.LeaveTaken, error) {
	f.nextID++
	taken.ID = fmt.Sprintf("taken-%d", f.nextID)
	stored := taken
	f.records[taken.ID] = &stored
	f.days[taken.ID] = append([]time.Time(nil), dates...)
	return taken, nil
}

func (f *fakeTakenRepo) GetByID(_ context.Context, id string) (leave.LeaveTaken, error) {
	taken, ok := f.records[id]
	if !ok {
		return leave.LeaveTaken{}, leave.ErrTakenRecordNotFound
	}
	return *taken, nil
}

func (f *fakeTakenRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveTaken, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeTakenRepo) UpdateDays(_ context.Context, id string, days float64) error {
	taken, ok := f.records[id]
	if !ok {
		return leave.ErrTakenRecordNotFound
	}
	taken.Days = days
	return nil
}

func (f *fakeTakenRepo) MarkCancelled(_ context.Context, id string) error {
	taken, ok := f.records[id]
	if !ok {
		return leave.ErrTakenRecordNotFound
	}
	taken.Cancelled = true
	return nil
}

func (f *fakeTakenRepo) DeleteDayRows(_ context.Context, takenID string) error {
	delete(f.days, takenID)
	return nil
}

func (f *fakeTakenRepo) ListByEmployee(_ context.Context, employeeID string, year int) ([]leave.LeaveTaken, error) {
	var out []leave.LeaveTaken
	for _, taken := range f.records {
		if taken.EmployeeID == employeeID && taken.Year == year {
			out = append(out, *taken)
		}
	}
	return out, nil
}

type fakeAdjustmentRepo struct {
	adjustments map[string]*leave.LeaveAdjustment
	taken       *fakeTakenRepo
	requests    *fakeRequestRepo
	nextID      int
}

func newFakeAdjustmentRepo(taken *fakeTakenRepo, requests *fakeRequestRepo) *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{
		adjustments: make(map[string]*leave.LeaveAdjustment),
		taken:       taken,
		requests:    requests,
	}
}

func (f *fakeAdjustmentRepo) Create(_ context.Context, adj leave.LeaveAdjustment) (leave.LeaveAdjustment, error) {
	f.nextID++
	adj.ID = fmt.Sprintf("adj-%d", f.nextID)
	adj.RequestedAt = time.Now()
	stored := adj
	f.adjustments[adj.ID] = &stored
	return adj, nil
}

func (f *fakeAdjustmentRepo) GetByID(_ context.Context, id string) (leave.LeaveAdjustment, error) {
	adj, ok := f.adjustments[id]
	if !ok {
		return leave.LeaveAdjustment{}, leave.ErrAdjustmentNotFound
	}
	return *adj, nil
}

func (f *fakeAdjustmentRepo) Decide(_ context.Context, id, responderID string, status leave.AdjustmentStatus) (bool, error) {
	adj, ok := f.adjustments[id]
	if !ok || adj.Status != leave.AdjustmentStatusSubmitted {
		return false, nil
	}
	now := time.Now()
	adj.Status = status
	adj.ResponderID = &responderID
	adj.RespondedAt = &now
	return true, nil
}

func (f *fakeAdjustmentRepo) ListByRequester(_ context.Context, requesterID string) ([]leave.LeaveAdjustment, error) {
	var out []leave.LeaveAdjustment
	for _, adj := range f.adjustments {
		if adj.RequestedBy == requesterID {
			out = append(out, *adj)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) ListPendingForOfficer(_ context.Context, officerID string) ([]leave.LeaveAdjustment, error) {
	var out []leave.LeaveAdjustment
	for _, adj := range f.adjustments {
		if adj.Status != leave.AdjustmentStatusSubmitted {
			continue
		}
		taken, ok := f.taken.records[adj.TakenID]
		if !ok {
			continue
		}
		req, ok := f.requests.requests[taken.RequestID]
		if ok && req.ReportingOfficerID == officerID {
			out = append(out, *adj)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	rows        map[string]*leave.LeaveAssignment // key employeeID|leaveTypeID|year
	accrualRuns map[string]bool                   // key year|month
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		rows:        make(map[string]*leave.LeaveAssignment),
		accrualRuns: make(map[string]bool),
	}
}

func assignmentKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, leaveTypeID, year)
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a leave.LeaveAssignment) (leave.LeaveAssignment, error) {
	a.ID = assignmentKey(a.EmployeeID, a.LeaveTypeID, a.Year)
	stored := a
	f.rows[a.ID] = &stored
	return a, nil
}

func (f *fakeAssignmentRepo) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveAssignment, error) {
	row, ok := f.rows[assignmentKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leave.LeaveAssignment{}, leave.ErrAssignmentNotFound
	}
	return *row, nil
}

func (f *fakeAssignmentRepo) ListByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveAssignment, error) {
	var out []leave.LeaveAssignment
	for _, row := range f.rows {
		if row.EmployeeID == employeeID && row.Year == year {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ApplyDelta(_ context.Context, employeeID, leaveTypeID string, year int, availedDelta, adjustedDelta float64) error {
	row, ok := f.rows[assignmentKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leave.ErrAssignmentNotFound
	}
	row.Availed += availedDelta
	row.Adjusted += adjustedDelta
	return nil
}

func (f *fakeAssignmentRepo) TryStartAccrual(_ context.Context, year int, month time.Month) (bool, error) {
	key := fmt.Sprintf("%d|%d", year, int(month))
	if f.accrualRuns[key] {
		return false, nil
	}
	f.accrualRuns[key] = true
	return true, nil
}

func (f *fakeAssignmentRepo) AddAssigned(_ context.Context, employeeID, leaveTypeID string, year int, delta float64) error {
	key := assignmentKey(employeeID, leaveTypeID, year)
	row, ok := f.rows[key]
	if !ok {
		f.rows[key] = &leave.LeaveAssignment{
			ID:          key,
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        year,
			Assigned:    delta,
		}
		return nil
	}
	row.Assigned += delta
	return nil
}
