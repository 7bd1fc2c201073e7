package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	service     *RequestService
	requests    *fakeRequestRepo
	taken       *fakeTakenRepo
	assignments *fakeAssignmentRepo
	employees   *fakeEmployeeRepo
	rules       *fakeRuleRepo
	holidays    *fakeHolidayRepo
}

// requestServiceFixture wires a request service around one employee whose
// reporting officer resolves to officer-1 through the stored reporting_to
// field, with an earned-leave quota of 20 for the current financial year.
func requestServiceFixture() requestFixture {
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"el": {ID: "el", Name: "Earned Leave"},
	}}
	rules := &fakeRuleRepo{}
	employees := &fakeEmployeeRepo{
		employees: map[string]employee.Employee{
			"emp-1": {
				ID: "emp-1", LocationID: "loc-1",
				Nature: employee.NatureTeaching, Status: employee.StatusActive,
				ReportingTo: strPtr("officer-1"),
			},
		},
		departments: map[string]employee.Department{},
		offices:     map[string]employee.ControllingOffice{},
	}
	holidays := &fakeHolidayRepo{
		calendars: map[string]calendar.HolidayCalendar{},
		entries:   map[string][]calendar.HolidayEntry{},
	}
	weeklyOffs := &fakeWeeklyOffRepo{offs: map[string][]time.Weekday{}}

	requests := newFakeRequestRepo()
	taken := newFakeTakenRepo()
	assignments := newFakeAssignmentRepo()
	assignments.rows[assignmentKey("emp-1", "el", fiscal.Year(time.Now()))] = &leave.LeaveAssignment{
		EmployeeID: "emp-1", LeaveTypeID: "el", Year: fiscal.Year(time.Now()), Assigned: 20,
	}

	calculator := NewDayCalculator(leaveTypes, rules, employees, holidays, weeklyOffs)
	resolver := NewOfficerResolver(employees, requests)

	return requestFixture{
		service:     NewRequestService(fakeTransactor{}, requests, taken, assignments, calculator, resolver),
		requests:    requests,
		taken:       taken,
		assignments: assignments,
		employees:   employees,
		rules:       rules,
		holidays:    holidays,
	}
}

// submit files a 5-day request starting today so it always falls inside the
// current financial year.
func submit(t *testing.T, f requestFixture) leave.LeaveRequestResponse {
	t.Helper()
	from := time.Now()
	to := from.AddDate(0, 0, 4)

	resp, err := f.service.Create(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		RequesterID: "emp-1",
		LeaveTypeID: "el",
		FromDate:    from.Format("2006-01-02"),
		ToDate:      to.Format("2006-01-02"),
		Days:        99, // client value, must be recomputed
		Reason:      "family function",
	})
	require.NoError(t, err)
	return resp
}

func TestRequestService_CreateRecomputesDays(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()

	resp := submit(t, f)

	assert.Equal(t, 5.0, resp.Days)
	assert.Equal(t, 5.0, resp.CalendarDays)
	assert.Equal(t, string(leave.RequestStatusSubmitted), resp.Status)
	assert.Equal(t, "officer-1", resp.ReportingTo)
}

func TestRequestService_CreateRejectsZeroDayRange(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	from := time.Now()

	_, err := f.service.Create(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		RequesterID: "emp-1",
		LeaveTypeID: "el",
		FromDate:    from.Format("2006-01-02"),
		ToDate:      from.AddDate(0, 0, -3).Format("2006-01-02"),
		Days:        3,
		Reason:      "backdated range",
	})

	assert.ErrorIs(t, err, leave.ErrZeroDayRequest)
	assert.Empty(t, f.requests.requests)
}

func TestRequestService_UpdateByNonOwnerFails(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	err := f.service.Update(context.Background(), leave.UpdateLeaveRequestRequest{
		ID:          resp.ID,
		RequesterID: "someone-else",
		Reason:      strPtr("hijacked"),
	})

	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
	assert.Equal(t, "family function", f.requests.requests[resp.ID].Reason)
}

func TestRequestService_UpdateAfterApprovalFails(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)
	require.NoError(t, f.service.Approve(context.Background(), resp.ID, "officer-1", nil))

	err := f.service.Update(context.Background(), leave.UpdateLeaveRequestRequest{
		ID:          resp.ID,
		RequesterID: "emp-1",
		Reason:      strPtr("changed my mind"),
	})

	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	assert.Equal(t, "family function", f.requests.requests[resp.ID].Reason)
}

func TestRequestService_UpdateRederivesDays(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	newTo := time.Now().AddDate(0, 0, 6)
	err := f.service.Update(context.Background(), leave.UpdateLeaveRequestRequest{
		ID:          resp.ID,
		RequesterID: "emp-1",
		ToDate:      strPtr(newTo.Format("2006-01-02")),
	})

	require.NoError(t, err)
	assert.Equal(t, 7.0, f.requests.requests[resp.ID].Days)
}

func TestRequestService_CancelSubmitted(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	require.NoError(t, f.service.Cancel(context.Background(), resp.ID, "emp-1"))
	assert.Equal(t, leave.RequestStatusCancelled, f.requests.requests[resp.ID].Status)

	// A second cancel finds nothing submitted.
	err := f.service.Cancel(context.Background(), resp.ID, "emp-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestRequestService_CancelByNonOwnerFails(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	err := f.service.Cancel(context.Background(), resp.ID, "someone-else")

	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
	assert.Equal(t, leave.RequestStatusSubmitted, f.requests.requests[resp.ID].Status)
}

func TestRequestService_ApproveChargesBalance(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)
	year := fiscal.Year(time.Now())

	require.NoError(t, f.service.Approve(context.Background(), resp.ID, "officer-1", strPtr("enjoy")))

	request := f.requests.requests[resp.ID]
	assert.Equal(t, leave.RequestStatusApproved, request.Status)
	require.NotNil(t, request.ResponderID)
	assert.Equal(t, "officer-1", *request.ResponderID)

	require.Len(t, f.taken.records, 1)
	for id, taken := range f.taken.records {
		assert.Equal(t, 5.0, taken.Days)
		assert.Equal(t, resp.ID, taken.RequestID)
		assert.Len(t, f.taken.days[id], 5)
	}

	row := f.assignments.rows[assignmentKey("emp-1", "el", year)]
	assert.Equal(t, 5.0, row.Availed)
}

func TestRequestService_ApproveChargesRecomputedDays(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)
	year := fiscal.Year(time.Now())

	// A holiday gazetted between submission and approval removes one
	// chargeable day once the type stops covering offs.
	f.rules.rules = append(f.rules.rules, leave.LeaveTypeRule{LeaveTypeID: "el"})
	holiday := time.Now().AddDate(0, 0, 2)
	calKey := fmt.Sprintf("loc-1|%d", time.Now().Year())
	f.holidays.calendars[calKey] = calendar.HolidayCalendar{
		ID: "cal-1", LocationID: "loc-1", Year: time.Now().Year(),
	}
	f.holidays.entries["cal-1"] = []calendar.HolidayEntry{
		{CalendarID: "cal-1", FromDate: holiday, ToDate: holiday, Name: "Gazetted Holiday"},
	}

	require.NoError(t, f.service.Approve(context.Background(), resp.ID, "officer-1", nil))

	// The taken record, its day rows, and the charge all reflect the
	// approval-time calendar.
	require.Len(t, f.taken.records, 1)
	for id, taken := range f.taken.records {
		assert.Equal(t, 4.0, taken.Days)
		assert.Len(t, f.taken.days[id], 4)
	}
	assert.Equal(t, 4.0, f.assignments.rows[assignmentKey("emp-1", "el", year)].Availed)
}

func TestRequestService_ApproveByWrongOfficerFails(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	err := f.service.Approve(context.Background(), resp.ID, "impostor", nil)

	assert.ErrorIs(t, err, leave.ErrNotReportingOfficer)
	assert.Equal(t, leave.RequestStatusSubmitted, f.requests.requests[resp.ID].Status)
	assert.Empty(t, f.taken.records)
}

func TestRequestService_ApproveTwiceFails(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)
	require.NoError(t, f.service.Approve(context.Background(), resp.ID, "officer-1", nil))

	err := f.service.Approve(context.Background(), resp.ID, "officer-1", nil)

	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	assert.Len(t, f.taken.records, 1)
}

func TestRequestService_ApproveOutsideFinancialYearFails(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)
	// Push the request back into the previous financial year.
	f.requests.requests[resp.ID].FromDate = time.Now().AddDate(-1, 0, 0)

	err := f.service.Approve(context.Background(), resp.ID, "officer-1", nil)

	assert.ErrorIs(t, err, leave.ErrOutsideFinancialYear)
}

func TestRequestService_RejectLeavesBalanceUntouched(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)
	year := fiscal.Year(time.Now())

	require.NoError(t, f.service.Reject(context.Background(), resp.ID, "officer-1", strPtr("short staffed")))

	assert.Equal(t, leave.RequestStatusRejected, f.requests.requests[resp.ID].Status)
	assert.Empty(t, f.taken.records)
	assert.Zero(t, f.assignments.rows[assignmentKey("emp-1", "el", year)].Availed)
}

func TestRequestService_ApproveWithoutAssignmentCreatesRow(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	year := fiscal.Year(time.Now())
	delete(f.assignments.rows, assignmentKey("emp-1", "el", year))
	resp := submit(t, f)

	require.NoError(t, f.service.Approve(context.Background(), resp.ID, "officer-1", nil))

	row := f.assignments.rows[assignmentKey("emp-1", "el", year)]
	require.NotNil(t, row)
	assert.Zero(t, row.Assigned)
	assert.Equal(t, 5.0, row.Availed)
}

func TestRequestService_Recommend(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	from := time.Now()
	resp, err := f.service.Create(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:   "emp-1",
		RequesterID:  "emp-1",
		LeaveTypeID:  "el",
		FromDate:     from.Format("2006-01-02"),
		ToDate:       from.AddDate(0, 0, 2).Format("2006-01-02"),
		Days:         3,
		Reason:       "conference",
		Recommender1: strPtr("mentor-1"),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Recommend(context.Background(), resp.ID, "mentor-1"))
	stored := f.requests.requests[resp.ID]
	require.NotNil(t, stored.RecommendedBy)
	assert.Equal(t, "mentor-1", *stored.RecommendedBy)
	assert.Equal(t, leave.RequestStatusSubmitted, stored.Status)

	err = f.service.Recommend(context.Background(), resp.ID, "outsider")
	assert.ErrorIs(t, err, leave.ErrNotRecommender)
}

func TestRequestService_GetAuthorization(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	_, err := f.service.Get(context.Background(), resp.ID, "emp-1")
	assert.NoError(t, err)

	_, err = f.service.Get(context.Background(), resp.ID, "officer-1")
	assert.NoError(t, err)

	_, err = f.service.Get(context.Background(), resp.ID, "stranger")
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)
}

func TestRequestService_ListPending(t *testing.T) {
	t.Parallel()
	f := requestServiceFixture()
	resp := submit(t, f)

	pending, err := f.service.ListPending(context.Background(), "officer-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, resp.ID, pending[0].ID)

	require.NoError(t, f.service.Approve(context.Background(), resp.ID, "officer-1", nil))

	pending, err = f.service.ListPending(context.Background(), "officer-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
