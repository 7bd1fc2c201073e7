package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	ListMonthlyAccrual(ctx context.Context) ([]LeaveType, error)
}

// LeaveTypeRuleRepository - interface for leave_type_rules table
type LeaveTypeRuleRepository interface {
	// GetByTypeAndNature returns the nature-specific rule, ErrRuleNotFound
	// when none exists.
	GetByTypeAndNature(ctx context.Context, leaveTypeID, nature string) (LeaveTypeRule, error)
	// GetByType returns the nature-agnostic rule, ErrRuleNotFound when none
	// exists.
	GetByType(ctx context.Context, leaveTypeID string) (LeaveTypeRule, error)
}

// LeaveRequestRepository - interface for leave_requests table.
//
// The conditional mutations (UpdateSubmitted, CancelSubmitted, Decide,
// Recommend, MarkApprovedCancelled) re-check their status/ownership
// precondition inside the UPDATE statement itself and report false when no
// row matched, so a request acted on concurrently is never mutated twice.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, filter RequestFilter) ([]LeaveRequest, int64, error)
	ListPendingForOfficer(ctx context.Context, officerID string, from, to time.Time) ([]LeaveRequest, error)

	UpdateSubmitted(ctx context.Context, upd UpdateLeaveRequestInput) (bool, error)
	CancelSubmitted(ctx context.Context, id, requesterID string) (bool, error)
	Decide(ctx context.Context, id, officerID string, status RequestStatus, comment *string, from, to time.Time) (bool, error)
	Recommend(ctx context.Context, id, recommenderID string) (bool, error)
	MarkApprovedCancelled(ctx context.Context, id string) (bool, error)

	SumSubmittedDays(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (float64, error)
	LastApproverID(ctx context.Context, employeeID string) (string, error)
}

// LeaveTakenRepository - interface for leave_taken and leave_taken_days tables
type LeaveTakenRepository interface {
	Create(ctx context.Context, taken LeaveTaken, dates []time.Time) (LeaveTaken, error)
	GetByID(ctx context.Context, id string) (LeaveTaken, error)
	// GetByIDForUpdate row-locks the record; only meaningful inside a
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveTaken, error)
	UpdateDays(ctx context.Context, id string, days float64) error
	MarkCancelled(ctx context.Context, id string) error
	DeleteDayRows(ctx context.Context, takenID string) error
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveTaken, error)
}

// LeaveAdjustmentRepository - interface for leave_adjustments table
type LeaveAdjustmentRepository interface {
	Create(ctx context.Context, adj LeaveAdjustment) (LeaveAdjustment, error)
	GetByID(ctx context.Context, id string) (LeaveAdjustment, error)
	Decide(ctx context.Context, id, responderID string, status AdjustmentStatus) (bool, error)
	ListByRequester(ctx context.Context, requesterID string) ([]LeaveAdjustment, error)
	// ListPendingForOfficer returns submitted adjustments whose originating
	// request names the officer as its reporting officer.
	ListPendingForOfficer(ctx context.Context, officerID string) ([]LeaveAdjustment, error)
}

// LeaveAssignmentRepository - interface for leave_assignments table.
// ApplyDelta and AddAssigned mutate counters with a single atomic UPDATE so
// concurrent approvals cannot lose updates.
type LeaveAssignmentRepository interface {
	Create(ctx context.Context, a LeaveAssignment) (LeaveAssignment, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveAssignment, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveAssignment, error)
	ApplyDelta(ctx context.Context, employeeID, leaveTypeID string, year int, availedDelta, adjustedDelta float64) error
	AddAssigned(ctx context.Context, employeeID, leaveTypeID string, year int, delta float64) error

	// TryStartAccrual claims the accrual run for a calendar month. Reports
	// false when an earlier run (or another instance) already claimed it.
	TryStartAccrual(ctx context.Context, year int, month time.Month) (bool, error)
}
