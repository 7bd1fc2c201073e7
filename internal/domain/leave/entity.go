package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Code        string
	Description *string

	// Restricted inverts the day-count rule: the type represents electing to
	// take a holiday as leave, so only holiday dates are chargeable.
	Restricted bool

	// Accrual
	AccrualMethod  *string // 'monthly' or nil for fixed assignment
	MonthlyAccrual *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveTypeRule decides whether holidays and weekly offs still count as
// chargeable days for a leave type. Nature-specific rows override the
// nature-agnostic row (Nature nil).
type LeaveTypeRule struct {
	ID          string
	LeaveTypeID string
	Nature      *string
	OffCovered  bool
}

type RequestStatus string

const (
	RequestStatusSubmitted RequestStatus = "submitted"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	RequesterID string
	EmployeeID  string
	LeaveTypeID string

	FromDate time.Time
	ToDate   time.Time

	// Optional station-travel sub-range within the leave period
	StationFrom *time.Time
	StationTo   *time.Time

	ShortLeave     bool
	ShortLeaveTime *string // "15:04"

	Days         float64
	CalendarDays float64

	Reason      string
	ContactInfo *string

	Status             RequestStatus
	ReportingOfficerID string

	Recommender1 *string
	Recommender2 *string
	Recommender3 *string

	RecommendedBy *string
	RecommendedAt *time.Time

	ResponderID     *string
	RespondedAt     *time.Time
	ResponseComment *string

	CreatedBy string
	CreatedAt time.Time
	UpdatedBy *string
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// Recommenders returns the non-empty recommender IDs.
func (r LeaveRequest) Recommenders() []string {
	var ids []string
	for _, p := range []*string{r.Recommender1, r.Recommender2, r.Recommender3} {
		if p != nil && *p != "" {
			ids = append(ids, *p)
		}
	}
	return ids
}

// LeaveTaken is the record of days actually charged against an employee's
// balance after approval, distinct from the originating request.
type LeaveTaken struct {
	ID          string
	RequestID   string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Days        float64
	Cancelled   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaveTakenDay is one charged date under a taken record.
type LeaveTakenDay struct {
	ID      string
	TakenID string
	Date    time.Time
}

type AdjustmentStatus string

const (
	AdjustmentStatusSubmitted AdjustmentStatus = "submitted"
	AdjustmentStatusApproved  AdjustmentStatus = "approved"
	AdjustmentStatusRejected  AdjustmentStatus = "rejected"
)

// LeaveAdjustment proposes a revised day count against a taken record.
// Cancellation true means the full taken amount is to be reversed and the
// originating request flipped to cancelled.
type LeaveAdjustment struct {
	ID           string
	TakenID      string
	ProposedDays float64
	Cancellation bool
	Reason       string
	Status       AdjustmentStatus
	RequestedBy  string
	RequestedAt  time.Time
	ResponderID  *string
	RespondedAt  *time.Time
}

// LeaveAssignment is the stored per-employee, per-type, per-year quota row.
type LeaveAssignment struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Assigned    float64
	Availed     float64
	Adjusted    float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceSummary is derived, never stored. Applied sums submitted requests in
// the current financial year.
type BalanceSummary struct {
	LeaveTypeID    string
	LeaveTypeName  string
	Total          float64
	Availed        float64
	Adjusted       float64
	Applied        float64
	Balance        float64
	AppliedBalance float64
}

// BreakupDay is one chargeable date with its weekday name, rendered back to
// the user for confirmation before submission.
type BreakupDay struct {
	Date    time.Time
	Weekday string
}

// DayBreakup is the authoritative day-count result for a date range.
type DayBreakup struct {
	Days         float64
	CalendarDays float64
	Dates        []BreakupDay
}
