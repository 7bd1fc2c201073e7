package leave

import (
	"time"

	"github.com/campus-erp/leave-backend-go/internal/pkg/validator"
)

type BreakupRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	ShortLeave  bool   `json:"short_leave"`
}

func (r *BreakupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveRequestRequest struct {
	EmployeeID     string  `json:"-"`
	RequesterID    string  `json:"-"`
	LeaveTypeID    string  `json:"leave_type_id"`
	FromDate       string  `json:"from_date"`
	ToDate         string  `json:"to_date"`
	StationFrom    *string `json:"station_from,omitempty"`
	StationTo      *string `json:"station_to,omitempty"`
	ShortLeave     bool    `json:"short_leave"`
	ShortLeaveTime *string `json:"short_leave_time,omitempty"`
	Days           float64 `json:"days"`
	Reason         string  `json:"reason"`
	ContactInfo    *string `json:"contact_info,omitempty"`
	Recommender1   *string `json:"recommender_1,omitempty"`
	Recommender2   *string `json:"recommender_2,omitempty"`
	Recommender3   *string `json:"recommender_3,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be a valid date (YYYY-MM-DD)",
		})
	}

	// The client is required to run the day-wise breakup first; a
	// non-positive count means it did not.
	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be positive; compute the day-wise breakup first",
		})
	}

	if r.ShortLeave {
		if r.ShortLeaveTime == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "short_leave_time",
				Message: "short_leave_time is required for short leave",
			})
		} else if _, ok := validator.IsValidTimeOfDay(*r.ShortLeaveTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "short_leave_time",
				Message: "short_leave_time must be a valid time (HH:MM)",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveRequestRequest struct {
	ID           string  `json:"-"`
	RequesterID  string  `json:"-"`
	LeaveTypeID  *string `json:"leave_type_id,omitempty"`
	FromDate     *string `json:"from_date,omitempty"`
	ToDate       *string `json:"to_date,omitempty"`
	StationFrom  *string `json:"station_from,omitempty"`
	StationTo    *string `json:"station_to,omitempty"`
	Reason       *string `json:"reason,omitempty"`
	ContactInfo  *string `json:"contact_info,omitempty"`
	Recommender1 *string `json:"recommender_1,omitempty"`
	Recommender2 *string `json:"recommender_2,omitempty"`
	Recommender3 *string `json:"recommender_3,omitempty"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.FromDate != nil {
		if _, ok := validator.IsValidDate(*r.FromDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from_date",
				Message: "from_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.ToDate != nil {
		if _, ok := validator.IsValidDate(*r.ToDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to_date",
				Message: "to_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequestInput is the repository-level update applied only while
// the request is still submitted and owned by the requester.
type UpdateLeaveRequestInput struct {
	ID           string
	RequesterID  string
	LeaveTypeID  *string
	FromDate     *time.Time
	ToDate       *time.Time
	StationFrom  *time.Time
	StationTo    *time.Time
	Days         *float64
	CalendarDays *float64
	Reason       *string
	ContactInfo  *string
	Recommender1 *string
	Recommender2 *string
	Recommender3 *string
	UpdatedBy    string
}

type DecideRequestRequest struct {
	RequestID string  `json:"request_id"`
	Comment   *string `json:"comment,omitempty"`
}

func (r *DecideRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateAdjustmentRequest struct {
	RequestedBy  string  `json:"-"`
	TakenID      string  `json:"taken_id"`
	ProposedDays float64 `json:"proposed_days"`
	Cancellation bool    `json:"cancellation"`
	Reason       string  `json:"reason"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TakenID) {
		errs = append(errs, validator.ValidationError{
			Field:   "taken_id",
			Message: "taken_id is required",
		})
	}

	if !r.Cancellation && r.ProposedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_days",
			Message: "proposed_days must not be negative",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	LeaveTypeID *string
	Status      *string
	Page        int
	Limit       int
	SortOrder   string
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must not be negative",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakupDayResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type BreakupResponse struct {
	Days         float64              `json:"days"`
	CalendarDays float64              `json:"calendar_days"`
	Dates        []BreakupDayResponse `json:"dates"`
}

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	LeaveTypeID     string     `json:"leave_type_id"`
	LeaveTypeName   string     `json:"leave_type_name,omitempty"`
	FromDate        time.Time  `json:"from_date"`
	ToDate          time.Time  `json:"to_date"`
	ShortLeave      bool       `json:"short_leave"`
	ShortLeaveTime  *string    `json:"short_leave_time,omitempty"`
	Days            float64    `json:"days"`
	CalendarDays    float64    `json:"calendar_days"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ReportingTo     string     `json:"reporting_officer_id"`
	RecommendedBy   *string    `json:"recommended_by,omitempty"`
	ResponderID     *string    `json:"responder_id,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	ResponseComment *string    `json:"response_comment,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type AdjustmentResponse struct {
	ID           string     `json:"id"`
	TakenID      string     `json:"taken_id"`
	ProposedDays float64    `json:"proposed_days"`
	Cancellation bool       `json:"cancellation"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	RequestedBy  string     `json:"requested_by"`
	RequestedAt  time.Time  `json:"requested_at"`
	ResponderID  *string    `json:"responder_id,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

type BalanceResponse struct {
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeName  string  `json:"leave_type_name"`
	Total          float64 `json:"total"`
	Availed        float64 `json:"availed"`
	Adjusted       float64 `json:"adjusted"`
	Applied        float64 `json:"applied"`
	Balance        float64 `json:"balance"`
	AppliedBalance float64 `json:"applied_balance"`
}
