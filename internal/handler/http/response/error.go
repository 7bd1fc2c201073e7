package response

import (
	"errors"
	"net/http"

	"github.com/campus-erp/leave-backend-go/internal/domain/auth"
	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Directory
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrControllingOfficeNotFound):
		NotFound(w, "Controlling office not found")
	case errors.Is(err, calendar.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, calendar.ErrCalendarNotFound):
		NotFound(w, "Holiday calendar not found")

	// Leave: missing rows
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrTakenRecordNotFound):
		NotFound(w, "Leave taken record not found")
	case errors.Is(err, leave.ErrAdjustmentNotFound):
		NotFound(w, "Leave adjustment not found")
	case errors.Is(err, leave.ErrAssignmentNotFound):
		NotFound(w, "No leave assignment for this year")

	// Leave: rejected operations
	case errors.Is(err, leave.ErrZeroDayRequest):
		BadRequest(w, "Computed leave days must be positive", nil)
	case errors.Is(err, leave.ErrNoReportingOfficer):
		BadRequest(w, "No reporting officer could be resolved", nil)
	case errors.Is(err, leave.ErrOutsideFinancialYear):
		BadRequest(w, "Request falls outside the current financial year", nil)

	// Leave: ownership / role
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Only the requester may modify this request")
	case errors.Is(err, leave.ErrNotReportingOfficer):
		Forbidden(w, "Only the reporting officer may act on this request")
	case errors.Is(err, leave.ErrNotRecommender):
		Forbidden(w, "Only a listed recommender may forward this request")
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, "Not permitted to view this leave request")

	// Leave: stale state
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrAdjustmentProcessed):
		Conflict(w, "Leave adjustment already processed")
	case errors.Is(err, leave.ErrTakenRecordCancelled):
		Conflict(w, "Leave taken record already cancelled")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
