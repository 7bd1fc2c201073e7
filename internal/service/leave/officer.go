package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
)

// OfficerResolver resolves who evaluates an employee's leave requests. The
// hierarchy has several inconsistently-populated sources of truth, so the
// resolver walks an ordered fallback chain: department head, then controlling
// officer, then the stored reporting_to reference, then whoever approved the
// employee's most recent request.
type OfficerResolver struct {
	employees employee.EmployeeRepository
	requests  leave.LeaveRequestRepository
}

func NewOfficerResolver(employeeRepo employee.EmployeeRepository, requestRepo leave.LeaveRequestRepository) *OfficerResolver {
	return &OfficerResolver{
		employees: employeeRepo,
		requests:  requestRepo,
	}
}

// Resolve returns the reporting officer's employee ID, or
// ErrNoReportingOfficer when the whole chain comes up empty.
func (r *OfficerResolver) Resolve(ctx context.Context, employeeID string) (string, error) {
	emp, err := r.employees.GetByID(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("failed to get employee: %w", err)
	}

	dept, err := r.employees.GetDepartment(ctx, emp.DepartmentID)
	if err == nil && dept.HeadID != nil && *dept.HeadID != "" && *dept.HeadID != emp.ID {
		return *dept.HeadID, nil
	}
	if err != nil && !errors.Is(err, employee.ErrDepartmentNotFound) {
		return "", fmt.Errorf("failed to get department: %w", err)
	}

	if emp.ControllingOfficeID != nil && *emp.ControllingOfficeID != "" {
		office, err := r.employees.GetControllingOffice(ctx, *emp.ControllingOfficeID)
		if err == nil && office.OfficerID != nil && *office.OfficerID != "" && *office.OfficerID != emp.ID {
			return *office.OfficerID, nil
		}
		if err != nil && !errors.Is(err, employee.ErrControllingOfficeNotFound) {
			return "", fmt.Errorf("failed to get controlling office: %w", err)
		}
	}

	if emp.ReportingTo != nil && *emp.ReportingTo != "" && *emp.ReportingTo != emp.ID {
		return *emp.ReportingTo, nil
	}

	approverID, err := r.requests.LastApproverID(ctx, emp.ID)
	if err != nil {
		return "", fmt.Errorf("failed to look up last approver: %w", err)
	}
	if approverID != "" {
		return approverID, nil
	}

	return "", leave.ErrNoReportingOfficer
}
