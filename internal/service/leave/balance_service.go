package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/fiscal"
)

// BalanceService derives per-type balance summaries and runs the monthly
// earned-leave accrual. Balances are never stored: total and availed come
// from the assignment row, applied is the sum of still-submitted requests in
// the current financial year.
type BalanceService struct {
	assignments leave.LeaveAssignmentRepository
	requests    leave.LeaveRequestRepository
	leaveTypes  leave.LeaveTypeRepository
	taken       leave.LeaveTakenRepository
	employees   employee.EmployeeRepository
	logger      *slog.Logger
}

func NewBalanceService(
	assignmentRepo leave.LeaveAssignmentRepository,
	requestRepo leave.LeaveRequestRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	takenRepo leave.LeaveTakenRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) *BalanceService {
	return &BalanceService{
		assignments: assignmentRepo,
		requests:    requestRepo,
		leaveTypes:  leaveTypeRepo,
		taken:       takenRepo,
		employees:   employeeRepo,
		logger:      logger,
	}
}

// Summary returns one row per assigned leave type for the financial year
// containing at.
func (s *BalanceService) Summary(ctx context.Context, employeeID string, at time.Time) ([]leave.BalanceResponse, error) {
	year := fiscal.Year(at)
	from, to := fiscal.Window(at)

	assignments, err := s.assignments.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	var summaries []leave.BalanceResponse
	for _, a := range assignments {
		leaveType, err := s.leaveTypes.GetByID(ctx, a.LeaveTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get leave type %s: %w", a.LeaveTypeID, err)
		}

		applied, err := s.requests.SumSubmittedDays(ctx, employeeID, a.LeaveTypeID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to sum applied days: %w", err)
		}

		balance := a.Assigned - a.Availed
		summaries = append(summaries, leave.BalanceResponse{
			LeaveTypeID:    a.LeaveTypeID,
			LeaveTypeName:  leaveType.Name,
			Total:          a.Assigned,
			Availed:        a.Availed,
			Adjusted:       a.Adjusted,
			Applied:        applied,
			Balance:        balance,
			AppliedBalance: balance - applied,
		})
	}

	return summaries, nil
}

// History returns the taken records charged in the financial year containing
// at.
func (s *BalanceService) History(ctx context.Context, employeeID string, at time.Time) ([]leave.LeaveTaken, error) {
	return s.taken.ListByEmployee(ctx, employeeID, fiscal.Year(at))
}

// AccrueMonthly credits every monthly-accrual leave type to every active
// employee for the current financial year. The scheduler fires it on an
// interval, so the run is gated by a per-month claim row; repeats within the
// same calendar month are no-ops.
func (s *BalanceService) AccrueMonthly(ctx context.Context) error {
	now := time.Now()

	claimed, err := s.assignments.TryStartAccrual(ctx, now.Year(), now.Month())
	if err != nil {
		return err
	}
	if !claimed {
		s.logger.Debug("accrual already posted this month")
		return nil
	}

	return s.accrue(ctx)
}

func (s *BalanceService) accrue(ctx context.Context) error {
	year := fiscal.Year(time.Now())

	leaveTypes, err := s.leaveTypes.ListMonthlyAccrual(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accrual leave types: %w", err)
	}
	if len(leaveTypes) == 0 {
		return nil
	}

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	for _, leaveType := range leaveTypes {
		if leaveType.MonthlyAccrual == nil || *leaveType.MonthlyAccrual <= 0 {
			continue
		}
		for _, emp := range employees {
			if err := s.assignments.AddAssigned(ctx, emp.ID, leaveType.ID, year, *leaveType.MonthlyAccrual); err != nil {
				s.logger.Error("accrual failed",
					slog.String("employee_id", emp.ID),
					slog.String("leave_type_id", leaveType.ID),
					slog.Any("error", err),
				)
				continue
			}
		}
	}

	s.logger.Info("monthly accrual complete",
		slog.Int("leave_types", len(leaveTypes)),
		slog.Int("employees", len(employees)),
		slog.String("financial_year", fiscal.Label(time.Now())),
	)

	return nil
}
