package leave

import (
	"log/slog"

	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
)

// Service bundles the leave sub-services behind one constructor for wiring.
type Service struct {
	Requests    *RequestService
	Adjustments *AdjustmentService
	Balances    *BalanceService
	Calculator  *DayCalculator
	Resolver    *OfficerResolver
}

type Repositories struct {
	LeaveTypes  leave.LeaveTypeRepository
	Rules       leave.LeaveTypeRuleRepository
	Requests    leave.LeaveRequestRepository
	Taken       leave.LeaveTakenRepository
	Adjustments leave.LeaveAdjustmentRepository
	Assignments leave.LeaveAssignmentRepository
	Employees   employee.EmployeeRepository
	Holidays    calendar.HolidayRepository
	WeeklyOffs  calendar.WeeklyOffRepository
}

func NewService(tx database.Transactor, repos Repositories, logger *slog.Logger) *Service {
	calculator := NewDayCalculator(repos.LeaveTypes, repos.Rules, repos.Employees, repos.Holidays, repos.WeeklyOffs)
	resolver := NewOfficerResolver(repos.Employees, repos.Requests)

	return &Service{
		Requests:    NewRequestService(tx, repos.Requests, repos.Taken, repos.Assignments, calculator, resolver),
		Adjustments: NewAdjustmentService(tx, repos.Adjustments, repos.Taken, repos.Requests, repos.Assignments),
		Balances:    NewBalanceService(repos.Assignments, repos.Requests, repos.LeaveTypes, repos.Taken, repos.Employees, logger),
		Calculator:  calculator,
		Resolver:    resolver,
	}
}
