package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/domain/employee"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/pkg/validator"
)

// DayCalculator produces the authoritative chargeable-day count for a date
// range. The result depends only on its inputs and the calendar configuration,
// so recomputing for the same inputs always yields the same breakup.
type DayCalculator struct {
	leaveTypes leave.LeaveTypeRepository
	rules      leave.LeaveTypeRuleRepository
	employees  employee.EmployeeRepository
	holidays   calendar.HolidayRepository
	weeklyOffs calendar.WeeklyOffRepository
}

func NewDayCalculator(
	leaveTypeRepo leave.LeaveTypeRepository,
	ruleRepo leave.LeaveTypeRuleRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo calendar.HolidayRepository,
	weeklyOffRepo calendar.WeeklyOffRepository,
) *DayCalculator {
	return &DayCalculator{
		leaveTypes: leaveTypeRepo,
		rules:      ruleRepo,
		employees:  employeeRepo,
		holidays:   holidayRepo,
		weeklyOffs: weeklyOffRepo,
	}
}

// Breakup computes the chargeable days for an employee's requested range.
// Malformed dates and inverted ranges yield a zero breakup, not an error.
func (c *DayCalculator) Breakup(ctx context.Context, employeeID string, req leave.BreakupRequest) (leave.DayBreakup, error) {
	fromDate, ok := validator.IsValidDate(req.FromDate)
	if !ok {
		return leave.DayBreakup{}, nil
	}
	toDate, ok := validator.IsValidDate(req.ToDate)
	if !ok {
		return leave.DayBreakup{}, nil
	}
	if toDate.Before(fromDate) {
		return leave.DayBreakup{}, nil
	}

	// Short leave is a sub-day absence: exactly one day, calendar rules do
	// not apply.
	if req.ShortLeave {
		return leave.DayBreakup{
			Days:         1,
			CalendarDays: 1,
			Dates:        []leave.BreakupDay{{Date: fromDate, Weekday: fromDate.Weekday().String()}},
		}, nil
	}

	calendarDays := float64(toDate.Sub(fromDate).Hours()/24) + 1

	emp, err := c.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.DayBreakup{}, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveType, err := c.leaveTypes.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.DayBreakup{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	offCovered, err := c.resolveOffCovered(ctx, req.LeaveTypeID, string(emp.Nature))
	if err != nil {
		return leave.DayBreakup{}, err
	}

	// With offcovered every calendar day is chargeable; holidays and weekly
	// offs are irrelevant for the leave type.
	if offCovered {
		var dates []leave.BreakupDay
		for d := fromDate; !d.After(toDate); d = d.AddDate(0, 0, 1) {
			dates = append(dates, leave.BreakupDay{Date: d, Weekday: d.Weekday().String()})
		}
		return leave.DayBreakup{
			Days:         calendarDays,
			CalendarDays: calendarDays,
			Dates:        dates,
		}, nil
	}

	holidaySet, err := c.holidayDates(ctx, emp.LocationID, fromDate.Year())
	if err != nil {
		return leave.DayBreakup{}, err
	}

	offWeekdays, err := c.weeklyOffs.GetByLocation(ctx, emp.LocationID)
	if err != nil {
		return leave.DayBreakup{}, fmt.Errorf("failed to get weekly offs: %w", err)
	}
	offSet := make(map[time.Weekday]bool, len(offWeekdays))
	for _, wd := range offWeekdays {
		offSet[wd] = true
	}

	var dates []leave.BreakupDay
	for d := fromDate; !d.After(toDate); d = d.AddDate(0, 0, 1) {
		var chargeable bool
		if leaveType.Restricted {
			// Electing to take a holiday as leave: only holiday dates count.
			chargeable = holidaySet[dateKey(d)]
		} else {
			chargeable = !holidaySet[dateKey(d)] && !offSet[d.Weekday()]
		}
		if chargeable {
			dates = append(dates, leave.BreakupDay{Date: d, Weekday: d.Weekday().String()})
		}
	}

	return leave.DayBreakup{
		Days:         float64(len(dates)),
		CalendarDays: calendarDays,
		Dates:        dates,
	}, nil
}

// resolveOffCovered looks up the nature-specific rule first, then the
// nature-agnostic one, and defaults to true when no rule exists.
func (c *DayCalculator) resolveOffCovered(ctx context.Context, leaveTypeID, nature string) (bool, error) {
	rule, err := c.rules.GetByTypeAndNature(ctx, leaveTypeID, nature)
	if err == nil {
		return rule.OffCovered, nil
	}
	if !errors.Is(err, leave.ErrRuleNotFound) {
		return false, fmt.Errorf("failed to get leave type rule: %w", err)
	}

	rule, err = c.rules.GetByType(ctx, leaveTypeID)
	if err == nil {
		return rule.OffCovered, nil
	}
	if !errors.Is(err, leave.ErrRuleNotFound) {
		return false, fmt.Errorf("failed to get leave type rule: %w", err)
	}

	return true, nil
}

// holidayDates expands the location's calendar into a date set. A missing
// calendar header means no holidays, not an error.
func (c *DayCalculator) holidayDates(ctx context.Context, locationID string, year int) (map[string]bool, error) {
	cal, err := c.holidays.GetCalendar(ctx, locationID, year)
	if err != nil {
		if errors.Is(err, calendar.ErrCalendarNotFound) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("failed to get holiday calendar: %w", err)
	}

	entries, err := c.holidays.GetEntries(ctx, cal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday entries: %w", err)
	}

	set := make(map[string]bool)
	for _, entry := range entries {
		for _, d := range entry.Dates() {
			set[dateKey(d)] = true
		}
	}

	return set, nil
}

func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}
