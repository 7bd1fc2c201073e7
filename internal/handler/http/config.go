package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/domain/leave"
	"github.com/campus-erp/leave-backend-go/internal/handler/http/response"
	"github.com/campus-erp/leave-backend-go/internal/pkg/fiscal"
	"github.com/go-chi/chi/v5"
)

// ConfigHandler exposes the read-only calendar and leave-type configuration
// the UI needs to drive the breakup and request forms.
type ConfigHandler interface {
	ListLocations(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	ListWeeklyOffs(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
}

type ConfigHandlerImpl struct {
	holidays   calendar.HolidayRepository
	weeklyOffs calendar.WeeklyOffRepository
	leaveTypes leave.LeaveTypeRepository
}

func NewConfigHandler(
	holidays calendar.HolidayRepository,
	weeklyOffs calendar.WeeklyOffRepository,
	leaveTypes leave.LeaveTypeRepository,
) ConfigHandler {
	return &ConfigHandlerImpl{
		holidays:   holidays,
		weeklyOffs: weeklyOffs,
		leaveTypes: leaveTypes,
	}
}

// ListLocations implements ConfigHandler.
func (c *ConfigHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.holidays.ListLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}

// ListHolidays implements ConfigHandler. Defaults to the financial year
// containing today when no year is given.
func (c *ConfigHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "id")

	year := fiscal.Year(time.Now())
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	cal, err := c.holidays.GetCalendar(r.Context(), locationID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := c.holidays.GetEntries(r.Context(), cal.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// ListWeeklyOffs implements ConfigHandler.
func (c *ConfigHandlerImpl) ListWeeklyOffs(w http.ResponseWriter, r *http.Request) {
	offs, err := c.weeklyOffs.GetByLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	names := make([]string, 0, len(offs))
	for _, wd := range offs {
		names = append(names, wd.String())
	}

	response.Success(w, names)
}

// ListLeaveTypes implements ConfigHandler.
func (c *ConfigHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := c.leaveTypes.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}
