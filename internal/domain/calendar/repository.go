package calendar

import (
	"context"
	"time"
)

// HolidayRepository - interface for holiday calendar tables
type HolidayRepository interface {
	// GetCalendar returns ErrCalendarNotFound when no header exists for the
	// location and year.
	GetCalendar(ctx context.Context, locationID string, year int) (HolidayCalendar, error)
	GetEntries(ctx context.Context, calendarID string) ([]HolidayEntry, error)
	ListLocations(ctx context.Context) ([]Location, error)
}

// WeeklyOffRepository - interface for the per-location weekly-off configuration
type WeeklyOffRepository interface {
	// GetByLocation returns the configured non-working weekdays, empty when
	// the location has no configuration.
	GetByLocation(ctx context.Context, locationID string) ([]time.Weekday, error)
}
