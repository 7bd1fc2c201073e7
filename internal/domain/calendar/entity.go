package calendar

import "time"

// Location is a physical campus or office with its own holiday calendar and
// weekly-off configuration.
type Location struct {
	ID   string
	Name string
}

// HolidayCalendar is the per-location, per-year header under which holiday
// entries are recorded.
type HolidayCalendar struct {
	ID         string
	LocationID string
	Year       int
}

// HolidayEntry is a possibly multi-day holiday range. Common marks holidays
// observed by every employee nature.
type HolidayEntry struct {
	ID         string
	CalendarID string
	Name       string
	FromDate   time.Time
	ToDate     time.Time
	Common     bool
}

// Dates expands the entry's range into individual dates, inclusive.
func (e HolidayEntry) Dates() []time.Time {
	var dates []time.Time
	for d := e.FromDate; !d.After(e.ToDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
