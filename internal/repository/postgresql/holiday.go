package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/domain/calendar"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) GetCalendar(ctx context.Context, locationID string, year int) (calendar.HolidayCalendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, location_id, year
		FROM holiday_calendars
		WHERE location_id = $1 AND year = $2
	`

	var c calendar.HolidayCalendar
	err := q.QueryRow(ctx, query, locationID, year).Scan(&c.ID, &c.LocationID, &c.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.HolidayCalendar{}, calendar.ErrCalendarNotFound
		}
		return calendar.HolidayCalendar{}, err
	}

	return c, nil
}

func (r *holidayRepositoryImpl) GetEntries(ctx context.Context, calendarID string) ([]calendar.HolidayEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, calendar_id, name, from_date, to_date, common
		FROM holiday_entries
		WHERE calendar_id = $1
		ORDER BY from_date
	`

	rows, err := q.Query(ctx, query, calendarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []calendar.HolidayEntry
	for rows.Next() {
		var e calendar.HolidayEntry
		if err := rows.Scan(&e.ID, &e.CalendarID, &e.Name, &e.FromDate, &e.ToDate, &e.Common); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *holidayRepositoryImpl) ListLocations(ctx context.Context) ([]calendar.Location, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []calendar.Location
	for rows.Next() {
		var l calendar.Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

type weeklyOffRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyOffRepository(db *database.DB) calendar.WeeklyOffRepository {
	return &weeklyOffRepositoryImpl{db: db}
}

func (r *weeklyOffRepositoryImpl) GetByLocation(ctx context.Context, locationID string) ([]time.Weekday, error) {
	q := GetQuerier(ctx, r.db)

	// weekday stored 0=Sunday..6=Saturday, matching time.Weekday
	rows, err := q.Query(ctx, `SELECT weekday FROM weekly_offs WHERE location_id = $1 ORDER BY weekday`, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []time.Weekday
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, time.Weekday(d))
	}

	return days, rows.Err()
}
