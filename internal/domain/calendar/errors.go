package calendar

import "errors"

var (
	ErrLocationNotFound = errors.New("Location not found")
	ErrCalendarNotFound = errors.New("Holiday calendar not found")
)
