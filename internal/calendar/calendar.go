package calendar

import (
	"github.com/username/workday-analyzer/pkg/dateutil"
)

// Holiday represents a single public holiday
type Holiday struct {
	Date dateutil.Date `json:"date"`
	Name string        `json:"name"`
}

// HolidaySource provides the public holidays for a given year
type HolidaySource interface {
	// Holidays returns all public holidays in the year, in calendar order
	Holidays(year int) ([]Holiday, error)
}
