package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/pkg/dateutil"
)

// YearInfo represents calendar statistics for a year
type YearInfo struct {
	Year        int
	WorkingDays int
	Weekends    int
	Holidays    int // public holidays falling on weekdays
	Days        []dateutil.Date
	HolidayList []Holiday
}

// Generator produces the set of expected working days for a year:
// Monday-Friday minus the public holidays from the configured source.
type Generator struct {
	source HolidaySource
	logger *zap.Logger
}

// NewGenerator creates a new Generator instance
func NewGenerator(source HolidaySource, logger *zap.Logger) *Generator {
	return &Generator{
		source: source,
		logger: logger,
	}
}

// WorkingDays returns all expected working days of the year in order
func (g *Generator) WorkingDays(year int) ([]dateutil.Date, error) {
	info, err := g.YearInfo(year)
	if err != nil {
		return nil, err
	}

	return info.Days, nil
}

// YearInfo returns the expected working days plus calendar statistics
func (g *Generator) YearInfo(year int) (*YearInfo, error) {
	holidays, err := g.source.Holidays(year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holidays for %d: %w", year, err)
	}

	holidaySet := make(map[dateutil.Date]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date] = true
	}

	info := &YearInfo{
		Year:        year,
		HolidayList: holidays,
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := dateutil.DateOf(day)

		switch {
		case dateutil.IsWeekend(day):
			info.Weekends++
		case holidaySet[date]:
			info.Holidays++
		default:
			info.WorkingDays++
			info.Days = append(info.Days, date)
		}
	}

	g.logger.Info("Working day calendar generated",
		zap.Int("year", year),
		zap.Int("working_days", info.WorkingDays),
		zap.Int("weekends", info.Weekends),
		zap.Int("weekday_holidays", info.Holidays))

	return info, nil
}
