package calendar

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/pkg/dateutil"
)

// fakeSource is a HolidaySource backed by a fixed map
type fakeSource struct {
	holidays map[int][]Holiday
	err      error
}

func (f *fakeSource) Holidays(year int) ([]Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.holidays[year], nil
}

func germanHolidays2025() []Holiday {
	dates := []struct {
		date string
		name string
	}{
		{"2025-01-01", "Neujahr"},
		{"2025-04-18", "Karfreitag"},
		{"2025-04-21", "Ostermontag"},
		{"2025-05-01", "Tag der Arbeit"},
		{"2025-05-29", "Christi Himmelfahrt"},
		{"2025-06-09", "Pfingstmontag"},
		{"2025-10-03", "Tag der Deutschen Einheit"},
		{"2025-12-25", "1. Weihnachtstag"},
		{"2025-12-26", "2. Weihnachtstag"},
	}

	holidays := make([]Holiday, 0, len(dates))
	for _, d := range dates {
		date, _ := dateutil.ParseDate(d.date)
		holidays = append(holidays, Holiday{Date: date, Name: d.name})
	}
	return holidays
}

func TestGenerator_WeekdayCount(t *testing.T) {
	logger := zap.NewNop()

	// With no holidays the working day set is exactly the weekdays: 261 in 2025
	gen := NewGenerator(&fakeSource{holidays: map[int][]Holiday{}}, logger)

	days, err := gen.WorkingDays(2025)
	if err != nil {
		t.Fatalf("WorkingDays() error = %v", err)
	}

	if len(days) != 261 {
		t.Errorf("WorkingDays(2025) count = %d, want 261", len(days))
	}

	for _, d := range days {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("WorkingDays(2025) contains weekend day %s (%s)", d, wd)
		}
	}
}

func TestGenerator_ExcludesHolidays(t *testing.T) {
	logger := zap.NewNop()
	source := &fakeSource{holidays: map[int][]Holiday{2025: germanHolidays2025()}}
	gen := NewGenerator(source, logger)

	days, err := gen.WorkingDays(2025)
	if err != nil {
		t.Fatalf("WorkingDays() error = %v", err)
	}

	// All nine German national holidays fall on weekdays in 2025
	if len(days) != 252 {
		t.Errorf("WorkingDays(2025) count = %d, want 252", len(days))
	}

	daySet := make(map[dateutil.Date]bool, len(days))
	for _, d := range days {
		daySet[d] = true
	}

	for _, h := range germanHolidays2025() {
		if daySet[h.Date] {
			t.Errorf("WorkingDays(2025) contains holiday %s (%s)", h.Date, h.Name)
		}
	}
}

func TestGenerator_WeekendHolidayDoesNotReduceCount(t *testing.T) {
	logger := zap.NewNop()

	// 2025-05-04 is a Sunday; listing it as a holiday must not change the set
	sunday, _ := dateutil.ParseDate("2025-05-04")
	source := &fakeSource{holidays: map[int][]Holiday{
		2025: {{Date: sunday, Name: "Sunday holiday"}},
	}}
	gen := NewGenerator(source, logger)

	days, err := gen.WorkingDays(2025)
	if err != nil {
		t.Fatalf("WorkingDays() error = %v", err)
	}

	if len(days) != 261 {
		t.Errorf("WorkingDays(2025) count = %d, want 261", len(days))
	}
}

func TestGenerator_Ordered(t *testing.T) {
	logger := zap.NewNop()
	gen := NewGenerator(&fakeSource{holidays: map[int][]Holiday{}}, logger)

	days, err := gen.WorkingDays(2025)
	if err != nil {
		t.Fatalf("WorkingDays() error = %v", err)
	}

	for i := 1; i < len(days); i++ {
		if !days[i-1].Before(days[i]) {
			t.Fatalf("WorkingDays not in ascending order at index %d: %s >= %s",
				i, days[i-1], days[i])
		}
	}

	first := days[0]
	if first.String() != "2025-01-01" {
		t.Errorf("first working day = %s, want 2025-01-01", first)
	}
}

func TestGenerator_SourceError(t *testing.T) {
	logger := zap.NewNop()
	gen := NewGenerator(&fakeSource{err: fmt.Errorf("year not supported")}, logger)

	_, err := gen.WorkingDays(2025)
	if err == nil {
		t.Error("WorkingDays() expected error when source fails, got nil")
	}
}

func TestGenerator_YearInfo(t *testing.T) {
	logger := zap.NewNop()
	source := &fakeSource{holidays: map[int][]Holiday{2025: germanHolidays2025()}}
	gen := NewGenerator(source, logger)

	info, err := gen.YearInfo(2025)
	if err != nil {
		t.Fatalf("YearInfo() error = %v", err)
	}

	if info.WorkingDays != 252 {
		t.Errorf("WorkingDays = %d, want 252", info.WorkingDays)
	}
	if info.Weekends != 104 {
		t.Errorf("Weekends = %d, want 104", info.Weekends)
	}
	if info.Holidays != 9 {
		t.Errorf("Holidays = %d, want 9", info.Holidays)
	}
	if total := info.WorkingDays + info.Weekends + info.Holidays; total != 365 {
		t.Errorf("day counts sum to %d, want 365", total)
	}
}
