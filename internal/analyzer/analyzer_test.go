package analyzer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/internal/calendar"
	"github.com/username/workday-analyzer/internal/config"
	"github.com/username/workday-analyzer/pkg/dateutil"
)

// emptyHolidays is a HolidaySource with no holidays at all
type emptyHolidays struct{}

func (emptyHolidays) Holidays(int) ([]calendar.Holiday, error) { return nil, nil }

// failingHolidays always errors
type failingHolidays struct{}

func (failingHolidays) Holidays(year int) ([]calendar.Holiday, error) {
	return nil, fmt.Errorf("no data for year %d", year)
}

func semanticConfig() *config.Config {
	return &config.Config{
		Analysis: config.AnalysisConfig{
			Year:         2025,
			Mode:         config.ModeSemantic,
			WorkingHours: "09:00-18:00",
			Timezone:     "Europe/Berlin",
			TimelineFile: "Timeline.json",
		},
		Holidays: config.HolidaysConfig{Country: "DE"},
	}
}

const semanticTimeline = `{
  "semanticSegments": [
    {
      "startTime": "2025-01-15T10:00:00.000+01:00",
      "visit": {"topCandidate": {"semanticType": "HOME"}}
    },
    {
      "startTime": "2025-01-16T11:30:00.000+01:00",
      "visit": {"topCandidate": {"semanticType": "WORK"}}
    }
  ]
}`

func TestAnalyzer_Run(t *testing.T) {
	a := New(semanticConfig(), emptyHolidays{}, zap.NewNop())

	report, err := a.Run(strings.NewReader(semanticTimeline))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Year != 2025 {
		t.Errorf("Year = %d, want 2025", report.Year)
	}
	if report.ExpectedWorkingDays != 261 {
		t.Errorf("ExpectedWorkingDays = %d, want 261", report.ExpectedWorkingDays)
	}

	jan15, _ := dateutil.ParseDate("2025-01-15")
	jan16, _ := dateutil.ParseDate("2025-01-16")

	if len(report.Home) != 1 || report.Home[0] != jan15 {
		t.Errorf("Home = %v, want [%s]", report.Home, jan15)
	}
	if len(report.Office) != 1 || report.Office[0] != jan16 {
		t.Errorf("Office = %v, want [%s]", report.Office, jan16)
	}

	// Every other expected working day has no data
	if want := 261 - 2; len(report.Missing) != want {
		t.Errorf("Missing = %d days, want %d", len(report.Missing), want)
	}
	if report.DaysWithData != 2 {
		t.Errorf("DaysWithData = %d, want 2", report.DaysWithData)
	}
}

func TestAnalyzer_Run_Idempotent(t *testing.T) {
	a := New(semanticConfig(), emptyHolidays{}, zap.NewNop())

	first, err := a.Run(strings.NewReader(semanticTimeline))
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	second, err := a.Run(strings.NewReader(semanticTimeline))
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Run() is not deterministic: two runs on the same input differ")
	}
}

func TestAnalyzer_Run_MalformedDocument(t *testing.T) {
	a := New(semanticConfig(), emptyHolidays{}, zap.NewNop())

	if _, err := a.Run(strings.NewReader("not json at all")); err == nil {
		t.Error("Run() expected error for malformed document, got nil")
	}
}

func TestAnalyzer_Run_HolidaySourceFailure(t *testing.T) {
	a := New(semanticConfig(), failingHolidays{}, zap.NewNop())

	if _, err := a.Run(strings.NewReader(semanticTimeline)); err == nil {
		t.Error("Run() expected error when the holiday source fails, got nil")
	}
}
