package analyzer

import (
	"github.com/username/workday-analyzer/internal/timeline"
	"github.com/username/workday-analyzer/pkg/dateutil"
)

// Category is the final classification of one expected working day
type Category string

const (
	CategoryOffice    Category = "office"
	CategoryHome      Category = "home"
	CategoryElsewhere Category = "elsewhere"
	CategoryMissing   Category = "missing"
)

// Distance breakdown boundaries for elsewhere days, in kilometers
const (
	localLimitKm    = 50
	regionalLimitKm = 150
	nationalLimitKm = 500
)

// DayVerdict represents the classification of one expected working day
type DayVerdict struct {
	Date     dateutil.Date
	Category Category
}

// ElsewhereBreakdown buckets elsewhere days by how far from home and
// office the day's closest observation was. Days without any distance
// information (semantic mode) appear in no bucket.
type ElsewhereBreakdown struct {
	Local         []dateutil.Date // < 50 km
	Regional      []dateutil.Date // 50-150 km
	National      []dateutil.Date // 150-500 km
	International []dateutil.Date // > 500 km
}

// Report is the complete analysis result for one year
type Report struct {
	Year     int
	Verdicts []DayVerdict

	Office    []dateutil.Date
	Home      []dateutil.Date
	Elsewhere []dateutil.Date
	Missing   []dateutil.Date

	Breakdown ElsewhereBreakdown

	ExpectedWorkingDays int
	DaysWithData        int

	Stats *timeline.Stats
}

// Classify reduces each expected working day's observations to exactly one
// category. The priority is fixed: any office hit makes the whole day an
// office day, then home, then elsewhere; a day with no usable observation
// in the window is missing. Days outside the working-day set produce no
// verdict at all.
func Classify(workingDays []dateutil.Date, byDay map[dateutil.Date][]timeline.Observation, matcher Matcher) *Report {
	report := &Report{
		ExpectedWorkingDays: len(workingDays),
	}

	distancer, hasDistances := matcher.(referenceDistancer)

	for _, date := range workingDays {
		observations := byDay[date]
		category := classifyDay(observations, matcher)

		report.Verdicts = append(report.Verdicts, DayVerdict{Date: date, Category: category})

		switch category {
		case CategoryOffice:
			report.Office = append(report.Office, date)
		case CategoryHome:
			report.Home = append(report.Home, date)
		case CategoryElsewhere:
			report.Elsewhere = append(report.Elsewhere, date)
			if hasDistances {
				report.bucketElsewhere(date, observations, distancer)
			}
		case CategoryMissing:
			report.Missing = append(report.Missing, date)
		}

		if category != CategoryMissing {
			report.DaysWithData++
		}
	}

	if len(workingDays) > 0 {
		report.Year = workingDays[0].Year
	}

	return report
}

// classifyDay reduces one day's hit multiset by fixed priority:
// office > home > elsewhere > missing
func classifyDay(observations []timeline.Observation, matcher Matcher) Category {
	hasHome := false
	hasElsewhere := false

	for _, obs := range observations {
		switch matcher.Match(obs) {
		case HitOffice:
			// Office presence wins outright regardless of later hits
			return CategoryOffice
		case HitHome:
			hasHome = true
		case HitElsewhere:
			hasElsewhere = true
		}
	}

	switch {
	case hasHome:
		return CategoryHome
	case hasElsewhere:
		return CategoryElsewhere
	default:
		return CategoryMissing
	}
}

// bucketElsewhere files an elsewhere day into the distance breakdown using
// the day's minimum distance to either reference point.
func (r *Report) bucketElsewhere(date dateutil.Date, observations []timeline.Observation, distancer referenceDistancer) {
	minMeters := 0.0
	found := false

	for _, obs := range observations {
		meters, ok := distancer.ReferenceDistance(obs)
		if !ok {
			continue
		}
		if !found || meters < minMeters {
			minMeters = meters
			found = true
		}
	}

	if !found {
		return
	}

	km := minMeters / 1000
	switch {
	case km < localLimitKm:
		r.Breakdown.Local = append(r.Breakdown.Local, date)
	case km < regionalLimitKm:
		r.Breakdown.Regional = append(r.Breakdown.Regional, date)
	case km < nationalLimitKm:
		r.Breakdown.National = append(r.Breakdown.National, date)
	default:
		r.Breakdown.International = append(r.Breakdown.International, date)
	}
}
