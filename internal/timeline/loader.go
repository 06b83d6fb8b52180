package timeline

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/internal/config"
	"github.com/username/workday-analyzer/pkg/dateutil"
	"github.com/username/workday-analyzer/pkg/geoutil"
)

// Source marks which kind of raw record an Observation came from
type Source int

const (
	// SourceSegment is a visit (stay) record
	SourceSegment Source = iota + 1
	// SourcePoint is a sampled point of a movement path
	SourcePoint
)

// Observation represents one normalized presence event. Coord and
// SemanticTag are both optional, but at least one is always set.
type Observation struct {
	Time        time.Time
	Coord       *geoutil.Point
	SemanticTag string
	Source      Source
}

// Stats carries per-run normalization counters for reporting
type Stats struct {
	Segments         int // raw segments in the document
	Processed        int // segments in the target year
	SkippedOtherYear int
	SkippedRecords   int // records dropped for missing/invalid fields
	OutsideWindow    int // observations outside the work window
	Observations     int // observations that made it into the mapping
}

// Loader normalizes a timeline document into per-day observation lists,
// restricted to the configured work window.
type Loader struct {
	year   int
	window config.WorkWindow
	loc    *time.Location
	logger *zap.Logger
}

// NewLoader creates a new Loader instance
func NewLoader(year int, window config.WorkWindow, loc *time.Location, logger *zap.Logger) *Loader {
	return &Loader{
		year:   year,
		window: window,
		loc:    loc,
		logger: logger,
	}
}

// DayObservations groups the document's observations by local calendar
// date, keeping only those whose local time-of-day falls inside the work
// window. Observations within a day are chronologically ordered and never
// deduplicated.
func (l *Loader) DayObservations(doc *Document) (map[dateutil.Date][]Observation, *Stats) {
	byDay := make(map[dateutil.Date][]Observation)
	stats := &Stats{Segments: len(doc.SemanticSegments)}

	for i := range doc.SemanticSegments {
		seg := &doc.SemanticSegments[i]

		switch {
		case seg.Visit != nil:
			l.addVisit(seg, byDay, stats)
		case len(seg.TimelinePath) > 0:
			l.addPath(seg, byDay, stats)
		}
	}

	// Path points and visits interleave arbitrarily in the document;
	// restore chronological order per day.
	for date := range byDay {
		obs := byDay[date]
		sort.SliceStable(obs, func(a, b int) bool {
			return obs[a].Time.Before(obs[b].Time)
		})
	}

	l.logger.Info("Timeline normalized",
		zap.Int("segments", stats.Segments),
		zap.Int("processed", stats.Processed),
		zap.Int("skipped_other_year", stats.SkippedOtherYear),
		zap.Int("skipped_records", stats.SkippedRecords),
		zap.Int("observations", stats.Observations),
		zap.Int("days", len(byDay)))

	return byDay, stats
}

// addVisit normalizes a visit segment into one Observation at its start time
func (l *Loader) addVisit(seg *Segment, byDay map[dateutil.Date][]Observation, stats *Stats) {
	if seg.StartTime == "" {
		stats.SkippedRecords++
		l.logger.Debug("Skipping visit without start time")
		return
	}

	start, err := parseTimestamp(seg.StartTime)
	if err != nil {
		stats.SkippedRecords++
		l.logger.Debug("Skipping visit with invalid start time",
			zap.String("start_time", seg.StartTime),
			zap.Error(err))
		return
	}

	local := start.In(l.loc)
	if local.Year() != l.year {
		stats.SkippedOtherYear++
		return
	}
	stats.Processed++

	obs := Observation{
		Time:        local,
		SemanticTag: seg.Visit.TopCandidate.SemanticType,
		Source:      SourceSegment,
	}

	if latLng := seg.Visit.TopCandidate.PlaceLocation.LatLng; latLng != "" {
		coord, err := geoutil.ParseLatLng(latLng)
		if err != nil {
			l.logger.Debug("Ignoring unparseable place location",
				zap.String("lat_lng", latLng),
				zap.Error(err))
		} else {
			obs.Coord = &coord
		}
	}

	// A record with neither location nor tag carries no evidence
	if obs.Coord == nil && obs.SemanticTag == "" {
		stats.SkippedRecords++
		l.logger.Debug("Skipping visit without location or semantic tag",
			zap.String("start_time", seg.StartTime))
		return
	}

	l.add(obs, byDay, stats)
}

// addPath normalizes every sampled point of a path segment
func (l *Loader) addPath(seg *Segment, byDay map[dateutil.Date][]Observation, stats *Stats) {
	if seg.StartTime == "" {
		stats.SkippedRecords++
		l.logger.Debug("Skipping path segment without start time")
		return
	}

	start, err := parseTimestamp(seg.StartTime)
	if err != nil {
		stats.SkippedRecords++
		l.logger.Debug("Skipping path segment with invalid start time",
			zap.String("start_time", seg.StartTime),
			zap.Error(err))
		return
	}

	inYear := false
	for _, pt := range seg.TimelinePath {
		t := start.Add(time.Duration(pt.MinutesOffset) * time.Minute).In(l.loc)
		if t.Year() != l.year {
			continue
		}
		inYear = true

		coord, err := geoutil.ParseLatLng(pt.Point)
		if err != nil {
			stats.SkippedRecords++
			l.logger.Debug("Skipping path point with invalid coordinate",
				zap.String("point", pt.Point),
				zap.Error(err))
			continue
		}

		l.add(Observation{Time: t, Coord: &coord, Source: SourcePoint}, byDay, stats)
	}

	if inYear {
		stats.Processed++
	} else {
		stats.SkippedOtherYear++
	}
}

// add applies the work-window filter and groups the observation by its
// local calendar date.
func (l *Loader) add(obs Observation, byDay map[dateutil.Date][]Observation, stats *Stats) {
	if !l.window.Contains(obs.Time) {
		stats.OutsideWindow++
		return
	}

	date := dateutil.DateOf(obs.Time)
	byDay[date] = append(byDay[date], obs)
	stats.Observations++
}
