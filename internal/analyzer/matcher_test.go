package analyzer

import (
	"testing"
	"time"

	"github.com/username/workday-analyzer/internal/config"
	"github.com/username/workday-analyzer/internal/timeline"
	"github.com/username/workday-analyzer/pkg/geoutil"
)

var (
	officePoint = geoutil.Point{Lat: 52.520008, Lng: 13.404954}
	homePoint   = geoutil.Point{Lat: 52.516275, Lng: 13.377704}
)

func geoLocations(radius float64) config.LocationsConfig {
	return config.LocationsConfig{
		Office:       config.Coordinate{Latitude: officePoint.Lat, Longitude: officePoint.Lng},
		Home:         config.Coordinate{Latitude: homePoint.Lat, Longitude: homePoint.Lng},
		RadiusMeters: radius,
	}
}

func coordObs(p geoutil.Point) timeline.Observation {
	return timeline.Observation{
		Time:   time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		Coord:  &p,
		Source: timeline.SourceSegment,
	}
}

func tagObs(tag string) timeline.Observation {
	return timeline.Observation{
		Time:        time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		SemanticTag: tag,
		Source:      timeline.SourceSegment,
	}
}

func TestSemanticMatcher(t *testing.T) {
	matcher := NewSemanticMatcher()

	tests := []struct {
		name string
		tag  string
		want Hit
	}{
		{"WORK is office", "WORK", HitOffice},
		{"INFERRED_WORK is office", "INFERRED_WORK", HitOffice},
		{"HOME is home", "HOME", HitHome},
		{"INFERRED_HOME is home", "INFERRED_HOME", HitHome},
		{"Other tag is elsewhere", "SCHOOL", HitElsewhere},
		{"Unknown tag is elsewhere", "SEARCHED_ADDRESS", HitElsewhere},
		{"Empty tag contributes nothing", "", HitNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.Match(tagObs(tt.tag)); got != tt.want {
				t.Errorf("Match(tag=%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestSemanticMatcher_IgnoresCoordinates(t *testing.T) {
	matcher := NewSemanticMatcher()

	// A coordinate right at the office means nothing in semantic mode
	if got := matcher.Match(coordObs(officePoint)); got != HitNone {
		t.Errorf("Match(coord only) = %v, want HitNone", got)
	}
}

func TestGeoMatcher(t *testing.T) {
	matcher := NewGeoMatcher(geoLocations(100))

	// Roughly 55m north of the office
	nearOffice := geoutil.Point{Lat: officePoint.Lat + 0.0005, Lng: officePoint.Lng}
	// Roughly 55m north of home
	nearHome := geoutil.Point{Lat: homePoint.Lat + 0.0005, Lng: homePoint.Lng}
	// Central Munich, several hundred km away
	farAway := geoutil.Point{Lat: 48.137154, Lng: 11.576124}

	tests := []struct {
		name string
		obs  timeline.Observation
		want Hit
	}{
		{"At the office", coordObs(officePoint), HitOffice},
		{"Near the office", coordObs(nearOffice), HitOffice},
		{"At home", coordObs(homePoint), HitHome},
		{"Near home", coordObs(nearHome), HitHome},
		{"Far away is elsewhere", coordObs(farAway), HitElsewhere},
		{"No coordinate contributes nothing", tagObs("WORK"), HitNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.Match(tt.obs); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeoMatcher_RadiusBoundaryInclusive(t *testing.T) {
	// A point a few hundred meters from the office
	probe := geoutil.Point{Lat: officePoint.Lat + 0.003, Lng: officePoint.Lng}
	exact := geoutil.Distance(probe, officePoint)

	// Radius set to the exact distance: the boundary counts as a hit
	atBoundary := NewGeoMatcher(geoLocations(exact))
	if got := atBoundary.Match(coordObs(probe)); got != HitOffice {
		t.Errorf("Match() at exact radius = %v, want HitOffice", got)
	}

	// Radius a hair below the distance: no longer a hit
	belowBoundary := NewGeoMatcher(geoLocations(exact - 0.001))
	if got := belowBoundary.Match(coordObs(probe)); got != HitElsewhere {
		t.Errorf("Match() just outside radius = %v, want HitElsewhere", got)
	}
}

func TestGeoMatcher_OfficeWinsWhenBothInRadius(t *testing.T) {
	// Office and home are ~1.9km apart; a radius large enough to cover
	// both from any point between them forces the tie-break.
	matcher := NewGeoMatcher(geoLocations(5000))

	between := geoutil.Point{
		Lat: (officePoint.Lat + homePoint.Lat) / 2,
		Lng: (officePoint.Lng + homePoint.Lng) / 2,
	}

	if got := matcher.Match(coordObs(between)); got != HitOffice {
		t.Errorf("Match() with both points in radius = %v, want HitOffice (documented tie-break)", got)
	}
}

func TestGeoMatcher_ReferenceDistance(t *testing.T) {
	matcher := NewGeoMatcher(geoLocations(100))

	// Closer to home than to the office
	nearHome := geoutil.Point{Lat: homePoint.Lat + 0.001, Lng: homePoint.Lng}

	meters, ok := matcher.ReferenceDistance(coordObs(nearHome))
	if !ok {
		t.Fatal("ReferenceDistance() ok = false, want true")
	}

	wantMax := geoutil.Distance(nearHome, homePoint) + 1
	if meters > wantMax {
		t.Errorf("ReferenceDistance() = %.1f, want the distance to the nearest point (≤ %.1f)",
			meters, wantMax)
	}

	if _, ok := matcher.ReferenceDistance(tagObs("WORK")); ok {
		t.Error("ReferenceDistance() ok = true for observation without coordinate, want false")
	}
}

func TestNewMatcher_SelectsStrategy(t *testing.T) {
	geoCfg := &config.Config{
		Analysis:  config.AnalysisConfig{Mode: config.ModeGeo},
		Locations: geoLocations(100),
	}
	if _, ok := NewMatcher(geoCfg).(*GeoMatcher); !ok {
		t.Error("NewMatcher(geo) did not return a GeoMatcher")
	}

	semCfg := &config.Config{Analysis: config.AnalysisConfig{Mode: config.ModeSemantic}}
	if _, ok := NewMatcher(semCfg).(*SemanticMatcher); !ok {
		t.Error("NewMatcher(semantic) did not return a SemanticMatcher")
	}
}
