package analyzer

import (
	"math"

	"github.com/username/workday-analyzer/internal/config"
	"github.com/username/workday-analyzer/internal/timeline"
	"github.com/username/workday-analyzer/pkg/geoutil"
)

// Hit represents the classification signal of a single observation
type Hit int

const (
	HitNone Hit = iota
	HitOffice
	HitHome
	HitElsewhere
)

// Semantic types the Timeline export uses for known places
const (
	tagWork         = "WORK"
	tagInferredWork = "INFERRED_WORK"
	tagHome         = "HOME"
	tagInferredHome = "INFERRED_HOME"
)

// Matcher scores a single observation against the configured location
// model. Implementations are stateless; one is selected per run.
type Matcher interface {
	Match(obs timeline.Observation) Hit
}

// referenceDistancer is implemented by matchers that can report how far an
// observation is from the nearest reference point. Used for the elsewhere
// distance breakdown.
type referenceDistancer interface {
	ReferenceDistance(obs timeline.Observation) (float64, bool)
}

// SemanticMatcher matches observations by their Timeline semantic tag.
// No distance computation is involved.
type SemanticMatcher struct{}

// NewSemanticMatcher creates a new SemanticMatcher
func NewSemanticMatcher() *SemanticMatcher {
	return &SemanticMatcher{}
}

// Match maps the observation's semantic tag to a hit. Observations without
// a tag contribute nothing.
func (m *SemanticMatcher) Match(obs timeline.Observation) Hit {
	switch obs.SemanticTag {
	case "":
		return HitNone
	case tagWork, tagInferredWork:
		return HitOffice
	case tagHome, tagInferredHome:
		return HitHome
	default:
		return HitElsewhere
	}
}

// GeoMatcher matches observations by haversine distance to the configured
// office and home reference points. A distance of exactly the radius counts
// as a hit. When an observation is within radius of both points, office
// wins: that tie-break is a documented business rule.
type GeoMatcher struct {
	office       geoutil.Point
	home         geoutil.Point
	radiusMeters float64
}

// NewGeoMatcher creates a new GeoMatcher from the configured locations
func NewGeoMatcher(locations config.LocationsConfig) *GeoMatcher {
	return &GeoMatcher{
		office: geoutil.Point{
			Lat: locations.Office.Latitude,
			Lng: locations.Office.Longitude,
		},
		home: geoutil.Point{
			Lat: locations.Home.Latitude,
			Lng: locations.Home.Longitude,
		},
		radiusMeters: locations.RadiusMeters,
	}
}

// Match scores the observation's coordinate against both reference points.
// Observations without a coordinate contribute nothing.
func (m *GeoMatcher) Match(obs timeline.Observation) Hit {
	if obs.Coord == nil {
		return HitNone
	}

	// Office checked first: office wins when both are within radius
	if geoutil.Distance(*obs.Coord, m.office) <= m.radiusMeters {
		return HitOffice
	}
	if geoutil.Distance(*obs.Coord, m.home) <= m.radiusMeters {
		return HitHome
	}

	return HitElsewhere
}

// ReferenceDistance returns the observation's distance in meters to the
// nearest reference point. The second return is false when the observation
// has no coordinate.
func (m *GeoMatcher) ReferenceDistance(obs timeline.Observation) (float64, bool) {
	if obs.Coord == nil {
		return 0, false
	}

	return math.Min(
		geoutil.Distance(*obs.Coord, m.office),
		geoutil.Distance(*obs.Coord, m.home),
	), true
}

// NewMatcher selects the matching strategy for the run from configuration
func NewMatcher(cfg *config.Config) Matcher {
	if cfg.Analysis.Mode == config.ModeSemantic {
		return NewSemanticMatcher()
	}
	return NewGeoMatcher(cfg.Locations)
}
