package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Document represents a parsed Google Timeline export
type Document struct {
	SemanticSegments []Segment `json:"semanticSegments"`
}

// Segment represents one raw timeline record. Exactly one of Visit or
// TimelinePath is normally set.
type Segment struct {
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Visit        *Visit      `json:"visit,omitempty"`
	TimelinePath []PathPoint `json:"timelinePath,omitempty"`
}

// Visit represents a stay at a single place
type Visit struct {
	HierarchyLevel int          `json:"hierarchyLevel"`
	Probability    float64      `json:"probability"`
	TopCandidate   TopCandidate `json:"topCandidate"`
}

// TopCandidate represents the most likely place for a visit
type TopCandidate struct {
	PlaceID       string        `json:"placeId"`
	SemanticType  string        `json:"semanticType"` // "HOME", "WORK", "INFERRED_HOME", ...
	Probability   float64       `json:"probability"`
	PlaceLocation PlaceLocation `json:"placeLocation"`
}

// PlaceLocation represents the coordinate of a place
type PlaceLocation struct {
	LatLng string `json:"latLng"` // "52.5200080°, 13.4049540°"
}

// PathPoint represents one sampled point of a movement path
type PathPoint struct {
	Point         string        `json:"point"` // same latLng format as places
	MinutesOffset FlexibleInt64 `json:"durationMinutesOffsetFromStartTime"`
}

// FlexibleInt64 handles numeric fields the Timeline export writes
// inconsistently, sometimes as a number and sometimes as a quoted string.
type FlexibleInt64 int64

// UnmarshalJSON implements json.Unmarshaler for FlexibleInt64
func (f *FlexibleInt64) UnmarshalJSON(b []byte) error {
	// Try as number first
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexibleInt64(n)
		return nil
	}

	// Try as quoted string
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("FlexibleInt64: cannot parse %q", s)
		}
		*f = FlexibleInt64(parsed)
		return nil
	}

	return fmt.Errorf("FlexibleInt64: cannot unmarshal %s", string(b))
}

// Parse decodes a Timeline export document. A top-level decode failure is
// fatal for the run; individual segment problems are handled later by the
// Loader.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid timeline document: %w", err)
	}

	return &doc, nil
}

// parseTimestamp parses a Timeline timestamp like
// "2025-01-15T09:30:00.000+01:00" or "2025-01-15T08:30:00Z".
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
