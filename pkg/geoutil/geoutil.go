package geoutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula
const earthRadiusMeters = 6371000.0

// Point represents a geographic coordinate (WGS 84)
type Point struct {
	Lat float64
	Lng float64
}

// Valid returns true if the point is within valid lat/lng ranges
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance returns the great-circle distance between two points in meters
// using the haversine formula
func Distance(a, b Point) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	deltaPhi := radians(b.Lat - a.Lat)
	deltaLambda := radians(b.Lng - a.Lng)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// ParseLatLng parses a Timeline latLng string like "52.5200080°, 13.4049540°"
// into a Point. The degree signs are optional.
func ParseLatLng(s string) (Point, error) {
	parts := strings.Split(strings.ReplaceAll(s, "°", ""), ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid latLng string: %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	p := Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return Point{}, fmt.Errorf("latLng out of range: %q", s)
	}

	return p, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
