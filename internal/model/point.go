package model

import (
	"errors"
	"fmt"
)

// Coordinate validation errors.
var (
	// ErrInvalidLatitude is returned when a latitude is outside [-90, 90].
	ErrInvalidLatitude = errors.New("invalid latitude: must be between -90 and 90")

	// ErrInvalidLongitude is returned when a longitude is outside [-180, 180].
	ErrInvalidLongitude = errors.New("invalid longitude: must be between -180 and 180")

	// ErrRouteTooShort is returned when a route has fewer than two distinct points.
	ErrRouteTooShort = errors.New("route too short: at least two distinct points required")
)

// RoutePoint is a latitude/longitude pair placed along a route (WGS 84).
//
// Design decision: We use a small value type rather than pointers because
// points are copied freely (sampling, interpolation) and have no identity
// beyond their coordinates.
type RoutePoint struct {
	// Lat is the latitude in decimal degrees, positive north.
	Lat float64 `json:"lat"`

	// Lon is the longitude in decimal degrees, positive east.
	Lon float64 `json:"lon"`
}

// Validate checks that the point is a plausible WGS-84 coordinate.
func (p RoutePoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: got %v", ErrInvalidLatitude, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: got %v", ErrInvalidLongitude, p.Lon)
	}
	return nil
}

// String returns the point as "lat,lon" with enough precision for display.
func (p RoutePoint) String() string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon)
}

// NormalizeRoute validates every point and drops consecutive duplicates.
// The original point order is preserved. It returns ErrRouteTooShort if
// fewer than two distinct points remain.
func NormalizeRoute(points []RoutePoint) ([]RoutePoint, error) {
	normalized := make([]RoutePoint, 0, len(points))
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		if len(normalized) > 0 && normalized[len(normalized)-1] == p {
			continue
		}
		normalized = append(normalized, p)
	}

	if len(normalized) < 2 {
		return nil, ErrRouteTooShort
	}
	return normalized, nil
}
