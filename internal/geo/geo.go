package geo

import (
	"math"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

const earthRadiusKm = 6371.0

// metersPerKnotHour is how many meters a boat covers in one hour at one knot.
const metersPerKnotHour = 1852.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(a, b model.RoutePoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c * 1000 // meters
}

// PathLength returns the total haversine length in meters of a polyline.
// Fewer than two points yields zero.
func PathLength(points []model.RoutePoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1], points[i])
	}
	return total
}

// Midpoint returns the point halfway along a polyline by distance.
// An empty polyline yields the zero point.
func Midpoint(points []model.RoutePoint) model.RoutePoint {
	return PointAtDistance(points, PathLength(points)/2)
}

// BoundingBox returns a bounding box around a point with the given radius in
// meters.
func BoundingBox(center model.RoutePoint, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusMeters / 111320.0
	lonDelta := radiusMeters / (111320.0 * math.Cos(toRad(center.Lat)))

	return center.Lat - latDelta, center.Lon - lonDelta, center.Lat + latDelta, center.Lon + lonDelta
}

// Interpolate returns the point a fraction t of the way from a to b.
// t is clamped to [0, 1].
func Interpolate(a, b model.RoutePoint, t float64) model.RoutePoint {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return model.RoutePoint{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
	}
}

// PointAtDistance walks the polyline and returns the point that lies the
// given number of meters from its start. Distances past the end clamp to the
// final point.
func PointAtDistance(points []model.RoutePoint, meters float64) model.RoutePoint {
	if len(points) == 0 {
		return model.RoutePoint{}
	}
	if meters <= 0 {
		return points[0]
	}

	remaining := meters
	for i := 1; i < len(points); i++ {
		seg := Haversine(points[i-1], points[i])
		if seg <= 0 {
			continue
		}
		if remaining <= seg {
			return Interpolate(points[i-1], points[i], remaining/seg)
		}
		remaining -= seg
	}
	return points[len(points)-1]
}

// KnotsToMetersPerSecond converts a speed in knots to meters per second.
func KnotsToMetersPerSecond(knots float64) float64 {
	return knots * metersPerKnotHour / 3600.0
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
