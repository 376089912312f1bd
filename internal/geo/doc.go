// Package geo provides the small geodesic helpers the client needs:
// great-circle distance, polyline length, bounding boxes, and interpolation
// along a route.
//
// All distances are in meters and all coordinates are WGS-84 decimal degrees.
// The interpolation is linear in lat/lon space, which is accurate to well
// under a meter at the segment lengths a drawn boating route produces.
package geo
