// Package model defines the core data structures used throughout the
// boat-ride client.
//
// This package contains the following main types:
//   - RoutePoint: A latitude/longitude pair placed along a route
//   - BoatProfile: Dimensional and safety-threshold parameters for scoring
//   - ScorePoint: A 0-100 ride-quality score for a sampled route point
//   - Trip: The accumulated result of scoring a route
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (trip, api, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models mirror the backend REST API contract and are designed to be
// serializable to JSON for request/response bodies, report output, and
// database storage.
package model
