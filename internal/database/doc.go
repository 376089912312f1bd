// Package database provides SQLite-based local storage for the boat-ride
// client.
//
// This package implements the TripDB, which caches:
//   - Saved routes mirrored from the backend
//   - Boat records for offline listing
//   - Scored trips for history browsing and offline rendering
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// storage because:
// 1. No external dependencies - the cache is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
