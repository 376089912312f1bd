package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// TripDB provides SQLite-based storage for routes, boats, and scored trips.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for everything the client
// caches rather than one file per concern. This simplifies backup/restore
// and lets history queries join routes to trips.
type TripDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures TripDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a TripDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*TripDB, error) {
	dbPath := filepath.Join(dbDir, "boatride.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; readers share the connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	tdb := &TripDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := tdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return tdb, nil
}

// Close closes the database connection.
func (tdb *TripDB) Close() error {
	return tdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (tdb *TripDB) createTables() error {
	schema := `
	-- Saved routes mirrored from the backend
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		points_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(name)
	);

	CREATE INDEX IF NOT EXISTS idx_routes_name ON routes(name);

	-- Boat records for offline listing
	CREATE TABLE IF NOT EXISTS boats (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		profile_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_boats_name ON boats(name);

	-- Scored trips, stored whole as JSON with a label summary for
	-- history listings
	CREATE TABLE IF NOT EXISTS trips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		route_name TEXT NOT NULL,
		scored_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		trip_json TEXT NOT NULL,
		label_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_trips_route ON trips(route_name);
	CREATE INDEX IF NOT EXISTS idx_trips_scored ON trips(scored_at);
	`

	_, err := tdb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertRoute inserts or updates a saved route.
// Routes conflict on name as well as ID so that re-saving "sandbar" from
// another device replaces the local copy instead of duplicating it.
func (tdb *TripDB) UpsertRoute(ctx context.Context, route *model.SavedRoute) error {
	pointsJSON, err := json.Marshal(route.Points)
	if err != nil {
		return fmt.Errorf("failed to serialize route points: %w", err)
	}

	// A re-saved route arrives with a fresh ID, so the old row under the
	// same name has to go before the insert.
	_, err = tdb.db.ExecContext(ctx,
		`DELETE FROM routes WHERE name = ? AND id != ?`,
		route.Name, route.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to replace route by name: %w", err)
	}

	query := `
	INSERT INTO routes (id, name, points_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		points_json = excluded.points_json,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err = tdb.db.ExecContext(ctx, query,
		route.ID,
		route.Name,
		string(pointsJSON),
		route.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert route: %w", err)
	}

	return nil
}

// GetRouteByName retrieves a saved route by its user-facing name.
// Returns nil without error when the route does not exist.
func (tdb *TripDB) GetRouteByName(ctx context.Context, name string) (*model.SavedRoute, error) {
	query := `
	SELECT id, name, points_json, created_at, updated_at
	FROM routes
	WHERE name = ?
	`

	var route model.SavedRoute
	var pointsJSON, createdAt, updatedAt string

	err := tdb.db.QueryRowContext(ctx, query, name).Scan(
		&route.ID,
		&route.Name,
		&pointsJSON,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	if err := json.Unmarshal([]byte(pointsJSON), &route.Points); err != nil {
		return nil, fmt.Errorf("failed to parse route points: %w", err)
	}
	route.CreatedAt = parseTimestamp(createdAt)
	route.UpdatedAt = parseTimestamp(updatedAt)

	return &route, nil
}

// ListRoutes returns all cached routes ordered by name.
func (tdb *TripDB) ListRoutes(ctx context.Context) ([]model.SavedRoute, error) {
	query := `
	SELECT id, name, points_json, created_at, updated_at
	FROM routes
	ORDER BY name
	`

	rows, err := tdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []model.SavedRoute
	for rows.Next() {
		var route model.SavedRoute
		var pointsJSON, createdAt, updatedAt string

		if err := rows.Scan(&route.ID, &route.Name, &pointsJSON, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		if err := json.Unmarshal([]byte(pointsJSON), &route.Points); err != nil {
			continue // Skip malformed cache entries
		}
		route.CreatedAt = parseTimestamp(createdAt)
		route.UpdatedAt = parseTimestamp(updatedAt)
		routes = append(routes, route)
	}

	return routes, rows.Err()
}

// DeleteRoute removes a cached route by ID.
func (tdb *TripDB) DeleteRoute(ctx context.Context, id string) error {
	if _, err := tdb.db.ExecContext(ctx, "DELETE FROM routes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	return nil
}

// UpsertBoat inserts or updates a cached boat record.
func (tdb *TripDB) UpsertBoat(ctx context.Context, boat *model.Boat) error {
	profileJSON, err := json.Marshal(boat.Profile)
	if err != nil {
		return fmt.Errorf("failed to serialize boat profile: %w", err)
	}

	query := `
	INSERT INTO boats (id, name, profile_json)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		profile_json = excluded.profile_json
	`

	_, err = tdb.db.ExecContext(ctx, query, boat.ID, boat.Profile.Name, string(profileJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert boat: %w", err)
	}

	return nil
}

// ListBoats returns all cached boats ordered by name.
func (tdb *TripDB) ListBoats(ctx context.Context) ([]model.Boat, error) {
	rows, err := tdb.db.QueryContext(ctx,
		"SELECT id, profile_json FROM boats ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list boats: %w", err)
	}
	defer rows.Close()

	var boats []model.Boat
	for rows.Next() {
		var boat model.Boat
		var profileJSON string

		if err := rows.Scan(&boat.ID, &profileJSON); err != nil {
			return nil, fmt.Errorf("failed to scan boat: %w", err)
		}
		if err := json.Unmarshal([]byte(profileJSON), &boat.Profile); err != nil {
			continue // Skip malformed cache entries
		}
		boats = append(boats, boat)
	}

	return boats, rows.Err()
}

// DeleteBoat removes a cached boat by ID.
func (tdb *TripDB) DeleteBoat(ctx context.Context, id string) error {
	if _, err := tdb.db.ExecContext(ctx, "DELETE FROM boats WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete boat: %w", err)
	}
	return nil
}

// SaveTrip stores a scored trip with its label summary.
func (tdb *TripDB) SaveTrip(ctx context.Context, trip *model.Trip) error {
	tripJSON, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to serialize trip: %w", err)
	}

	summaryJSON, _ := json.Marshal(trip.LabelCounts()) //nolint:errcheck,errchkjson // simple map; Marshal won't fail

	query := `
	INSERT INTO trips (route_name, scored_at, trip_json, label_summary)
	VALUES (?, ?, ?, ?)
	`

	scoredAt := trip.ScoredAt
	if scoredAt.IsZero() {
		scoredAt = time.Now().UTC()
	}

	_, err = tdb.db.ExecContext(ctx, query,
		trip.RouteName,
		scoredAt.UTC().Format("2006-01-02 15:04:05"),
		string(tripJSON),
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}

	return nil
}

// LatestTrip retrieves the most recent scored trip for a route name.
// Returns nil without error when no trip is cached.
func (tdb *TripDB) LatestTrip(ctx context.Context, routeName string) (*model.Trip, error) {
	query := `
	SELECT trip_json FROM trips
	WHERE route_name = ?
	ORDER BY scored_at DESC, id DESC
	LIMIT 1
	`

	var tripJSON string
	err := tdb.db.QueryRowContext(ctx, query, routeName).Scan(&tripJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest trip: %w", err)
	}

	var trip model.Trip
	if err := json.Unmarshal([]byte(tripJSON), &trip); err != nil {
		return nil, fmt.Errorf("failed to parse trip: %w", err)
	}

	return &trip, nil
}

// TripMetadata contains summary information about a cached trip.
// This is used for displaying trip history without loading the full trip.
type TripMetadata struct {
	// ID is the unique identifier of the trip in the database.
	ID int64

	// RouteName is the route this trip was scored from.
	RouteName string

	// ScoredAt is when the trip was scored.
	ScoredAt time.Time

	// LabelSummary contains counts of samples by label band.
	LabelSummary map[string]int
}

// TripHistory retrieves trip metadata for a route name, most recent first.
// This is more efficient than loading full trips when only the summary
// matters.
func (tdb *TripDB) TripHistory(ctx context.Context, routeName string) ([]TripMetadata, error) {
	query := `
	SELECT id, route_name, scored_at, label_summary
	FROM trips
	WHERE route_name = ?
	ORDER BY scored_at DESC, id DESC
	`

	rows, err := tdb.db.QueryContext(ctx, query, routeName)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip history: %w", err)
	}
	defer rows.Close()

	var results []TripMetadata
	for rows.Next() {
		var meta TripMetadata
		var scoredAt string
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.RouteName, &scoredAt, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan trip metadata: %w", err)
		}

		meta.ScoredAt = parseTimestamp(scoredAt)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.LabelSummary); err != nil {
				meta.LabelSummary = make(map[string]int)
			}
		} else {
			meta.LabelSummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// ScoredRouteNames returns the distinct route names that have cached trips.
func (tdb *TripDB) ScoredRouteNames(ctx context.Context) ([]string, error) {
	rows, err := tdb.db.QueryContext(ctx,
		"SELECT DISTINCT route_name FROM trips ORDER BY route_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list scored routes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan route name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// GetTripByID retrieves a full cached trip by its database ID.
func (tdb *TripDB) GetTripByID(ctx context.Context, id int64) (*model.Trip, error) {
	var tripJSON string
	err := tdb.db.QueryRowContext(ctx,
		"SELECT trip_json FROM trips WHERE id = ?", id).Scan(&tripJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	var trip model.Trip
	if err := json.Unmarshal([]byte(tripJSON), &trip); err != nil {
		return nil, fmt.Errorf("failed to parse trip: %w", err)
	}

	return &trip, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
