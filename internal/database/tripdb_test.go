package database

import (
	"context"
	"testing"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

func openTestDB(t *testing.T) *TripDB {
	t.Helper()

	tdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := tdb.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	return tdb
}

func testRoute(name string) *model.SavedRoute {
	return &model.SavedRoute{
		ID:   name + "-id",
		Name: name,
		Points: []model.RoutePoint{
			{Lat: 27.3364, Lon: -82.5307},
			{Lat: 27.2000, Lon: -82.5500},
			{Lat: 27.0998, Lon: -82.4543},
		},
		CreatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database when CreateIfNotExists is set", func(t *testing.T) {
		t.Parallel()

		tdb, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer tdb.Close() //nolint:errcheck

		if tdb.db == nil {
			t.Error("Open() returned TripDB with nil db")
		}
	})

	t.Run("fails when database missing and creation disabled", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: false}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("Open() expected error for missing database, got nil")
		}
	})
}

func TestTripDB_UpsertRoute(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	route := testRoute("sandbar")
	if err := tdb.UpsertRoute(ctx, route); err != nil {
		t.Fatalf("UpsertRoute() error = %v", err)
	}

	got, err := tdb.GetRouteByName(ctx, "sandbar")
	if err != nil {
		t.Fatalf("GetRouteByName() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetRouteByName() = nil, want route")
	}
	if got.ID != route.ID {
		t.Errorf("route ID = %q, want %q", got.ID, route.ID)
	}
	if len(got.Points) != len(route.Points) {
		t.Fatalf("route has %d points, want %d", len(got.Points), len(route.Points))
	}
	if got.Points[0] != route.Points[0] {
		t.Errorf("first point = %v, want %v", got.Points[0], route.Points[0])
	}

	// Upsert with the same ID should update, not duplicate.
	route.Name = "sandbar-revised"
	route.Points = route.Points[:2]
	if err := tdb.UpsertRoute(ctx, route); err != nil {
		t.Fatalf("UpsertRoute() update error = %v", err)
	}

	routes, err := tdb.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("ListRoutes() error = %v", err)
	}
	if len(routes) != 1 {
		t.Errorf("ListRoutes() returned %d routes, want 1", len(routes))
	}
	if routes[0].Name != "sandbar-revised" {
		t.Errorf("route name = %q, want %q", routes[0].Name, "sandbar-revised")
	}
	if len(routes[0].Points) != 2 {
		t.Errorf("updated route has %d points, want 2", len(routes[0].Points))
	}
}

func TestTripDB_UpsertRoute_SameNameNewID(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	if err := tdb.UpsertRoute(ctx, testRoute("sandbar")); err != nil {
		t.Fatalf("UpsertRoute() error = %v", err)
	}

	// Re-saving a route mints a fresh ID; the cached row under the same
	// name must be replaced, not duplicated or rejected.
	revised := testRoute("sandbar")
	revised.ID = "sandbar-id-2"
	revised.Points = revised.Points[:2]
	if err := tdb.UpsertRoute(ctx, revised); err != nil {
		t.Fatalf("UpsertRoute() with new ID error = %v", err)
	}

	routes, err := tdb.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("ListRoutes() error = %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("ListRoutes() returned %d routes, want 1", len(routes))
	}
	if routes[0].ID != "sandbar-id-2" {
		t.Errorf("route ID = %q, want %q", routes[0].ID, "sandbar-id-2")
	}
	if len(routes[0].Points) != 2 {
		t.Errorf("replaced route has %d points, want 2", len(routes[0].Points))
	}
}

func TestTripDB_GetRouteByName_NotFound(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)

	got, err := tdb.GetRouteByName(context.Background(), "no-such-route")
	if err != nil {
		t.Fatalf("GetRouteByName() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetRouteByName() = %v, want nil", got)
	}
}

func TestTripDB_ListRoutes_Order(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"venice-run", "anchorage", "sandbar"} {
		if err := tdb.UpsertRoute(ctx, testRoute(name)); err != nil {
			t.Fatalf("UpsertRoute(%q) error = %v", name, err)
		}
	}

	routes, err := tdb.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("ListRoutes() error = %v", err)
	}

	want := []string{"anchorage", "sandbar", "venice-run"}
	if len(routes) != len(want) {
		t.Fatalf("ListRoutes() returned %d routes, want %d", len(routes), len(want))
	}
	for i, name := range want {
		if routes[i].Name != name {
			t.Errorf("routes[%d].Name = %q, want %q", i, routes[i].Name, name)
		}
	}
}

func TestTripDB_DeleteRoute(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	route := testRoute("sandbar")
	if err := tdb.UpsertRoute(ctx, route); err != nil {
		t.Fatalf("UpsertRoute() error = %v", err)
	}
	if err := tdb.DeleteRoute(ctx, route.ID); err != nil {
		t.Fatalf("DeleteRoute() error = %v", err)
	}

	got, err := tdb.GetRouteByName(ctx, "sandbar")
	if err != nil {
		t.Fatalf("GetRouteByName() error = %v", err)
	}
	if got != nil {
		t.Error("route still present after DeleteRoute()")
	}
}

func TestTripDB_Boats(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	boats := []*model.Boat{
		{ID: "b1", Profile: model.BoatProfile{Name: "skiff", Type: "skiff", LengthMeters: 5.2, BeamMeters: 2.0, DraftMeters: 0.3}},
		{ID: "b2", Profile: model.BoatProfile{Name: "cruiser", Type: "cruiser", LengthMeters: 11.5, BeamMeters: 3.8, DraftMeters: 1.1}},
	}
	for _, b := range boats {
		if err := tdb.UpsertBoat(ctx, b); err != nil {
			t.Fatalf("UpsertBoat(%q) error = %v", b.Profile.Name, err)
		}
	}

	got, err := tdb.ListBoats(ctx)
	if err != nil {
		t.Fatalf("ListBoats() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListBoats() returned %d boats, want 2", len(got))
	}
	// Ordered by name: cruiser before skiff.
	if got[0].Profile.Name != "cruiser" {
		t.Errorf("first boat = %q, want %q", got[0].Profile.Name, "cruiser")
	}
	if got[1].Profile.LengthMeters != 5.2 {
		t.Errorf("skiff length = %v, want 5.2", got[1].Profile.LengthMeters)
	}

	// Upsert replaces the profile in place.
	boats[0].Profile.LengthMeters = 5.5
	if err := tdb.UpsertBoat(ctx, boats[0]); err != nil {
		t.Fatalf("UpsertBoat() update error = %v", err)
	}
	got, err = tdb.ListBoats(ctx)
	if err != nil {
		t.Fatalf("ListBoats() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListBoats() returned %d boats after update, want 2", len(got))
	}

	if err := tdb.DeleteBoat(ctx, "b2"); err != nil {
		t.Fatalf("DeleteBoat() error = %v", err)
	}
	got, err = tdb.ListBoats(ctx)
	if err != nil {
		t.Fatalf("ListBoats() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListBoats() returned %d boats after delete, want 1", len(got))
	}
}

func testTrip(routeName string, scoredAt time.Time, scores ...float64) *model.Trip {
	trip := &model.Trip{
		RouteName:  routeName,
		Departure:  scoredAt.Add(time.Hour),
		SpeedKnots: 8,
		ScoredAt:   scoredAt,
	}
	for i, score := range scores {
		trip.Samples = append(trip.Samples, model.ScorePoint{
			Point: model.RoutePoint{Lat: 27.3 - float64(i)*0.01, Lon: -82.5},
			ETA:   trip.Departure.Add(time.Duration(i) * 10 * time.Minute),
			Score: score,
			Label: model.LabelForScore(score).String(),
		})
	}
	return trip
}

func TestTripDB_SaveTrip(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	scoredAt := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	trip := testTrip("sandbar", scoredAt, 85, 72, 38)

	if err := tdb.SaveTrip(ctx, trip); err != nil {
		t.Fatalf("SaveTrip() error = %v", err)
	}

	got, err := tdb.LatestTrip(ctx, "sandbar")
	if err != nil {
		t.Fatalf("LatestTrip() error = %v", err)
	}
	if got == nil {
		t.Fatal("LatestTrip() = nil, want trip")
	}
	if len(got.Samples) != 3 {
		t.Fatalf("trip has %d samples, want 3", len(got.Samples))
	}
	if got.Samples[0].Score != 85 {
		t.Errorf("first sample score = %v, want 85", got.Samples[0].Score)
	}
	if got.Samples[2].Label != "avoid" {
		t.Errorf("third sample label = %q, want %q", got.Samples[2].Label, "avoid")
	}
}

func TestTripDB_LatestTrip_PicksNewest(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	if err := tdb.SaveTrip(ctx, testTrip("sandbar", base, 50)); err != nil {
		t.Fatalf("SaveTrip() error = %v", err)
	}
	if err := tdb.SaveTrip(ctx, testTrip("sandbar", base.Add(2*time.Hour), 90)); err != nil {
		t.Fatalf("SaveTrip() error = %v", err)
	}

	got, err := tdb.LatestTrip(ctx, "sandbar")
	if err != nil {
		t.Fatalf("LatestTrip() error = %v", err)
	}
	if got == nil {
		t.Fatal("LatestTrip() = nil, want trip")
	}
	if got.Samples[0].Score != 90 {
		t.Errorf("latest trip score = %v, want 90", got.Samples[0].Score)
	}
}

func TestTripDB_LatestTrip_NotFound(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)

	got, err := tdb.LatestTrip(context.Background(), "no-such-route")
	if err != nil {
		t.Fatalf("LatestTrip() error = %v", err)
	}
	if got != nil {
		t.Errorf("LatestTrip() = %v, want nil", got)
	}
}

func TestTripDB_TripHistory(t *testing.T) {
	t.Parallel()

	tdb := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	if err := tdb.SaveTrip(ctx, testTrip("sandbar", base, 85, 72)); err != nil {
		t.Fatalf("SaveTrip() error = %v", err)
	}
	if err := tdb.SaveTrip(ctx, testTrip("sandbar", base.Add(time.Hour), 30, 35)); err != nil {
		t.Fatalf("SaveTrip() error = %v", err)
	}
	if err := tdb.SaveTrip(ctx, testTrip("other", base, 50)); err != nil {
		t.Fatalf("SaveTrip() error = %v", err)
	}

	history, err := tdb.TripHistory(ctx, "sandbar")
	if err != nil {
		t.Fatalf("TripHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("TripHistory() returned %d entries, want 2", len(history))
	}
	// Most recent first.
	if !history[0].ScoredAt.After(history[1].ScoredAt) {
		t.Errorf("history not sorted by scored_at descending: %v before %v",
			history[0].ScoredAt, history[1].ScoredAt)
	}
	if history[0].LabelSummary["avoid"] != 2 {
		t.Errorf("newest trip avoid count = %d, want 2", history[0].LabelSummary["avoid"])
	}
	if history[1].LabelSummary["great"] != 1 {
		t.Errorf("oldest trip great count = %d, want 1", history[1].LabelSummary["great"])
	}

	// Full trip can be loaded back from its metadata ID.
	full, err := tdb.GetTripByID(ctx, history[1].ID)
	if err != nil {
		t.Fatalf("GetTripByID() error = %v", err)
	}
	if full == nil {
		t.Fatal("GetTripByID() = nil, want trip")
	}
	if len(full.Samples) != 2 {
		t.Errorf("trip has %d samples, want 2", len(full.Samples))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "sqlite default format",
			input: "2026-06-01 09:30:00",
			want:  time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "iso 8601 with z",
			input: "2026-06-01T09:30:00Z",
			want:  time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2026-06-01T09:30:00-04:00",
			want:  time.Date(2026, 6, 1, 9, 30, 0, 0, time.FixedZone("", -4*60*60)),
		},
		{
			name:  "unparseable returns zero",
			input: "not a timestamp",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
