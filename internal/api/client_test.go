package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// newTestClient creates a Client pointed at the given test server with
// retries tightened so failure tests stay fast.
func newTestClient(t *testing.T, srv *httptest.Server, token string) *Client {
	t.Helper()

	c, err := New(srv.URL, token, WithBackoff(BackoffConfig{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// TestNew tests client construction validation.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty base URL", func(t *testing.T) {
		t.Parallel()
		if _, err := New("", "token"); !errors.Is(err, ErrNoBaseURL) {
			t.Errorf("expected ErrNoBaseURL, got %v", err)
		}
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Parallel()
		c, err := New("https://api.example.com/", "token")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.BaseURL() != "https://api.example.com" {
			t.Errorf("expected trimmed base URL, got %q", c.BaseURL())
		}
	})
}

// TestClientAuth tests bearer token handling.
func TestClientAuth(t *testing.T) {
	t.Parallel()

	t.Run("sends bearer token and user agent", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte(`[]`)) //nolint:errcheck // test server
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "secret-token")
		if _, err := c.ListBoats(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotAuth != "Bearer secret-token" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
		if gotUA != DefaultUserAgent {
			t.Errorf("expected default user agent, got %q", gotUA)
		}
	})

	t.Run("fails fast without token", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called.Store(true)
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "")
		_, err := c.ListBoats(context.Background())
		if !errors.Is(err, ErrNoToken) {
			t.Errorf("expected ErrNoToken, got %v", err)
		}
		if called.Load() {
			t.Error("expected no network call without a token")
		}
	})

	t.Run("maps 401 to ErrUnauthorized", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"token expired"}`)) //nolint:errcheck // test server
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "stale")
		_, err := c.ListBoats(context.Background())
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if apiErr.Message != "token expired" {
			t.Errorf("expected backend message, got %q", apiErr.Message)
		}
	})
}

// TestClientRetry tests the retry loop for transient failures.
func TestClientRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`[]`)) //nolint:errcheck // test server
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "token")
		if _, err := c.ListBoats(context.Background()); err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if calls.Load() != 2 {
			t.Errorf("expected 2 calls, got %d", calls.Load())
		}
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "token")
		_, err := c.ListBoats(context.Background())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 call, got %d", calls.Load())
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "token")
		_, err := c.ListBoats(context.Background())
		if !errors.Is(err, ErrServerError) {
			t.Errorf("expected ErrServerError, got %v", err)
		}
		// MaxRetries=1 means one initial attempt plus one retry
		if calls.Load() != 2 {
			t.Errorf("expected 2 calls, got %d", calls.Load())
		}
	})
}

// TestScoreRoute tests the score endpoint including result alignment.
func TestScoreRoute(t *testing.T) {
	t.Parallel()

	samples := []ScoreSample{
		{Point: model.RoutePoint{Lat: 27.3, Lon: -82.5}, Time: time.Now()},
		{Point: model.RoutePoint{Lat: 27.4, Lon: -82.6}, Time: time.Now().Add(20 * time.Minute)},
	}
	req := ScoreRequest{
		Samples:    samples,
		SpeedKnots: 15,
		Boat:       model.BoatProfile{Name: "test", LengthMeters: 6},
	}

	t.Run("returns results in order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/score-route" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			if r.Method != http.MethodPost {
				t.Errorf("unexpected method %q", r.Method)
			}
			w.Write([]byte(`{"results":[` + //nolint:errcheck // test server
				`{"score":88,"label":"great","detail":"light chop"},` +
				`{"score":42,"label":"rough","detail":"wind against tide"}]}`))
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "token")
		results, err := c.ScoreRoute(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Score != 88 || results[0].Label != "great" {
			t.Errorf("unexpected first result: %+v", results[0])
		}
		if results[1].Detail != "wind against tide" {
			t.Errorf("unexpected second detail: %q", results[1].Detail)
		}
	})

	t.Run("rejects misaligned result count", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"results":[{"score":88,"label":"great"}]}`)) //nolint:errcheck // test server
		}))
		defer srv.Close()

		c := newTestClient(t, srv, "token")
		if _, err := c.ScoreRoute(context.Background(), req); err == nil {
			t.Error("expected error for truncated results")
		}
	})

	t.Run("rejects empty sample list locally", func(t *testing.T) {
		t.Parallel()

		c, err := New("https://api.example.com", "token")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.ScoreRoute(context.Background(), ScoreRequest{}); err == nil {
			t.Error("expected error for empty samples")
		}
	})
}

// TestListReports tests query parameter encoding for nearby reports.
func TestListReports(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "27.3" || q.Get("lon") != "-82.5" || q.Get("radius") != "5000" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`[{"id":"r1","point":{"lat":27.31,"lon":-82.51},` + //nolint:errcheck // test server
			`"category":"chop","message":"2ft wind chop","observed_at":"2025-06-01T14:00:00Z"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "token")
	reports, err := c.ListReports(context.Background(), model.RoutePoint{Lat: 27.3, Lon: -82.5}, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 || reports[0].Category != "chop" {
		t.Errorf("unexpected reports: %+v", reports)
	}
}
