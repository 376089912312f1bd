// Package geocode provides a minimal Nominatim (OpenStreetMap) search
// client so users can type "venice inlet" instead of coordinates.
//
// Nominatim's usage policy requires a descriptive User-Agent and modest
// request rates; a CLI invoked by hand stays well within both.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// defaultTimeout bounds a single search request.
const defaultTimeout = 10 * time.Second

// userAgent identifies the client per Nominatim's usage policy.
const userAgent = "boatride/1.0 (+https://github.com/cmpeavlerjr72/boat-ride-app)"

// Place is one geocoding result.
type Place struct {
	// DisplayName is the full human-readable place name.
	DisplayName string

	// Point is the place's coordinate.
	Point model.RoutePoint

	// Type is the OSM feature type (e.g. "bay", "marina", "city").
	Type string

	// Importance is Nominatim's 0-1 relevance ranking.
	Importance float64
}

// Client searches Nominatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different Nominatim instance.
// Used by tests and by users running their own instance.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a geocoding client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up places matching the free-form query, returning at most
// limit results ordered by Nominatim's relevance ranking.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if query == "" {
		return nil, fmt.Errorf("empty geocoding query")
	}
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck // best-effort error context
		return nil, fmt.Errorf("geocoding service returned %d: %s", resp.StatusCode, body)
	}

	// Nominatim returns lat/lon as strings
	var payload []struct {
		DisplayName string  `json:"display_name"`
		Lat         string  `json:"lat"`
		Lon         string  `json:"lon"`
		Type        string  `json:"type"`
		Importance  float64 `json:"importance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	places := make([]Place, 0, len(payload))
	for _, item := range payload {
		lat, latErr := strconv.ParseFloat(item.Lat, 64)
		lon, lonErr := strconv.ParseFloat(item.Lon, 64)
		if latErr != nil || lonErr != nil {
			// Skip malformed entries rather than failing the whole search
			continue
		}
		places = append(places, Place{
			DisplayName: item.DisplayName,
			Point:       model.RoutePoint{Lat: lat, Lon: lon},
			Type:        item.Type,
			Importance:  item.Importance,
		})
	}

	return places, nil
}
