package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// ListBoats returns the authenticated user's boats.
func (c *Client) ListBoats(ctx context.Context) ([]model.Boat, error) {
	var boats []model.Boat
	if err := c.do(ctx, http.MethodGet, "/boats", nil, &boats); err != nil {
		return nil, fmt.Errorf("failed to list boats: %w", err)
	}
	return boats, nil
}

// CreateBoat registers a boat profile and returns the stored record.
func (c *Client) CreateBoat(ctx context.Context, profile model.BoatProfile) (*model.Boat, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	var boat model.Boat
	if err := c.do(ctx, http.MethodPost, "/boats", profile, &boat); err != nil {
		return nil, fmt.Errorf("failed to create boat: %w", err)
	}
	return &boat, nil
}

// DeleteBoat removes a boat by ID.
func (c *Client) DeleteBoat(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/boats/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete boat %s: %w", id, err)
	}
	return nil
}

// ListRoutes returns the user's saved routes.
func (c *Client) ListRoutes(ctx context.Context) ([]model.SavedRoute, error) {
	var routes []model.SavedRoute
	if err := c.do(ctx, http.MethodGet, "/routes", nil, &routes); err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

// SaveRoute stores a route. The backend accepts the client-generated ID,
// which keeps the local cache and the backend in sync.
func (c *Client) SaveRoute(ctx context.Context, route *model.SavedRoute) (*model.SavedRoute, error) {
	var saved model.SavedRoute
	if err := c.do(ctx, http.MethodPost, "/routes", route, &saved); err != nil {
		return nil, fmt.Errorf("failed to save route %q: %w", route.Name, err)
	}
	return &saved, nil
}

// DeleteRoute removes a saved route by ID.
func (c *Client) DeleteRoute(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/routes/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete route %s: %w", id, err)
	}
	return nil
}

// ListReports returns crowd-sourced condition reports within radiusMeters of
// the given point, most recent first.
func (c *Client) ListReports(ctx context.Context, near model.RoutePoint, radiusMeters float64) ([]model.Report, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(near.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(near.Lon, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radiusMeters, 'f', -1, 64))

	var reports []model.Report
	if err := c.do(ctx, http.MethodGet, "/reports?"+q.Encode(), nil, &reports); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// SubmitReport publishes a crowd-sourced condition report.
func (c *Client) SubmitReport(ctx context.Context, report *model.Report) error {
	if err := report.Point.Validate(); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/reports", report, nil); err != nil {
		return fmt.Errorf("failed to submit report: %w", err)
	}
	return nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.do(ctx, http.MethodGet, "/profiles/me", nil, &profile); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// UpdateMe updates the authenticated user's profile and returns the stored
// version.
func (c *Client) UpdateMe(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	var updated model.UserProfile
	if err := c.do(ctx, http.MethodPut, "/profiles/me", profile, &updated); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &updated, nil
}
