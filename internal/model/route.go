package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedRoute is a named route stored by the backend (and mirrored in the
// local cache) for the authenticated user.
type SavedRoute struct {
	// ID is the route identifier. The backend accepts client-generated
	// UUIDs on save, which lets the local cache and the backend share IDs.
	ID string `json:"id"`

	// Name is the user-facing route name (e.g. "Marina to Sandbar").
	Name string `json:"name"`

	// Points is the ordered list of route points the user placed.
	Points []RoutePoint `json:"points"`

	// CreatedAt is when the route was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the route was last modified.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewSavedRoute creates a SavedRoute with a fresh client-generated ID.
func NewSavedRoute(name string, points []RoutePoint) *SavedRoute {
	now := time.Now().UTC()
	return &SavedRoute{
		ID:        uuid.NewString(),
		Name:      name,
		Points:    points,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
