package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is a crowd-sourced condition report: a user observation tied to a
// point on the water. Reports feed back into backend scoring and are shown
// to nearby users.
type Report struct {
	// ID is the report identifier; client-generated on submit.
	ID string `json:"id"`

	// Point is where the condition was observed.
	Point RoutePoint `json:"point"`

	// Category classifies the observation ("chop", "debris", "fog",
	// "traffic", "calm", ...). The backend treats unknown categories
	// as informational.
	Category string `json:"category"`

	// Message is the free-form observation text.
	Message string `json:"message,omitempty"`

	// ObservedAt is when the condition was observed.
	ObservedAt time.Time `json:"observed_at"`
}

// NewReport creates a Report with a fresh ID observed now.
func NewReport(point RoutePoint, category, message string) *Report {
	return &Report{
		ID:         uuid.NewString(),
		Point:      point,
		Category:   category,
		Message:    message,
		ObservedAt: time.Now().UTC(),
	}
}

// UserProfile is the authenticated user's profile as returned by
// GET /profiles/me. Optional fields stay pointers so that PATCH-style
// updates can distinguish "unset" from "clear".
type UserProfile struct {
	// ID is the backend user identifier.
	ID string `json:"id"`

	// DisplayName is the user-facing name.
	DisplayName string `json:"display_name,omitempty"`

	// HomePort is the user's usual departure point, if set.
	HomePort *RoutePoint `json:"home_port,omitempty"`

	// DefaultBoatID references the boat used when a scoring request
	// does not name one.
	DefaultBoatID string `json:"default_boat_id,omitempty"`
}
