package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for struct tag validation.
// validator.New is relatively expensive, so we create it once.
var validate = validator.New()

// BoatProfile holds the dimensional and safety-threshold parameters sent to
// the backend to personalize scoring. All dimensions are metric; wind speed
// is in knots to match marine forecasts.
type BoatProfile struct {
	// Name identifies the boat (e.g. "Sea Ray 220").
	Name string `json:"name" validate:"required"`

	// Type is the hull category the backend models ("center-console",
	// "pontoon", "cruiser", "sailboat", ...). Free-form; the backend falls
	// back to a generic hull when it does not recognize the value.
	Type string `json:"type,omitempty"`

	// LengthMeters is the boat length overall.
	LengthMeters float64 `json:"length_meters" validate:"required,gt=0,lte=200"`

	// BeamMeters is the boat width at the widest point.
	BeamMeters float64 `json:"beam_meters,omitempty" validate:"omitempty,gt=0,lte=50"`

	// DraftMeters is how deep the hull sits in the water.
	DraftMeters float64 `json:"draft_meters,omitempty" validate:"omitempty,gt=0,lte=30"`

	// MaxWaveHeightMeters is the owner's comfort ceiling for wave height.
	// Scores degrade sharply as forecast waves approach this value.
	MaxWaveHeightMeters float64 `json:"max_wave_height_meters,omitempty" validate:"omitempty,gt=0"`

	// MaxWindSpeedKnots is the owner's comfort ceiling for sustained wind.
	MaxWindSpeedKnots float64 `json:"max_wind_speed_knots,omitempty" validate:"omitempty,gt=0"`

	// MinDepthMeters is the minimum safe water depth for this hull.
	MinDepthMeters float64 `json:"min_depth_meters,omitempty" validate:"omitempty,gt=0"`
}

// Validate checks the profile against its struct tags.
// The backend re-validates; this exists to fail fast with a readable
// message before a network round trip.
func (b BoatProfile) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid boat profile: %w", err)
	}
	return nil
}

// Boat is a boat record stored by the backend for the authenticated user.
type Boat struct {
	// ID is the backend-assigned identifier.
	ID string `json:"id"`

	// Profile holds the scoring parameters for this boat.
	Profile BoatProfile `json:"profile"`
}
