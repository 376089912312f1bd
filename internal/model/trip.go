package model

import "time"

// Trip is the accumulated result of scoring a route. It starts as the user's
// input (points, departure, speed, boat) and is filled in by the scoring
// workflow: normalized points, sampling parameters, per-sample scores, and
// display colors.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage, mirroring how the whole
// result travels together through the workflow.
type Trip struct {
	// RouteName is the saved-route name this trip was scored from,
	// or empty for an ad-hoc route.
	RouteName string `json:"route_name,omitempty"`

	// Points is the normalized route polyline.
	Points []RoutePoint `json:"points"`

	// Departure is when the boat leaves the first point.
	Departure time.Time `json:"departure"`

	// SpeedKnots is the assumed cruising speed.
	SpeedKnots float64 `json:"speed_knots"`

	// Boat holds the scoring parameters sent to the backend.
	Boat BoatProfile `json:"boat"`

	// DistanceMeters is the haversine length of the route polyline.
	DistanceMeters float64 `json:"distance_meters"`

	// Duration is the estimated trip duration at SpeedKnots.
	Duration time.Duration `json:"duration_ns"`

	// SampleInterval is the time between scored samples.
	SampleInterval time.Duration `json:"sample_interval_ns"`

	// Samples holds one scored point per sample, in route order.
	Samples []ScorePoint `json:"samples,omitempty"`

	// ScoredAt is when the backend scored this trip.
	ScoredAt time.Time `json:"scored_at,omitempty"`

	// Steps records which workflow steps ran, in order.
	Steps []string `json:"steps,omitempty"`

	// Error holds the first step failure, if any. Excluded from JSON;
	// ErrorMessage carries the serializable form.
	Error error `json:"-"`

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewTrip creates a Trip for the given raw route points.
func NewTrip(points []RoutePoint) *Trip {
	return &Trip{Points: points}
}

// Arrival returns the estimated arrival time.
func (t *Trip) Arrival() time.Time {
	return t.Departure.Add(t.Duration)
}

// LabelCounts returns how many samples fall in each label band.
// The map keys are wire labels ("great", "ok", "rough", "avoid").
func (t *Trip) LabelCounts() map[string]int {
	counts := map[string]int{
		LabelGreat.String(): 0,
		LabelOK.String():    0,
		LabelRough.String(): 0,
		LabelAvoid.String(): 0,
	}
	for _, s := range t.Samples {
		counts[s.ScoreLabel().String()]++
	}
	return counts
}

// WorstLabel returns the lowest label across all samples.
// A trip with no samples reports LabelAvoid.
func (t *Trip) WorstLabel() ScoreLabel {
	if len(t.Samples) == 0 {
		return LabelAvoid
	}
	worst := LabelGreat
	for _, s := range t.Samples {
		if l := s.ScoreLabel(); l < worst {
			worst = l
		}
	}
	return worst
}

// AverageScore returns the mean sample score, or 0 for an unscored trip.
func (t *Trip) AverageScore() float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range t.Samples {
		sum += s.Score
	}
	return sum / float64(len(t.Samples))
}
