package model

import (
	"strings"
	"time"
)

// ScoreLabel is the categorical rating the backend attaches to a score.
// It mirrors the label values used by the scoring API.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// the wire/display form when needed.
type ScoreLabel int

const (
	// LabelAvoid indicates conditions the boat should not go out in.
	// Scores below 40 fall in this band.
	LabelAvoid ScoreLabel = iota

	// LabelRough indicates an uncomfortable but passable ride.
	// Scores in [40, 60) fall in this band.
	LabelRough

	// LabelOK indicates acceptable conditions for most boats.
	// Scores in [60, 80) fall in this band.
	LabelOK

	// LabelGreat indicates ideal ride conditions.
	// Scores of 80 and above fall in this band.
	LabelGreat
)

// Label band thresholds. The backend computes labels itself; the client
// only derives them for cached records written before labels were stored.
const (
	thresholdGreat = 80
	thresholdOK    = 60
	thresholdRough = 40
)

// String returns the wire form of the label ("avoid", "rough", "ok", "great").
func (l ScoreLabel) String() string {
	switch l {
	case LabelAvoid:
		return "avoid"
	case LabelRough:
		return "rough"
	case LabelOK:
		return "ok"
	case LabelGreat:
		return "great"
	default:
		return "unknown"
	}
}

// ParseScoreLabel converts a wire label to a ScoreLabel.
// Unknown labels map to LabelAvoid so that a malformed response never
// renders a segment as better than it is.
func ParseScoreLabel(s string) ScoreLabel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "great":
		return LabelGreat
	case "ok":
		return LabelOK
	case "rough":
		return LabelRough
	default:
		return LabelAvoid
	}
}

// LabelForScore derives the categorical label for a 0-100 score value.
func LabelForScore(score float64) ScoreLabel {
	switch {
	case score >= thresholdGreat:
		return LabelGreat
	case score >= thresholdOK:
		return LabelOK
	case score >= thresholdRough:
		return LabelRough
	default:
		return LabelAvoid
	}
}

// ScorePoint is a ride-quality score for one sampled route point.
// The backend returns one ScorePoint per sample in route order.
type ScorePoint struct {
	// Point is the sampled coordinate the score applies to.
	Point RoutePoint `json:"point"`

	// ETA is the time the boat is expected to pass this point,
	// derived from the departure time and cruising speed.
	ETA time.Time `json:"eta"`

	// DistanceMeters is the distance from the departure point along the route.
	DistanceMeters float64 `json:"distance_meters"`

	// Score is the 0-100 ride-quality value. Higher is better.
	Score float64 `json:"score"`

	// Label is the categorical rating ("great", "ok", "rough", "avoid").
	Label string `json:"label"`

	// Detail is a short human-readable explanation from the backend,
	// e.g. "2.1 ft wind chop against ebb tide".
	Detail string `json:"detail,omitempty"`

	// Color is the display color for this sample, filled in client-side.
	Color Color `json:"color"`
}

// ScoreLabel returns the parsed categorical label, deriving one from the
// numeric score when the backend (or an old cache record) omitted it.
func (s ScorePoint) ScoreLabel() ScoreLabel {
	if s.Label == "" {
		return LabelForScore(s.Score)
	}
	return ParseScoreLabel(s.Label)
}
