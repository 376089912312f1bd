package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// ScoreRequest is the body for POST /score-route. The client does the
// sampling (interval derivation, per-sample ETA and coordinate); the backend
// scores each sample against its weather/tide fusion.
type ScoreRequest struct {
	// Samples are the sampled route points with the time the boat is
	// expected to pass each one.
	Samples []ScoreSample `json:"samples"`

	// SpeedKnots is the assumed cruising speed, which the backend uses to
	// weight heading-relative chop.
	SpeedKnots float64 `json:"speed_knots"`

	// Boat personalizes the scoring thresholds.
	Boat model.BoatProfile `json:"boat"`
}

// ScoreSample is one sampled point in a ScoreRequest.
type ScoreSample struct {
	Point model.RoutePoint `json:"point"`
	Time  time.Time        `json:"time"`
}

// ScoreResponse is the body of a successful POST /score-route.
// Results come back in request order, one per sample.
type ScoreResponse struct {
	Results []ScoreResult `json:"results"`
}

// ScoreResult is the backend's verdict for one sample.
type ScoreResult struct {
	// Score is the 0-100 ride-quality value.
	Score float64 `json:"score"`

	// Label is the categorical rating ("great", "ok", "rough", "avoid").
	Label string `json:"label"`

	// Detail is a short contextual explanation, e.g.
	// "2.1 ft wind chop against ebb tide".
	Detail string `json:"detail,omitempty"`
}

// ScoreRoute scores the given samples. The backend guarantees one result per
// sample in order; the client verifies the count so a truncated response
// cannot silently mis-align scores with points.
func (c *Client) ScoreRoute(ctx context.Context, req ScoreRequest) ([]ScoreResult, error) {
	if len(req.Samples) == 0 {
		return nil, fmt.Errorf("score request has no samples")
	}

	var resp ScoreResponse
	if err := c.do(ctx, http.MethodPost, "/score-route", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to score route: %w", err)
	}

	if len(resp.Results) != len(req.Samples) {
		return nil, fmt.Errorf("backend returned %d results for %d samples",
			len(resp.Results), len(req.Samples))
	}

	return resp.Results, nil
}
