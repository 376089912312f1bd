package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/api"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/geo"
	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// Sampling parameters.
const (
	// MaxSamples caps how many points a trip is scored at. More samples
	// than this adds backend load without changing the rendered picture.
	MaxSamples = 20

	// MinSampleInterval is the floor for the sampling interval. Forecast
	// conditions do not change meaningfully on a finer grid.
	MinSampleInterval = 10 * time.Minute

	// DefaultSpeedKnots is assumed when neither flag, route, nor config
	// supplies a cruising speed.
	DefaultSpeedKnots = 8.0

	// MinSpeedKnots is the floor for cruising speed; below this, duration
	// estimates blow up and the sampling grid degenerates.
	MinSpeedKnots = 1.0

	// departureRounding rounds a defaulted departure up to the next
	// boundary so repeated invocations hit the backend's forecast cache.
	departureRounding = 5 * time.Minute
)

// ErrNoSamples is returned by the score step when sampling produced nothing,
// which means an earlier step was skipped.
var ErrNoSamples = errors.New("trip has no samples: sampling step did not run")

// Scorer requests per-point scores from the backend.
// *api.Client satisfies this; tests substitute a stub.
type Scorer interface {
	ScoreRoute(ctx context.Context, req api.ScoreRequest) ([]api.ScoreResult, error)
}

// Params carries the user-supplied trip parameters into the workflow.
type Params struct {
	// Departure is when the boat leaves. Zero means "now".
	Departure time.Time

	// SpeedKnots is the cruising speed. Zero means use the default.
	SpeedKnots float64

	// Boat personalizes the backend's scoring.
	Boat model.BoatProfile

	// RouteName labels the trip when scoring a saved route.
	RouteName string
}

// collectStep validates and deduplicates the raw route points.
type collectStep struct{}

// Name returns the step name.
func (collectStep) Name() string { return "collect-points" }

// Do normalizes the trip's points and computes the route length.
func (collectStep) Do(_ context.Context, trip *model.Trip) error {
	points, err := model.NormalizeRoute(trip.Points)
	if err != nil {
		return err
	}
	trip.Points = points
	trip.DistanceMeters = geo.PathLength(points)
	return nil
}

// paramsStep derives the departure time and cruising speed.
type paramsStep struct {
	params Params
}

// Name returns the step name.
func (paramsStep) Name() string { return "derive-params" }

// Do fills in departure, speed, boat, and the estimated duration.
func (s paramsStep) Do(_ context.Context, trip *model.Trip) error {
	departure := s.params.Departure
	if departure.IsZero() {
		departure = time.Now().UTC().Truncate(departureRounding).Add(departureRounding)
	}

	speed := s.params.SpeedKnots
	if speed == 0 {
		speed = DefaultSpeedKnots
	}
	if speed < MinSpeedKnots {
		return fmt.Errorf("cruising speed %.1f kn below minimum %.1f kn", speed, MinSpeedKnots)
	}

	trip.RouteName = s.params.RouteName
	trip.Departure = departure
	trip.SpeedKnots = speed
	trip.Boat = s.params.Boat

	seconds := trip.DistanceMeters / geo.KnotsToMetersPerSecond(speed)
	trip.Duration = time.Duration(seconds * float64(time.Second))
	return nil
}

// sampleStep computes the sampling interval and lays out the sample points.
type sampleStep struct{}

// Name returns the step name.
func (sampleStep) Name() string { return "sample-route" }

// Do derives the sampling interval from the trip duration and places one
// sample at departure, one every interval, and one at arrival.
func (sampleStep) Do(_ context.Context, trip *model.Trip) error {
	if trip.Duration <= 0 {
		return fmt.Errorf("trip duration not derived: run the params step first")
	}

	trip.SampleInterval = SampleInterval(trip.Duration)

	speedMS := geo.KnotsToMetersPerSecond(trip.SpeedKnots)
	trip.Samples = trip.Samples[:0]

	for offset := time.Duration(0); offset < trip.Duration; offset += trip.SampleInterval {
		distance := speedMS * offset.Seconds()
		trip.Samples = append(trip.Samples, model.ScorePoint{
			Point:          geo.PointAtDistance(trip.Points, distance),
			ETA:            trip.Departure.Add(offset),
			DistanceMeters: distance,
		})
	}

	// Always sample the arrival point
	trip.Samples = append(trip.Samples, model.ScorePoint{
		Point:          trip.Points[len(trip.Points)-1],
		ETA:            trip.Arrival(),
		DistanceMeters: trip.DistanceMeters,
	})

	return nil
}

// SampleInterval derives the time between scored samples from the trip
// duration: the trip gets at most MaxSamples samples, the interval never
// drops below MinSampleInterval, and it rounds up to a whole minute.
func SampleInterval(duration time.Duration) time.Duration {
	// Ceiling divide: a truncated quotient can leave room for one sample
	// past the cap.
	segments := time.Duration(MaxSamples - 1)
	interval := (duration + segments - 1) / segments
	if interval < MinSampleInterval {
		interval = MinSampleInterval
	}
	if rem := interval % time.Minute; rem != 0 {
		interval += time.Minute - rem
	}
	return interval
}

// scoreStep requests scores from the backend and attaches them in order.
type scoreStep struct {
	scorer Scorer
}

// Name returns the step name.
func (scoreStep) Name() string { return "score-route" }

// Do sends the sampled points to the backend and merges the results.
func (s scoreStep) Do(ctx context.Context, trip *model.Trip) error {
	if len(trip.Samples) == 0 {
		return ErrNoSamples
	}

	req := api.ScoreRequest{
		Samples:    make([]api.ScoreSample, len(trip.Samples)),
		SpeedKnots: trip.SpeedKnots,
		Boat:       trip.Boat,
	}
	for i, sample := range trip.Samples {
		req.Samples[i] = api.ScoreSample{Point: sample.Point, Time: sample.ETA}
	}

	results, err := s.scorer.ScoreRoute(ctx, req)
	if err != nil {
		return err
	}

	for i, result := range results {
		trip.Samples[i].Score = result.Score
		trip.Samples[i].Label = result.Label
		trip.Samples[i].Detail = result.Detail
	}
	trip.ScoredAt = time.Now().UTC()

	return nil
}

// colorizeStep maps each sample's score to its display color.
type colorizeStep struct{}

// Name returns the step name.
func (colorizeStep) Name() string { return "colorize" }

// Do fills in the per-sample colors. Segment gradient colors are derived at
// render time from adjacent samples via model.SegmentColor.
func (colorizeStep) Do(_ context.Context, trip *model.Trip) error {
	for i := range trip.Samples {
		trip.Samples[i].Color = model.ColorForScore(trip.Samples[i].Score)
	}
	return nil
}

// DefaultPipeline assembles the full scoring workflow for the given
// parameters and backend scorer.
func DefaultPipeline(scorer Scorer, params Params, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		collectStep{},
		paramsStep{params: params},
		sampleStep{},
		scoreStep{scorer: scorer},
		colorizeStep{},
	)
	return p
}

// PlanPipeline assembles the workflow without the backend call: collect,
// params, and sampling only. Used by --offline planning and by watch mode
// to validate a route before the first scheduled scoring run.
func PlanPipeline(params Params, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		collectStep{},
		paramsStep{params: params},
		sampleStep{},
	)
	return p
}
