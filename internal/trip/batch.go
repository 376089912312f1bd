package trip

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor scores multiple saved routes concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-trip execution
// 2. It allows different batch strategies (e.g., rate limiting)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each route, so pipeline
	// state never leaks between trips.
	pipelineFactory func(route model.SavedRoute) *Pipeline

	// concurrency is the maximum number of concurrent scoring runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed trips, indexed like the input routes.
	// Access is synchronized via mutex.
	results []*model.Trip
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scoring runs.
// Default is 4 if not specified: the backend rate-limits per token, and a
// handful of saved routes is the common case.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor.
//
// The pipelineFactory function is called once per route so each trip gets a
// fresh pipeline, and per-route overrides (speed, boat) can be applied.
func NewBatchProcessor(pipelineFactory func(route model.SavedRoute) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scores every route concurrently and returns one trip per
// route, in input order.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
//
// Trips are returned even for routes that failed; the failure is recorded
// on the trip. The error return indicates cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, routes []model.SavedRoute) ([]*model.Trip, error) {
	bp.logger.Info("starting batch scoring",
		"total_routes", len(routes),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]*model.Trip, len(routes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, route := range routes {
		i, route := i, route
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			trip := model.NewTrip(route.Points)
			trip.RouteName = route.Name

			pipeline := bp.pipelineFactory(route)
			if err := pipeline.Execute(ctx, trip); err != nil {
				bp.logger.Warn("scoring failed",
					"route", route.Name,
					"error", err,
				)
				// The error is recorded on the trip; keep scoring the rest
			}

			bp.mu.Lock()
			bp.results[i] = trip
			bp.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch scoring complete",
		"total_routes", len(routes),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback scores every route and calls the callback for
// each completed trip. This is useful for streaming output.
//
// The callback receives the trip and the index of the route in the original
// slice. It is called from the goroutine that completed the scoring run, so
// it must be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	routes []model.SavedRoute,
	callback func(trip *model.Trip, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, route := range routes {
		i, route := i, route
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			trip := model.NewTrip(route.Points)
			trip.RouteName = route.Name

			pipeline := bp.pipelineFactory(route)
			_ = pipeline.Execute(ctx, trip) //nolint:errcheck // Error is stored on the trip

			callback(trip, i)

			return nil
		})
	}

	return g.Wait()
}
