package trip

import (
	"context"
	"log/slog"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// Step defines the interface that all workflow steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// trip from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., conditional steps)
type Step interface {
	// Do executes the workflow step.
	// It receives the context for cancellation, and the trip to modify.
	// Returns an error if the step fails critically; non-critical issues
	// should be recorded on the trip and return nil.
	Do(ctx context.Context, trip *model.Trip) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution even
// when a step fails. Failed steps are logged and their errors are recorded
// on the trip, but subsequent steps still execute.
//
// The default is to stop on error because every step after sampling depends
// on the output of the one before it; only rendering-adjacent steps can
// meaningfully run past a failure.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps handle their own timeouts. This allows graceful
// cleanup between steps while still respecting cancellation.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete (errors are recorded on the trip).
func (p *Pipeline) Execute(ctx context.Context, trip *model.Trip) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("workflow cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"route", trip.RouteName,
		)

		if err := step.Do(ctx, trip); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"route", trip.RouteName,
				"error", err,
			)

			trip.Error = err
			trip.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		}

		trip.Steps = append(trip.Steps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
