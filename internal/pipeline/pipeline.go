package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/mailsleuth/internal/model"
)

// ErrNoReport is returned by Run when the pipeline finished without a report
// step having produced one.
var ErrNoReport = errors.New("pipeline produced no report")

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do executes the step. Non-critical failures should be recorded in the
	// state and nil returned.
	Do(ctx context.Context, state *State) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
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
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in order. Cancellation is checked between steps;
// steps handle their own timeouts.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			state.Canceled = true
			return err
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"email", state.Email,
		)

		if err := step.Do(ctx, state); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"email", state.Email,
				"error", err,
			)
			state.Err = err

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"email", state.Email,
			)
		}

		state.PerformedSteps = append(state.PerformedSteps, step.Name())
	}

	return nil
}

// Run investigates email and returns the report built by the last step.
func (p *Pipeline) Run(ctx context.Context, email string) (*model.InvestigationReport, error) {
	state := NewState(email)
	if err := p.Execute(ctx, state); err != nil {
		return nil, err
	}
	if state.Report == nil {
		return nil, ErrNoReport
	}
	return state.Report, nil
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
