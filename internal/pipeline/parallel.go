package pipeline

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Parallel runs its steps concurrently and waits for all of them. It is a
// Step itself, so a pipeline can mix sequential and concurrent stages.
//
// The group is a plain errgroup.Group: a failing step does not cancel its
// siblings. All errors are joined.
type Parallel struct {
	steps []Step
}

// NewParallel groups steps to run concurrently.
func NewParallel(steps ...Step) *Parallel {
	return &Parallel{steps: steps}
}

// Name returns the names of the grouped steps joined with '+'.
func (p *Parallel) Name() string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Do runs every step and returns their joined errors.
func (p *Parallel) Do(ctx context.Context, state *State) error {
	errs := make([]error, len(p.steps))

	var g errgroup.Group
	for i, s := range p.steps {
		g.Go(func() error {
			errs[i] = s.Do(ctx, state)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // errors are collected per slot

	return errors.Join(errs...)
}
