package pipeline

import (
	"context"
	"errors"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, state *State) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, state *State) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, state)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "alpha"},
			&mockStep{name: "beta"},
			&mockStep{name: "gamma"},
		)

		names := p.StepNames()
		expected := []string{"alpha", "beta", "gamma"}
		if len(names) != len(expected) {
			t.Fatalf("expected %d names, got %d", len(expected), len(names))
		}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New()
		p.AddStep(&mockStep{
			name: "step-1",
			doFunc: func(_ context.Context, _ *State) error {
				executionOrder = append(executionOrder, "step-1")
				return nil
			},
		})
		p.AddStep(&mockStep{
			name: "step-2",
			doFunc: func(_ context.Context, _ *State) error {
				executionOrder = append(executionOrder, "step-2")
				return nil
			},
		})

		if err := p.Execute(context.Background(), NewState("a@example.com")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddSteps(
			&mockStep{
				name: "failing-step",
				doFunc: func(_ context.Context, _ *State) error {
					return expectedErr
				},
			},
			second,
		)

		state := NewState("a@example.com")
		err := p.Execute(context.Background(), state)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if !errors.Is(state.Err, expectedErr) {
			t.Error("expected error to be recorded in state")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "should-run"}

		p := New(WithContinueOnError(true))
		p.AddSteps(
			&mockStep{
				name: "failing-step",
				doFunc: func(_ context.Context, _ *State) error {
					return errors.New("step failed")
				},
			},
			second,
		)

		if err := p.Execute(context.Background(), NewState("a@example.com")); err != nil {
			t.Errorf("expected nil error with continueOnError, got %v", err)
		}
		if second.callCount != 1 {
			t.Error("second step should have been called")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		state := NewState("a@example.com")
		err := p.Execute(ctx, state)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !state.Canceled {
			t.Error("state.Canceled should be true")
		}
	})

	t.Run("records performed steps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "one"}, &mockStep{name: "two"})

		state := NewState("a@example.com")
		if err := p.Execute(context.Background(), state); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(state.PerformedSteps) != 2 || state.PerformedSteps[1] != "two" {
			t.Errorf("unexpected performed steps %v", state.PerformedSteps)
		}
	})
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	t.Run("no report step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "noop"})

		if _, err := p.Run(context.Background(), "a@example.com"); !errors.Is(err, ErrNoReport) {
			t.Errorf("expected ErrNoReport, got %v", err)
		}
	})

	t.Run("step error is returned", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(NewIdentityStep())

		if _, err := p.Run(context.Background(), "not-an-email"); err == nil {
			t.Error("expected validation error")
		}
	})
}
