package pipeline

import (
	"errors"
	"testing"

	"github.com/nao1215/fundboard/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(listing *model.Listing) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(listing *model.Listing) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(listing)
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
			t.Error("expected default logger to be set")
		}
	})

	t.Run("default pipeline filters then sorts", func(t *testing.T) {
		t.Parallel()

		names := DefaultPipeline().StepNames()
		if len(names) != 2 || names[0] != "filter_funded" || names[1] != "sort" {
			t.Errorf("unexpected step order: %v", names)
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
		p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"}, &mockStep{name: "third"})

		names := p.StepNames()
		expected := []string{"first", "second", "third"}
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
		for _, name := range []string{"step-1", "step-2", "step-3"} {
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ *model.Listing) error {
					executionOrder = append(executionOrder, name)
					return nil
				},
			})
		}

		listing := model.NewListing(model.DefaultQuery(), nil)
		if err := p.Execute(listing); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(executionOrder) != 3 {
			t.Fatalf("expected 3 executions, got %d", len(executionOrder))
		}
		if len(listing.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %d", len(listing.PerformedSteps))
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		failing := &mockStep{name: "failing", doFunc: func(_ *model.Listing) error { return stepErr }}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		err := p.Execute(model.NewListing(model.DefaultQuery(), nil))
		if !errors.Is(err, stepErr) {
			t.Errorf("expected step error, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected later steps not to run")
		}
	})
}
