package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/fundboard/internal/model"
)

func batchCampaigns() []model.Campaign {
	return []model.Campaign{
		{Title: "A", URL: "https://example.org/a", AmountRaised: 100, Goal: 1000, DifferenceFromGoal: 900},
		{Title: "B", URL: "https://example.org/b", AmountRaised: 250, Goal: 500, DifferenceFromGoal: 250},
		{Title: "C", URL: "https://example.org/c", AmountRaised: 3000, Goal: 5000, DifferenceFromGoal: 2000},
		{Title: "D", URL: "https://example.org/d", AmountRaised: 400, Goal: 400, DifferenceFromGoal: 0},
	}
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil)

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != 4 {
			t.Errorf("expected default concurrency 4, got %d", bp.concurrency)
		}
		if bp.pipelineFactory().StepCount() != 2 {
			t.Error("nil factory should fall back to the default pipeline")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil, WithConcurrency(2))
		if bp.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil, WithConcurrency(0))
		if bp.concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", bp.concurrency)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil, WithBatchLogger(nil))
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("matches Apply for every query", func(t *testing.T) {
		t.Parallel()

		queries := AllQueries()
		results, err := NewBatchProcessor(nil).ProcessBatch(context.Background(), batchCampaigns(), queries)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(queries) {
			t.Fatalf("expected %d results, got %d", len(queries), len(results))
		}

		for i, q := range queries {
			want, err := Apply(batchCampaigns(), q)
			if err != nil {
				t.Fatal(err)
			}
			if results[i].Query != q {
				t.Errorf("result[%d] query = %v, want %v", i, results[i].Query, q)
			}
			if diff := cmp.Diff(want.Titles(), results[i].Titles()); diff != "" {
				t.Errorf("result[%d] (%s) mismatch (-want +got):\n%s", i, q, diff)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var maxConcurrent atomic.Int32
		var currentConcurrent atomic.Int32
		var mu sync.Mutex

		bp := NewBatchProcessor(
			func() *Pipeline {
				p := New()
				p.AddStep(&mockStep{
					name: "concurrent-counter",
					doFunc: func(_ *model.Listing) error {
						current := currentConcurrent.Add(1)

						mu.Lock()
						if current > maxConcurrent.Load() {
							maxConcurrent.Store(current)
						}
						mu.Unlock()

						time.Sleep(20 * time.Millisecond)

						currentConcurrent.Add(-1)
						return nil
					},
				})
				return p
			},
			WithConcurrency(2),
		)

		queries := append(AllQueries(), AllQueries()...)
		if _, err := bp.ProcessBatch(context.Background(), batchCampaigns(), queries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if maxConcurrent.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", maxConcurrent.Load())
		}
	})

	t.Run("invalid query fails the batch", func(t *testing.T) {
		t.Parallel()

		queries := []model.Query{
			model.DefaultQuery(),
			{Key: "goal", Direction: model.Ascending},
		}

		results, err := NewBatchProcessor(nil).ProcessBatch(context.Background(), batchCampaigns(), queries)
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if results != nil {
			t.Error("expected no results on failure")
		}
	})

	t.Run("step failure fails the batch", func(t *testing.T) {
		t.Parallel()

		errStep := errors.New("simulated failure")
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "fails-when-funded-shown",
				doFunc: func(listing *model.Listing) error {
					if listing.Query.IncludeFunded {
						return errStep
					}
					return nil
				},
			})
			return p
		})

		if _, err := bp.ProcessBatch(context.Background(), batchCampaigns(), AllQueries()); !errors.Is(err, errStep) {
			t.Errorf("expected step error, got %v", err)
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var startedCount atomic.Int32
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "counter",
				doFunc: func(_ *model.Listing) error {
					startedCount.Add(1)
					return nil
				},
			})
			return p
		})

		_, err := bp.ProcessBatch(ctx, batchCampaigns(), AllQueries())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if startedCount.Load() != 0 {
			t.Errorf("expected no evaluations after cancellation, got %d", startedCount.Load())
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests callback-based processing.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	var callbackCount atomic.Int32
	var mu sync.Mutex
	seen := make(map[int]bool)

	err := NewBatchProcessor(nil).ProcessBatchWithCallback(
		context.Background(),
		batchCampaigns(),
		AllQueries(),
		func(_ *model.Listing, index int) {
			callbackCount.Add(1)
			mu.Lock()
			seen[index] = true
			mu.Unlock()
		},
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callbackCount.Load() != 8 {
		t.Errorf("expected 8 callbacks, got %d", callbackCount.Load())
	}
	for i := range AllQueries() {
		if !seen[i] {
			t.Errorf("missing callback for index %d", i)
		}
	}
}

func TestAllQueries(t *testing.T) {
	t.Parallel()

	queries := AllQueries()
	if len(queries) != 8 {
		t.Fatalf("expected 8 queries, got %d", len(queries))
	}

	unique := make(map[model.Query]bool)
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			t.Errorf("invalid query %v: %v", q, err)
		}
		unique[q] = true
	}
	if len(unique) != 8 {
		t.Errorf("expected 8 distinct queries, got %d", len(unique))
	}
	if queries[0] != model.DefaultQuery() {
		t.Errorf("first query = %v, want the default", queries[0])
	}
}
