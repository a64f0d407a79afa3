package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/fundboard/internal/model"
)

// BatchProcessor computes listings for many queries over one dataset
// concurrently. It uses errgroup to manage goroutines and respect the
// concurrency limit.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each query so that no
	// pipeline instance is shared between goroutines.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of queries evaluated at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent evaluations.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// A nil factory means DefaultPipeline.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	if pipelineFactory == nil {
		pipelineFactory = func() *Pipeline { return DefaultPipeline() }
	}

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

// ProcessBatch evaluates every query against campaigns.
// results[i] is the listing for queries[i]. The first failing query cancels
// the rest and its error is returned with no results, since a bad query is
// a caller mistake rather than a per-item outcome.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, campaigns []model.Campaign, queries []model.Query) ([]*model.Listing, error) {
	bp.logger.Debug("starting batch processing",
		"queries", len(queries),
		"campaigns", len(campaigns),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	results := make([]*model.Listing, len(queries))

	err := bp.ProcessBatchWithCallback(ctx, campaigns, queries, func(listing *model.Listing, index int) {
		results[index] = listing
	})
	if err != nil {
		return nil, err
	}

	bp.logger.Debug("batch processing complete",
		"queries", len(queries),
		"elapsed", time.Since(startTime),
	)

	return results, nil
}

// ProcessBatchWithCallback evaluates every query and calls callback with
// each listing and the index of its query.
//
// The callback is called from the goroutine that produced the listing, so
// it must be safe for concurrent use if it touches shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	campaigns []model.Campaign,
	queries []model.Query,
	callback func(listing *model.Listing, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, q := range queries {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			listing, err := bp.pipelineFactory().Run(campaigns, q)
			if err != nil {
				bp.logger.Warn("query failed",
					"query", q.String(),
					"index", i,
					"error", err,
				)
				return err
			}

			callback(listing, i)
			return nil
		})
	}

	return g.Wait()
}

// AllQueries returns every combination of sort key, direction and the fully
// funded toggle, in a fixed order.
func AllQueries() []model.Query {
	queries := make([]model.Query, 0, 8)
	for _, include := range []bool{false, true} {
		for _, key := range model.SortKeys() {
			for _, dir := range []model.Direction{model.Ascending, model.Descending} {
				queries = append(queries, model.Query{Key: key, Direction: dir, IncludeFunded: include})
			}
		}
	}
	return queries
}
