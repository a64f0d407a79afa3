package pipeline

import (
	"log/slog"

	"github.com/nao1215/fundboard/internal/model"
)

// Step defines the interface that all engine steps must implement.
// Steps are executed in sequence, with each step receiving the listing
// produced by the previous ones.
type Step interface {
	// Do executes the step against the listing.
	// It may reorder or remove campaigns but must not change their fields.
	Do(listing *model.Listing) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
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
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and stops at the first failure.
// The listing is left as the failing step found it; callers should discard
// it when an error is returned.
func (p *Pipeline) Execute(listing *model.Listing) error {
	for _, step := range p.steps {
		before := len(listing.Campaigns)

		if err := step.Do(listing); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"query", listing.Query.String(),
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"in", before,
			"out", len(listing.Campaigns),
		)

		listing.PerformedSteps = append(listing.PerformedSteps, step.Name())
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

// DefaultPipeline returns the standard engine: filter, then sort.
func DefaultPipeline(opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(NewFilterStep(), NewSortStep())
	return p
}

// Run validates q, copies campaigns into a fresh listing and executes the
// pipeline over it.
func (p *Pipeline) Run(campaigns []model.Campaign, q model.Query) (*model.Listing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	listing := model.NewListing(q, campaigns)
	if err := p.Execute(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Apply produces the display listing for campaigns under query q.
//
// The query is validated before any data is touched, so an unknown sort key
// or direction returns an error wrapping model.ErrInvalidArgument. An empty
// collection yields an empty listing and no error. The campaigns slice is
// never modified.
func Apply(campaigns []model.Campaign, q model.Query, opts ...Option) (*model.Listing, error) {
	return DefaultPipeline(opts...).Run(campaigns, q)
}
