package view

import (
	"log/slog"
	"slices"

	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/pipeline"
)

// Controller owns a dataset and the current listing query.
type Controller struct {
	campaigns []model.Campaign
	state     model.Query
	listing   *model.Listing
	pipeOpts  []pipeline.Option
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger passed to the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.pipeOpts = append(c.pipeOpts, pipeline.WithLogger(logger))
	}
}

// New creates a controller over campaigns starting at initial.
// The dataset is copied; later changes to the caller's slice are not seen.
func New(campaigns []model.Campaign, initial model.Query, opts ...Option) (*Controller, error) {
	c := &Controller{
		campaigns: slices.Clone(campaigns),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.set(initial); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns the current query.
func (c *Controller) State() model.Query {
	return c.state
}

// Listing returns the listing for the current state.
func (c *Controller) Listing() *model.Listing {
	return c.listing
}

// Campaigns returns the campaigns of the current listing.
func (c *Controller) Campaigns() []model.Campaign {
	return c.listing.Campaigns
}

// SortBy selects a sort key and direction, leaving the funded toggle alone.
func (c *Controller) SortBy(key model.SortKey, dir model.Direction) error {
	next := c.state
	next.Key = key
	next.Direction = dir
	return c.set(next)
}

// SortByRaised sorts by amount raised.
func (c *Controller) SortByRaised(dir model.Direction) error {
	return c.SortBy(model.SortByAmountRaised, dir)
}

// SortByDifference sorts by difference from goal.
func (c *Controller) SortByDifference(dir model.Direction) error {
	return c.SortBy(model.SortByDifference, dir)
}

// ToggleFunded flips whether fully funded campaigns are shown.
func (c *Controller) ToggleFunded() error {
	next := c.state
	next.IncludeFunded = !next.IncludeFunded
	return c.set(next)
}

// Apply performs a named action. An unknown action returns an error
// wrapping model.ErrInvalidArgument and leaves the state unchanged.
func (c *Controller) Apply(a Action) error {
	next, err := Next(c.state, a)
	if err != nil {
		return err
	}
	return c.set(next)
}

// set runs the engine for q and commits q only when it succeeds.
func (c *Controller) set(q model.Query) error {
	listing, err := pipeline.Apply(c.campaigns, q, c.pipeOpts...)
	if err != nil {
		return err
	}
	c.state = q
	c.listing = listing
	return nil
}
