package model

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Campaign is a single fundraising record.
// Records are immutable once loaded; sorting and filtering only reorder
// or drop them.
type Campaign struct {
	// Title is the display name of the campaign.
	Title string `json:"title" yaml:"title"`

	// URL links to the external campaign page.
	URL string `json:"url" yaml:"url"`

	// AmountRaised is the amount collected so far. Never negative.
	AmountRaised float64 `json:"amount_raised" yaml:"amount_raised"`

	// Goal is the target amount. Always positive.
	Goal float64 `json:"goal" yaml:"goal"`

	// DifferenceFromGoal is Goal minus AmountRaised. Negative values mean
	// the campaign raised more than it asked for.
	DifferenceFromGoal float64 `json:"difference_from_goal" yaml:"difference_from_goal"`
}

// Validate checks that every field of the campaign is within range.
// The returned error wraps ErrMalformedCampaign and names the offending field.
func (c Campaign) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrMalformedCampaign)
	}
	if err := validateURL(c.URL); err != nil {
		return fmt.Errorf("%w: url %q: %w", ErrMalformedCampaign, c.URL, err)
	}
	if !isFinite(c.AmountRaised) || c.AmountRaised < 0 {
		return fmt.Errorf("%w: amount_raised must be a non-negative number, got %v", ErrMalformedCampaign, c.AmountRaised)
	}
	if !isFinite(c.Goal) || c.Goal <= 0 {
		return fmt.Errorf("%w: goal must be a positive number, got %v", ErrMalformedCampaign, c.Goal)
	}
	if !isFinite(c.DifferenceFromGoal) {
		return fmt.Errorf("%w: difference_from_goal must be a finite number", ErrMalformedCampaign)
	}
	return nil
}

// FullyFunded reports whether the campaign has met or exceeded its goal.
func (c Campaign) FullyFunded() bool {
	return c.AmountRaised >= c.Goal
}

// ComputedDifference derives the distance from goal from the raised amount
// and the goal, ignoring the stored DifferenceFromGoal.
func (c Campaign) ComputedDifference() float64 {
	return c.Goal - c.AmountRaised
}

// Progress returns the funded ratio (1.0 means exactly at goal).
// Used for display only.
func (c Campaign) Progress() float64 {
	if c.Goal <= 0 {
		return 0
	}
	return c.AmountRaised / c.Goal
}

// validateURL accepts absolute http(s) URLs with a host.
func validateURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !u.IsAbs() || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
