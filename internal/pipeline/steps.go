package pipeline

import (
	"cmp"
	"slices"

	"github.com/nao1215/fundboard/internal/model"
)

// FilterStep removes fully funded campaigns unless the listing's query
// asks to include them.
type FilterStep struct{}

// NewFilterStep creates a new filter step.
func NewFilterStep() *FilterStep {
	return &FilterStep{}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter_funded"
}

// Do drops every campaign with AmountRaised >= Goal when IncludeFunded is
// false. Relative order of the remaining campaigns is preserved.
func (s *FilterStep) Do(listing *model.Listing) error {
	if listing.Query.IncludeFunded {
		return nil
	}

	kept := make([]model.Campaign, 0, len(listing.Campaigns))
	for _, c := range listing.Campaigns {
		if c.FullyFunded() {
			listing.Hidden++
			continue
		}
		kept = append(kept, c)
	}
	listing.Campaigns = kept
	return nil
}

// SortStep orders the listing by the query's key and direction.
type SortStep struct{}

// NewSortStep creates a new sort step.
func NewSortStep() *SortStep {
	return &SortStep{}
}

// Name returns the step name.
func (s *SortStep) Name() string {
	return "sort"
}

// Do sorts the listing in place with a stable comparison.
// Equal keys keep their pre-sort relative order in both directions.
func (s *SortStep) Do(listing *model.Listing) error {
	key := listing.Query.Key
	if !key.Valid() {
		_, err := key.Value(model.Campaign{})
		return err
	}
	if !listing.Query.Direction.Valid() {
		return listing.Query.Validate()
	}

	descending := listing.Query.Direction == model.Descending
	slices.SortStableFunc(listing.Campaigns, func(a, b model.Campaign) int {
		// Value cannot fail here: the key was checked above.
		av, _ := key.Value(a) //nolint:errcheck // key validated
		bv, _ := key.Value(b) //nolint:errcheck // key validated
		if descending {
			return cmp.Compare(bv, av)
		}
		return cmp.Compare(av, bv)
	})
	return nil
}
