package model

// Listing is the display sequence produced for a Query.
// Campaigns is always a permutation of the dataset subset that passed the
// filter; the records themselves are copies and never modified.
type Listing struct {
	// Query is the set of parameters that produced this listing.
	Query Query `json:"query"`

	// Campaigns is the ordered display sequence.
	Campaigns []Campaign `json:"campaigns"`

	// Total is the number of campaigns in the dataset before filtering.
	Total int `json:"total"`

	// Hidden is the number of campaigns removed by the funded filter.
	Hidden int `json:"hidden"`

	// PerformedSteps records the engine steps that ran, in order.
	PerformedSteps []string `json:"-"`
}

// NewListing creates an unsorted, unfiltered listing holding a copy of
// campaigns. The caller's slice is never aliased.
func NewListing(q Query, campaigns []Campaign) *Listing {
	cloned := make([]Campaign, len(campaigns))
	copy(cloned, campaigns)
	return &Listing{
		Query:     q,
		Campaigns: cloned,
		Total:     len(campaigns),
	}
}

// Summary holds aggregate figures for the campaigns in a listing.
type Summary struct {
	// Count is the number of campaigns shown.
	Count int `json:"count"`

	// FundedCount is how many of the shown campaigns met their goal.
	FundedCount int `json:"funded_count"`

	// TotalRaised is the sum of AmountRaised over the shown campaigns.
	TotalRaised float64 `json:"total_raised"`

	// TotalGoal is the sum of Goal over the shown campaigns.
	TotalGoal float64 `json:"total_goal"`
}

// Summary computes aggregate figures for the shown campaigns.
func (l *Listing) Summary() Summary {
	var s Summary
	for _, c := range l.Campaigns {
		s.Count++
		s.TotalRaised += c.AmountRaised
		s.TotalGoal += c.Goal
		if c.FullyFunded() {
			s.FundedCount++
		}
	}
	return s
}

// Titles returns the campaign titles in display order.
func (l *Listing) Titles() []string {
	titles := make([]string, len(l.Campaigns))
	for i, c := range l.Campaigns {
		titles[i] = c.Title
	}
	return titles
}

// IsEmpty reports whether nothing is left to display.
func (l *Listing) IsEmpty() bool {
	return len(l.Campaigns) == 0
}
