package pipeline

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/fundboard/internal/model"
)

// demoCampaigns returns the three campaigns of the original listing page.
func demoCampaigns() []model.Campaign {
	return []model.Campaign{
		{Title: "A", URL: "https://www.gofundme.com/campaignA", AmountRaised: 100, Goal: 1000, DifferenceFromGoal: 900},
		{Title: "B", URL: "https://www.gofundme.com/campaignB", AmountRaised: 250, Goal: 500, DifferenceFromGoal: 250},
		{Title: "C", URL: "https://www.gofundme.com/campaignC", AmountRaised: 3000, Goal: 5000, DifferenceFromGoal: 2000},
	}
}

// randomCampaigns builds n campaigns with distinct raised amounts and
// distinct differences. About a third of them are fully funded.
func randomCampaigns(r *rand.Rand, n int) []model.Campaign {
	out := make([]model.Campaign, n)
	for i := range out {
		goal := float64(1000 + r.IntN(9000))
		raised := float64(i*7) + r.Float64()
		if r.IntN(3) == 0 {
			raised += goal
		}
		out[i] = model.Campaign{
			Title:              fmt.Sprintf("campaign-%02d", i),
			URL:                fmt.Sprintf("https://example.org/c/%d", i),
			AmountRaised:       raised,
			Goal:               goal,
			DifferenceFromGoal: goal - raised + float64(i)*1e-6,
		}
	}
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func allQueries() []model.Query {
	var qs []model.Query
	for _, k := range model.SortKeys() {
		for _, d := range []model.Direction{model.Ascending, model.Descending} {
			for _, f := range []bool{false, true} {
				qs = append(qs, model.Query{Key: k, Direction: d, IncludeFunded: f})
			}
		}
	}
	return qs
}

// TestApplyExamples covers the worked examples of the listing page.
func TestApplyExamples(t *testing.T) {
	t.Parallel()

	t.Run("raised ascending without funded", func(t *testing.T) {
		t.Parallel()

		l, err := Apply(demoCampaigns(), model.Query{Key: model.SortByAmountRaised, Direction: model.Ascending})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"A", "B", "C"}, l.Titles()); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("difference descending without funded", func(t *testing.T) {
		t.Parallel()

		l, err := Apply(demoCampaigns(), model.Query{Key: model.SortByDifference, Direction: model.Descending})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"C", "A", "B"}, l.Titles()); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("campaign exactly at goal is hidden then shown", func(t *testing.T) {
		t.Parallel()

		campaigns := append(demoCampaigns(), model.Campaign{
			Title: "D", URL: "https://www.gofundme.com/campaignD", AmountRaised: 500, Goal: 500,
		})

		hidden, err := Apply(campaigns, model.Query{Key: model.SortByAmountRaised, Direction: model.Ascending})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slices.Contains(hidden.Titles(), "D") {
			t.Error("expected D to be excluded when funded campaigns are hidden")
		}
		if hidden.Hidden != 1 || hidden.Total != 4 {
			t.Errorf("expected Hidden=1 Total=4, got Hidden=%d Total=%d", hidden.Hidden, hidden.Total)
		}

		shown, err := Apply(campaigns, model.Query{Key: model.SortByAmountRaised, Direction: model.Ascending, IncludeFunded: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"A", "B", "D", "C"}, shown.Titles()); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestApplyErrors tests argument validation and empty input.
func TestApplyErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown sort key is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Apply(demoCampaigns(), model.Query{Key: "title", Direction: model.Ascending})
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unknown key is rejected even for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := Apply(nil, model.Query{Key: "goal", Direction: model.Ascending})
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("empty collection yields empty listing", func(t *testing.T) {
		t.Parallel()

		l, err := Apply(nil, model.DefaultQuery())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l == nil || !l.IsEmpty() || l.Campaigns == nil {
			t.Errorf("expected empty non-nil listing, got %+v", l)
		}
	})
}

// TestApplyProperties checks the engine's algebraic properties over random data.
func TestApplyProperties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(42, 1024))
	datasets := [][]model.Campaign{demoCampaigns()}
	for _, n := range []int{1, 2, 5, 17, 40} {
		datasets = append(datasets, randomCampaigns(r, n))
	}

	for i, data := range datasets {
		for _, q := range allQueries() {
			name := fmt.Sprintf("dataset-%d/%s", i, q)
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				original := slices.Clone(data)
				l, err := Apply(data, q)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				// Input is untouched.
				if diff := cmp.Diff(original, data); diff != "" {
					t.Errorf("input mutated (-want +got):\n%s", diff)
				}

				// Output is a permutation of the filtered input.
				var filtered []model.Campaign
				for _, c := range data {
					if q.IncludeFunded || c.AmountRaised < c.Goal {
						filtered = append(filtered, c)
					}
				}
				sortedByTitle := func(cs []model.Campaign) []model.Campaign {
					out := slices.Clone(cs)
					slices.SortFunc(out, func(a, b model.Campaign) int {
						if a.Title < b.Title {
							return -1
						}
						if a.Title > b.Title {
							return 1
						}
						return 0
					})
					return out
				}
				if diff := cmp.Diff(sortedByTitle(filtered), sortedByTitle(l.Campaigns)); diff != "" {
					t.Errorf("output is not a permutation of the filtered input (-want +got):\n%s", diff)
				}
				if l.Total != len(data) || l.Hidden != len(data)-len(filtered) {
					t.Errorf("unexpected counts: total=%d hidden=%d", l.Total, l.Hidden)
				}

				// Idempotence and determinism.
				again, err := Apply(l.Campaigns, q)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(l.Campaigns, again.Campaigns); diff != "" {
					t.Errorf("second application changed the order (-want +got):\n%s", diff)
				}
				repeat, err := Apply(data, q)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(l.Campaigns, repeat.Campaigns); diff != "" {
					t.Errorf("identical inputs gave different output (-want +got):\n%s", diff)
				}

				// Direction symmetry (keys are distinct in every dataset).
				opposite := q
				if q.Direction == model.Ascending {
					opposite.Direction = model.Descending
				} else {
					opposite.Direction = model.Ascending
				}
				mirrored, err := Apply(data, opposite)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				reversed := slices.Clone(mirrored.Campaigns)
				slices.Reverse(reversed)
				if diff := cmp.Diff(l.Campaigns, reversed); diff != "" {
					t.Errorf("reversed opposite direction differs (-want +got):\n%s", diff)
				}
			})
		}
	}
}

// TestApplyFilterSuperset checks that the funded flag only ever adds campaigns.
func TestApplyFilterSuperset(t *testing.T) {
	t.Parallel()

	data := randomCampaigns(rand.New(rand.NewPCG(7, 7)), 30)

	without, err := Apply(data, model.DefaultQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := model.DefaultQuery()
	q.IncludeFunded = true
	with, err := Apply(data, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range without.Campaigns {
		if c.FullyFunded() {
			t.Errorf("funded campaign %q leaked through the filter", c.Title)
		}
		if !slices.Contains(with.Titles(), c.Title) {
			t.Errorf("campaign %q missing from the unfiltered listing", c.Title)
		}
	}
	if len(with.Campaigns) != len(data) {
		t.Errorf("expected all %d campaigns with the flag set, got %d", len(data), len(with.Campaigns))
	}
}
