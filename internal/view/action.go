package view

import (
	"fmt"
	"strings"

	"github.com/nao1215/fundboard/internal/model"
)

// Action names one control of the listing page.
type Action string

const (
	// ActionRaisedAsc sorts by amount raised, smallest first.
	ActionRaisedAsc Action = "raised-asc"
	// ActionRaisedDesc sorts by amount raised, largest first.
	ActionRaisedDesc Action = "raised-desc"
	// ActionDifferenceAsc sorts by difference from goal, smallest first.
	ActionDifferenceAsc Action = "difference-asc"
	// ActionDifferenceDesc sorts by difference from goal, largest first.
	ActionDifferenceDesc Action = "difference-desc"
	// ActionToggleFunded flips visibility of fully funded campaigns.
	ActionToggleFunded Action = "toggle-funded"
)

// Actions returns every action in page order.
func Actions() []Action {
	return []Action{
		ActionRaisedAsc,
		ActionRaisedDesc,
		ActionDifferenceAsc,
		ActionDifferenceDesc,
		ActionToggleFunded,
	}
}

// SortActions returns the four sort buttons.
func SortActions() []Action {
	return Actions()[:4]
}

// ParseAction converts a name into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown action %q", model.ErrInvalidArgument, s)
}

// sortOf returns the key and direction a sort action selects.
func (a Action) sortOf() (model.SortKey, model.Direction, bool) {
	switch a {
	case ActionRaisedAsc:
		return model.SortByAmountRaised, model.Ascending, true
	case ActionRaisedDesc:
		return model.SortByAmountRaised, model.Descending, true
	case ActionDifferenceAsc:
		return model.SortByDifference, model.Ascending, true
	case ActionDifferenceDesc:
		return model.SortByDifference, model.Descending, true
	default:
		return "", "", false
	}
}

// Label is the button text for the action. For the toggle it depends on
// whether funded campaigns are currently shown.
func (a Action) Label(q model.Query) string {
	if key, dir, ok := a.sortOf(); ok {
		return fmt.Sprintf("Sort by %s (%s)", key.Label(), dir.Label())
	}
	if a == ActionToggleFunded {
		if q.IncludeFunded {
			return "Hide Fully Funded"
		}
		return "Show Fully Funded"
	}
	return string(a)
}

// Active reports whether the action describes the current sort selection.
// The toggle is active while funded campaigns are shown.
func (a Action) Active(q model.Query) bool {
	if key, dir, ok := a.sortOf(); ok {
		return q.Key == key && q.Direction == dir
	}
	return a == ActionToggleFunded && q.IncludeFunded
}

// Next returns the query that results from applying a to q.
// Sort actions replace key and direction and keep the toggle; the toggle
// flips IncludeFunded and keeps the sort.
func Next(q model.Query, a Action) (model.Query, error) {
	if key, dir, ok := a.sortOf(); ok {
		q.Key = key
		q.Direction = dir
		return q, nil
	}
	if a == ActionToggleFunded {
		q.IncludeFunded = !q.IncludeFunded
		return q, nil
	}
	return q, fmt.Errorf("%w: unknown action %q", model.ErrInvalidArgument, string(a))
}
