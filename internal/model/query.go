package model

import (
	"fmt"
	"strings"
)

// SortKey names the campaign field a listing is ordered by.
type SortKey string

const (
	// SortByAmountRaised orders campaigns by AmountRaised.
	SortByAmountRaised SortKey = "amount_raised"

	// SortByDifference orders campaigns by DifferenceFromGoal.
	SortByDifference SortKey = "difference_from_goal"
)

// SortKeys lists every valid sort key in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByAmountRaised, SortByDifference}
}

// ParseSortKey converts user input into a SortKey.
// The canonical field names and the short aliases "raised" and "difference"
// are accepted, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amount_raised", "raised":
		return SortByAmountRaised, nil
	case "difference_from_goal", "difference":
		return SortByDifference, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, s)
	}
}

// Valid reports whether k is one of the enumerated sort keys.
func (k SortKey) Valid() bool {
	return k == SortByAmountRaised || k == SortByDifference
}

// Value extracts the sort value of c for this key.
func (k SortKey) Value(c Campaign) (float64, error) {
	switch k {
	case SortByAmountRaised:
		return c.AmountRaised, nil
	case SortByDifference:
		return c.DifferenceFromGoal, nil
	default:
		return 0, fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, string(k))
	}
}

// Label returns the short human label used by the page controls.
func (k SortKey) Label() string {
	switch k {
	case SortByAmountRaised:
		return "Raised"
	case SortByDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

// Direction is the order in which sort values are laid out.
type Direction string

const (
	// Ascending places smaller values first.
	Ascending Direction = "asc"

	// Descending places larger values first.
	Descending Direction = "desc"
)

// ParseDirection converts user input into a Direction.
// "asc", "ascending", "desc" and "descending" are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: unknown sort direction %q", ErrInvalidArgument, s)
	}
}

// Valid reports whether d is Ascending or Descending.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Label returns "Asc" or "Desc" for the page controls.
func (d Direction) Label() string {
	switch d {
	case Ascending:
		return "Asc"
	case Descending:
		return "Desc"
	default:
		return "Unknown"
	}
}

// Query is the complete set of parameters that determines a listing.
type Query struct {
	// Key is the field to sort by.
	Key SortKey `json:"sort"`

	// Direction is the sort order.
	Direction Direction `json:"order"`

	// IncludeFunded keeps campaigns that already met their goal.
	IncludeFunded bool `json:"include_funded"`
}

// DefaultQuery returns the query used when nothing else is specified:
// amount raised, ascending, fully funded campaigns hidden.
func DefaultQuery() Query {
	return Query{
		Key:           SortByAmountRaised,
		Direction:     Ascending,
		IncludeFunded: false,
	}
}

// Validate checks that the key and direction are known.
// The returned error wraps ErrInvalidArgument.
func (q Query) Validate() error {
	if !q.Key.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, string(q.Key))
	}
	if !q.Direction.Valid() {
		return fmt.Errorf("%w: unknown sort direction %q", ErrInvalidArgument, string(q.Direction))
	}
	return nil
}

// String renders the query as "amount_raised asc (funded hidden)".
func (q Query) String() string {
	funded := "funded hidden"
	if q.IncludeFunded {
		funded = "funded shown"
	}
	return fmt.Sprintf("%s %s (%s)", q.Key, q.Direction, funded)
}
