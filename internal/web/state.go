package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nao1215/fundboard/internal/model"
)

// Query string parameter names.
const (
	paramSort   = "sort"
	paramOrder  = "order"
	paramFunded = "funded"
)

// ParseState reads the view state from query parameters. Parameters that
// are absent keep the value from base. Errors wrap model.ErrInvalidArgument.
func ParseState(values url.Values, base model.Query) (model.Query, error) {
	q := base

	if values.Has(paramSort) {
		key, err := model.ParseSortKey(values.Get(paramSort))
		if err != nil {
			return q, err
		}
		q.Key = key
	}

	if values.Has(paramOrder) {
		dir, err := model.ParseDirection(values.Get(paramOrder))
		if err != nil {
			return q, err
		}
		q.Direction = dir
	}

	if values.Has(paramFunded) {
		include, err := parseFunded(values.Get(paramFunded))
		if err != nil {
			return q, err
		}
		q.IncludeFunded = include
	}

	return q, nil
}

// parseFunded accepts the usual spellings of a boolean toggle.
func parseFunded(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "show":
		return true, nil
	case "0", "false", "no", "off", "hide", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: invalid value %q for %s", model.ErrInvalidArgument, s, paramFunded)
	}
}

// StateValues encodes q as query parameters. ParseState inverts it.
func StateValues(q model.Query) url.Values {
	funded := "0"
	if q.IncludeFunded {
		funded = "1"
	}
	return url.Values{
		paramSort:   {string(q.Key)},
		paramOrder:  {string(q.Direction)},
		paramFunded: {funded},
	}
}
