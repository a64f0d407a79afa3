package dataset

import (
	"math"

	"github.com/nao1215/fundboard/internal/model"
)

// differenceTolerance absorbs float noise from authored decimal values.
const differenceTolerance = 1e-9

// reconcile settles DifferenceFromGoal for one record.
// The computed value wins unless trustStored is set and the record carried
// the field. Drift is logged either way.
func reconcile(index int, rec record, o *options) model.Campaign {
	c := rec.campaign
	computed := c.ComputedDifference()

	if !rec.hasDifference {
		c.DifferenceFromGoal = computed
		return c
	}

	stored := c.DifferenceFromGoal
	if math.Abs(stored-computed) > differenceTolerance {
		o.logger.Warn("difference_from_goal disagrees with goal - amount_raised",
			"index", index,
			"title", c.Title,
			"stored", stored,
			"computed", computed,
			"kept", keptLabel(o.trustStored),
		)
	}

	if !o.trustStored {
		c.DifferenceFromGoal = computed
	}
	return c
}

func keptLabel(trustStored bool) string {
	if trustStored {
		return "stored"
	}
	return "computed"
}
