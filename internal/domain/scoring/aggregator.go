package scoring

import (
	"errors"
	"fmt"

	"github.com/parfive/fantasy-golf/internal/domain/entry"
)

var ErrMissingResult = errors.New("no result recorded for golfer")

const captainMultiplier = 2

// ComputeTotal computes an entry's aggregate fantasy score from its picks
// and the per-golfer totals supplied by the results feed. The captain's
// score counts double. It is a pure projection: calling it again with the
// same inputs yields the same total, and partial results are fine as long
// as every picked golfer has some recorded value.
//
// A missing golfer is a data-consistency failure, not a zero: the engine
// never guesses a default score.
func ComputeTotal(picks []entry.Pick, perGolfer map[string]int) (int, error) {
	total := 0
	for _, pick := range picks {
		score, ok := perGolfer[pick.GolferID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingResult, pick.GolferID)
		}

		multiplier := 1
		if pick.IsCaptain {
			multiplier = captainMultiplier
		}
		total += score * multiplier
	}

	return total, nil
}
