package settlement

import (
	"errors"
	"fmt"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
)

var ErrNotReadyToSettle = errors.New("entries are not ready to settle")

// Result is the outcome of one head-to-head settlement. On a tie both entry
// id fields are empty and Margin is zero.
type Result struct {
	CompetitionID string
	WinnerEntryID string
	LoserEntryID  string
	Tie           bool
	Margin        int
}

// Settle compares two scored head-to-head entries. The score direction is a
// single comparator configured per competition format: stroke-style scoring
// treats the lower aggregate as the winner, points-style the higher.
//
// Settlement is deterministic: same inputs, same result, regardless of
// argument order or when it runs.
func Settle(a, b entry.Entry, direction competition.ScoreDirection) (Result, error) {
	scoreA, err := scoredTotal(a)
	if err != nil {
		return Result{}, err
	}
	scoreB, err := scoredTotal(b)
	if err != nil {
		return Result{}, err
	}

	margin := scoreA - scoreB
	if margin < 0 {
		margin = -margin
	}

	if scoreA == scoreB {
		return Result{CompetitionID: a.CompetitionID, Tie: true}, nil
	}

	aWins := scoreA < scoreB
	if direction == competition.HigherScoreWins {
		aWins = !aWins
	}

	result := Result{CompetitionID: a.CompetitionID, Margin: margin}
	if aWins {
		result.WinnerEntryID = a.ID
		result.LoserEntryID = b.ID
	} else {
		result.WinnerEntryID = b.ID
		result.LoserEntryID = a.ID
	}

	return result, nil
}

func scoredTotal(e entry.Entry) (int, error) {
	if e.Status != entry.StatusScored || e.TotalScore == nil {
		return 0, fmt.Errorf("%w: entry %s is %s", ErrNotReadyToSettle, e.ID, e.Status)
	}
	return *e.TotalScore, nil
}
