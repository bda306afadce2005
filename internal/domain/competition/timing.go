package competition

import (
	"errors"
	"fmt"
	"time"
)

var ErrChronology = errors.New("round times are out of order")

// TimingRules parameterizes how registration windows are derived from the
// Round 1 tee time.
type TimingRules struct {
	RegistrationOpenLead  time.Duration
	RegistrationCloseLead time.Duration
}

func DefaultTimingRules() TimingRules {
	return TimingRules{
		RegistrationOpenLead:  5 * 24 * time.Hour,
		RegistrationCloseLead: 15 * time.Minute,
	}
}

func (r TimingRules) RegistrationOpen(round1Tee time.Time) time.Time {
	return round1Tee.Add(-r.RegistrationOpenLead)
}

func (r TimingRules) RegistrationClose(round1Tee time.Time) time.Time {
	closeAt := round1Tee.Add(-r.RegistrationCloseLead)
	// The window must never close after the round has already started.
	if closeAt.After(round1Tee) {
		return round1Tee
	}
	return closeAt
}

// Schedule is the resolved set of timing boundaries one competition runs on.
type Schedule struct {
	RegistrationOpenAt  time.Time
	RegistrationCloseAt time.Time
	StartAt             time.Time
	EndAt               time.Time
}

// BuildSchedule derives a schedule from round tee times, falling back to the
// explicit start/end pair for legacy single-window tournaments.
func BuildSchedule(rules TimingRules, roundTees []time.Time, startAt, endAt time.Time) (Schedule, error) {
	round1 := time.Time{}
	for _, tee := range roundTees {
		if !tee.IsZero() {
			round1 = tee
			break
		}
	}
	if round1.IsZero() {
		round1 = startAt
	}
	if round1.IsZero() {
		return Schedule{}, fmt.Errorf("schedule needs a round 1 tee time or start date")
	}

	end := endAt
	if end.IsZero() {
		for i := len(roundTees) - 1; i >= 0; i-- {
			if !roundTees[i].IsZero() {
				end = roundTees[i]
				break
			}
		}
	}
	if !end.IsZero() && end.Before(round1) {
		return Schedule{}, fmt.Errorf("%w: end %s before round 1 %s", ErrChronology, end, round1)
	}

	return Schedule{
		RegistrationOpenAt:  rules.RegistrationOpen(round1),
		RegistrationCloseAt: rules.RegistrationClose(round1),
		StartAt:             round1,
		EndAt:               end,
	}, nil
}

// ValidateChronology rejects tournaments whose round tee times are not
// strictly increasing or whose end date does not follow the final round.
func ValidateChronology(roundTees []time.Time, endAt time.Time) error {
	prev := time.Time{}
	prevRound := 0
	for i, tee := range roundTees {
		if tee.IsZero() {
			continue
		}
		if !prev.IsZero() && !tee.After(prev) {
			return fmt.Errorf("%w: round %d (%s) not after round %d (%s)",
				ErrChronology, i+1, tee.Format(time.RFC3339), prevRound, prev.Format(time.RFC3339))
		}
		prev = tee
		prevRound = i + 1
	}
	if !endAt.IsZero() && !prev.IsZero() && !endAt.After(prev) {
		return fmt.Errorf("%w: end date %s not after round %d (%s)",
			ErrChronology, endAt.Format(time.RFC3339), prevRound, prev.Format(time.RFC3339))
	}

	return nil
}

// DeriveStatus maps the clock onto the schedule. It intentionally knows
// nothing about manual overrides; EffectiveStatus applies those.
func DeriveStatus(now time.Time, schedule Schedule) Status {
	switch {
	case !schedule.EndAt.IsZero() && !now.Before(schedule.EndAt):
		return StatusCompleted
	case !schedule.StartAt.IsZero() && !now.Before(schedule.StartAt):
		return StatusLive
	case !schedule.RegistrationCloseAt.IsZero() && !now.Before(schedule.RegistrationCloseAt):
		return StatusRegistrationClosed
	case !schedule.RegistrationOpenAt.IsZero() && !now.Before(schedule.RegistrationOpenAt):
		return StatusRegistrationOpen
	default:
		return StatusUpcoming
	}
}
