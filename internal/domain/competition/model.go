package competition

import (
	"fmt"
	"time"
)

// Status is the competition lifecycle state surfaced to players.
type Status string

const (
	StatusDraft              Status = "draft"
	StatusUpcoming           Status = "upcoming"
	StatusRegistrationOpen   Status = "registration_open"
	StatusRegistrationClosed Status = "registration_closed"
	StatusLive               Status = "live"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusDraft:              {},
	StatusUpcoming:           {},
	StatusRegistrationOpen:   {},
	StatusRegistrationClosed: {},
	StatusLive:               {},
	StatusCompleted:          {},
	StatusCancelled:          {},
}

// Format distinguishes head-to-head pairings from open-field contests.
type Format string

const (
	FormatHeadToHead Format = "head_to_head"
	FormatField      Format = "field"
)

// ScoreDirection configures which aggregate wins at settlement.
type ScoreDirection string

const (
	LowerScoreWins  ScoreDirection = "lower_wins"
	HigherScoreWins ScoreDirection = "higher_wins"
)

// Competition is one fantasy contest attached to a tournament.
//
// ComputedStatus is what the timing schedule derives; ManualStatus is an
// operator override and, once set, always wins. Keeping both fields makes
// the precedence rule structural instead of a last-write race.
type Competition struct {
	ID             string
	TournamentID   string
	Name           string
	Format         Format
	ScoreDirection ScoreDirection

	EntryFeePennies       int64
	EntrantsCap           int
	AdminFeePercent       int
	GuaranteedPoolPennies *int64
	FirstPlacePennies     *int64

	RegistrationOpenAt  time.Time
	RegistrationCloseAt time.Time
	StartAt             time.Time
	EndAt               time.Time

	ComputedStatus Status
	ManualStatus   *Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveStatus resolves the operator override against the derived status.
func (c Competition) EffectiveStatus() Status {
	if c.ManualStatus != nil {
		return *c.ManualStatus
	}
	return c.ComputedStatus
}

func (c Competition) IsVoided() bool {
	return c.EffectiveStatus() == StatusCancelled
}

func (c Competition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("competition id is required")
	}
	if c.TournamentID == "" {
		return fmt.Errorf("competition tournament id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	if c.Format != FormatHeadToHead && c.Format != FormatField {
		return fmt.Errorf("invalid competition format: %s", c.Format)
	}
	if c.ScoreDirection != LowerScoreWins && c.ScoreDirection != HigherScoreWins {
		return fmt.Errorf("invalid score direction: %s", c.ScoreDirection)
	}
	if c.EntryFeePennies < 0 {
		return fmt.Errorf("entry fee cannot be negative")
	}
	if c.EntrantsCap < 0 {
		return fmt.Errorf("entrants cap cannot be negative")
	}
	if c.AdminFeePercent < 0 || c.AdminFeePercent > 100 {
		return fmt.Errorf("admin fee percent must be between 0 and 100")
	}
	if c.ManualStatus != nil {
		if _, ok := AllStatuses[*c.ManualStatus]; !ok {
			return fmt.Errorf("invalid manual status: %s", *c.ManualStatus)
		}
	}

	return nil
}
