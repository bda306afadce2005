package entry

import (
	"fmt"
	"time"
)

// Status is the entry lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusLocked    Status = "locked"
	StatusScored    Status = "scored"
	StatusVoid      Status = "void"
)

var AllStatuses = map[Status]struct{}{
	StatusDraft:     {},
	StatusSubmitted: {},
	StatusLocked:    {},
	StatusScored:    {},
	StatusVoid:      {},
}

// Pick is one golfer slot within an entry. SalaryAtSelection is copied from
// the golfer at add time and never recomputed from the live salary.
type Pick struct {
	GolferID          string
	SlotPosition      int
	SalaryAtSelection int64
	IsCaptain         bool
}

// Entry is one player's roster for one competition.
type Entry struct {
	ID            string
	CompetitionID string
	UserID        string
	Status        Status
	Picks         []Pick
	TotalSalary   int64
	TotalScore    *int
	ScoredVersion int64
	SubmittedAt   *time.Time
	LockedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (e Entry) ValidateBasic() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.CompetitionID == "" {
		return fmt.Errorf("entry competition id is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("entry user id is required")
	}
	if _, ok := AllStatuses[e.Status]; !ok {
		return fmt.Errorf("invalid entry status: %s", e.Status)
	}

	return nil
}

// CaptainGolferID returns the captain pick's golfer, if one is selected.
func (e Entry) CaptainGolferID() (string, bool) {
	for _, pick := range e.Picks {
		if pick.IsCaptain {
			return pick.GolferID, true
		}
	}
	return "", false
}
