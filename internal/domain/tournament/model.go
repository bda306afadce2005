package tournament

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Tournament is one real-world golf event competitions attach to.
// RoundTeeTimes holds Round 1..4 tee times in order; legacy single-window
// events may carry only StartDate/EndDate.
type Tournament struct {
	ID            string
	Name          string
	CourseName    string
	RoundTeeTimes []time.Time
	StartDate     time.Time
	EndDate       time.Time
	Status        string
	CurrentRound  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if len(t.RoundTeeTimes) == 0 && (t.StartDate.IsZero() || t.EndDate.IsZero()) {
		return fmt.Errorf("tournament needs round tee times or a start/end window")
	}

	return nil
}

// FirstTeeTime returns the Round 1 tee time, falling back to the legacy
// start date when no per-round times are recorded.
func (t Tournament) FirstTeeTime() (time.Time, bool) {
	for _, tee := range t.RoundTeeTimes {
		if !tee.IsZero() {
			return tee, true
		}
	}
	if !t.StartDate.IsZero() {
		return t.StartDate, true
	}
	return time.Time{}, false
}

// EndAt returns the moment the tournament is considered over.
func (t Tournament) EndAt() (time.Time, bool) {
	if !t.EndDate.IsZero() {
		return t.EndDate, true
	}
	if n := len(t.RoundTeeTimes); n > 0 && !t.RoundTeeTimes[n-1].IsZero() {
		return t.RoundTeeTimes[n-1], true
	}
	return time.Time{}, false
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCompleted, "FINISHED", "FT":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}
