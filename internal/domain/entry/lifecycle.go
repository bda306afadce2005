package entry

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEntryLocked        = errors.New("entry is locked")
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrInvalidTransition  = errors.New("invalid entry transition")
	ErrCompetitionFull    = errors.New("competition has no open seats")
)

// Submit moves a draft entry to submitted. The roster must pass the hard
// gate and registration must still be open. On success the salary total is
// snapshotted and the captain selection frozen with the picks.
func Submit(e Entry, rules RosterRules, now, registrationClose time.Time) (Entry, error) {
	if e.Status != StatusDraft {
		return Entry{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, e.Status)
	}
	if !registrationClose.IsZero() && !now.Before(registrationClose) {
		return Entry{}, fmt.Errorf("%w: closed at %s", ErrRegistrationClosed, registrationClose.Format(time.RFC3339))
	}
	if err := ValidateRoster(e.Picks, rules); err != nil {
		return Entry{}, err
	}

	submittedAt := now
	e.Status = StatusSubmitted
	e.TotalSalary = TotalSalary(e.Picks)
	e.SubmittedAt = &submittedAt
	e.UpdatedAt = now
	return e, nil
}

// Lock freezes a submitted entry at registration close. Idempotent: locking
// an already locked (or scored) entry is a no-op.
func Lock(e Entry, now time.Time) (Entry, error) {
	switch e.Status {
	case StatusSubmitted:
		lockedAt := now
		e.Status = StatusLocked
		e.LockedAt = &lockedAt
		e.UpdatedAt = now
		return e, nil
	case StatusLocked, StatusScored:
		return e, nil
	default:
		return Entry{}, fmt.Errorf("%w: lock from %s", ErrInvalidTransition, e.Status)
	}
}

// VoidExpiredDraft voids a draft that never made it to submission before
// registration closed. Idempotent on already-void entries.
func VoidExpiredDraft(e Entry, now time.Time) (Entry, error) {
	switch e.Status {
	case StatusDraft:
		e.Status = StatusVoid
		e.UpdatedAt = now
		return e, nil
	case StatusVoid:
		return e, nil
	default:
		return Entry{}, fmt.Errorf("%w: void expired draft from %s", ErrInvalidTransition, e.Status)
	}
}

// MarkScored finalizes the entry total once results are in. The total is
// persisted as part of the transition, not computed lazily afterwards.
// resultsVersion is the feed's monotonic version; stale versions are
// rejected so last-writer-wins is decided by the feed, not arrival order.
func MarkScored(e Entry, total int, resultsVersion int64, now time.Time) (Entry, error) {
	switch e.Status {
	case StatusLocked:
	case StatusScored:
		if resultsVersion < e.ScoredVersion {
			return e, nil
		}
	default:
		return Entry{}, fmt.Errorf("%w: score from %s", ErrInvalidTransition, e.Status)
	}

	e.Status = StatusScored
	e.TotalScore = &total
	e.ScoredVersion = resultsVersion
	e.UpdatedAt = now
	return e, nil
}

// Cancel voids an entry administratively from any state. Idempotent.
func Cancel(e Entry, now time.Time) Entry {
	if e.Status == StatusVoid {
		return e
	}
	e.Status = StatusVoid
	e.UpdatedAt = now
	return e
}

// MutatePicks replaces the pick set on a draft entry. Any non-draft entry
// rejects mutation with ErrEntryLocked.
func MutatePicks(e Entry, picks []Pick, now time.Time) (Entry, error) {
	if e.Status != StatusDraft {
		return Entry{}, fmt.Errorf("%w: entry status is %s", ErrEntryLocked, e.Status)
	}

	e.Picks = append([]Pick(nil), picks...)
	e.TotalSalary = TotalSalary(e.Picks)
	e.UpdatedAt = now
	return e, nil
}
