package entry

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

func draftEntry() Entry {
	return Entry{
		ID:            "e1",
		CompetitionID: "c1",
		UserID:        "u1",
		Status:        StatusDraft,
		Picks:         validPicks(),
	}
}

func TestSubmit(t *testing.T) {
	rules := DefaultRosterRules()
	closeAt := testNow.Add(time.Hour)

	submitted, err := Submit(draftEntry(), rules, testNow, closeAt)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != StatusSubmitted {
		t.Fatalf("status = %s, want submitted", submitted.Status)
	}
	if submitted.TotalSalary != TotalSalary(submitted.Picks) {
		t.Fatalf("total salary not snapshotted: %d", submitted.TotalSalary)
	}
	if submitted.SubmittedAt == nil || !submitted.SubmittedAt.Equal(testNow) {
		t.Fatalf("submitted at not recorded: %v", submitted.SubmittedAt)
	}
}

func TestSubmit_AfterClose(t *testing.T) {
	_, err := Submit(draftEntry(), DefaultRosterRules(), testNow, testNow.Add(-time.Minute))
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}

	// Exactly at the close boundary is also too late.
	_, err = Submit(draftEntry(), DefaultRosterRules(), testNow, testNow)
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed at boundary, got %v", err)
	}
}

func TestSubmit_InvalidRoster(t *testing.T) {
	e := draftEntry()
	e.Picks = e.Picks[:4]

	_, err := Submit(e, DefaultRosterRules(), testNow, testNow.Add(time.Hour))
	if !errors.Is(err, ErrIncompleteRoster) {
		t.Fatalf("expected ErrIncompleteRoster, got %v", err)
	}
}

func TestSubmit_FromNonDraft(t *testing.T) {
	e := draftEntry()
	e.Status = StatusLocked

	_, err := Submit(e, DefaultRosterRules(), testNow, testNow.Add(time.Hour))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestLock_Idempotent(t *testing.T) {
	submitted, err := Submit(draftEntry(), DefaultRosterRules(), testNow, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	locked, err := Lock(submitted, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if locked.Status != StatusLocked {
		t.Fatalf("status = %s, want locked", locked.Status)
	}

	again, err := Lock(locked, testNow.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("second lock must be a no-op, got %v", err)
	}
	if again.Status != StatusLocked {
		t.Fatalf("second lock changed status to %s", again.Status)
	}
	if !again.LockedAt.Equal(*locked.LockedAt) {
		t.Fatal("second lock must not move the locked timestamp")
	}
}

func TestLock_FromDraftRejected(t *testing.T) {
	_, err := Lock(draftEntry(), testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVoidExpiredDraft(t *testing.T) {
	voided, err := VoidExpiredDraft(draftEntry(), testNow)
	if err != nil {
		t.Fatalf("void failed: %v", err)
	}
	if voided.Status != StatusVoid {
		t.Fatalf("status = %s, want void", voided.Status)
	}

	again, err := VoidExpiredDraft(voided, testNow)
	if err != nil || again.Status != StatusVoid {
		t.Fatalf("second void must be a no-op, got %s %v", again.Status, err)
	}
}

func TestMarkScored(t *testing.T) {
	locked := Entry{ID: "e1", CompetitionID: "c1", UserID: "u1", Status: StatusLocked}

	scored, err := MarkScored(locked, -5, 3, testNow)
	if err != nil {
		t.Fatalf("mark scored failed: %v", err)
	}
	if scored.Status != StatusScored {
		t.Fatalf("status = %s, want scored", scored.Status)
	}
	if scored.TotalScore == nil || *scored.TotalScore != -5 {
		t.Fatalf("total score = %v, want -5", scored.TotalScore)
	}

	// Newer results version replaces the total.
	rescored, err := MarkScored(scored, -7, 4, testNow)
	if err != nil {
		t.Fatalf("rescore failed: %v", err)
	}
	if *rescored.TotalScore != -7 || rescored.ScoredVersion != 4 {
		t.Fatalf("rescore did not apply: score=%v version=%d", rescored.TotalScore, rescored.ScoredVersion)
	}

	// A stale version must not win over a newer persisted total.
	stale, err := MarkScored(rescored, -2, 2, testNow)
	if err != nil {
		t.Fatalf("stale rescore errored: %v", err)
	}
	if *stale.TotalScore != -7 || stale.ScoredVersion != 4 {
		t.Fatalf("stale version overwrote total: score=%v version=%d", stale.TotalScore, stale.ScoredVersion)
	}
}

func TestMarkScored_FromDraftRejected(t *testing.T) {
	_, err := MarkScored(draftEntry(), 0, 1, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCancel_FromAnyState(t *testing.T) {
	for status := range AllStatuses {
		e := draftEntry()
		e.Status = status
		if got := Cancel(e, testNow).Status; got != StatusVoid {
			t.Fatalf("cancel from %s = %s, want void", status, got)
		}
	}
}

func TestMutatePicks_LockedEntryRejected(t *testing.T) {
	e := draftEntry()
	e.Status = StatusLocked

	_, err := MutatePicks(e, validPicks()[:3], testNow)
	if !errors.Is(err, ErrEntryLocked) {
		t.Fatalf("expected ErrEntryLocked, got %v", err)
	}

	mutated, err := MutatePicks(draftEntry(), validPicks()[:3], testNow)
	if err != nil {
		t.Fatalf("mutate draft failed: %v", err)
	}
	if len(mutated.Picks) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(mutated.Picks))
	}
}
