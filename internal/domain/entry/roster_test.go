package entry

import (
	"errors"
	"testing"
)

func validPicks() []Pick {
	return []Pick{
		{GolferID: "g1", SlotPosition: 1, SalaryAtSelection: 9_000, IsCaptain: true},
		{GolferID: "g2", SlotPosition: 2, SalaryAtSelection: 8_500},
		{GolferID: "g3", SlotPosition: 3, SalaryAtSelection: 8_000},
		{GolferID: "g4", SlotPosition: 4, SalaryAtSelection: 8_000},
		{GolferID: "g5", SlotPosition: 5, SalaryAtSelection: 8_000},
		{GolferID: "g6", SlotPosition: 6, SalaryAtSelection: 8_000},
	}
}

func TestValidateRoster(t *testing.T) {
	rules := DefaultRosterRules()

	tests := []struct {
		name      string
		mutate    func(picks []Pick, cfg *RosterRules) []Pick
		targetErr error
	}{
		{
			name:   "valid roster",
			mutate: func(picks []Pick, _ *RosterRules) []Pick { return picks },
		},
		{
			name: "too few picks",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				return picks[:5]
			},
			targetErr: ErrIncompleteRoster,
		},
		{
			name: "too many picks",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				return append(picks, Pick{GolferID: "g7", SlotPosition: 6, SalaryAtSelection: 100})
			},
			targetErr: ErrIncompleteRoster,
		},
		{
			name: "duplicate golfer",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				picks[1].GolferID = "g1"
				return picks
			},
			targetErr: ErrDuplicateGolfer,
		},
		{
			name: "slot out of range",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				picks[5].SlotPosition = 7
				return picks
			},
			targetErr: ErrInvalidSlot,
		},
		{
			name: "slot taken twice",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				picks[5].SlotPosition = 1
				return picks
			},
			targetErr: ErrInvalidSlot,
		},
		{
			name: "no captain",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				picks[0].IsCaptain = false
				return picks
			},
			targetErr: ErrCaptainRequired,
		},
		{
			name: "two captains",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				picks[3].IsCaptain = true
				return picks
			},
			targetErr: ErrMultipleCaptains,
		},
		{
			name: "over budget",
			mutate: func(picks []Pick, _ *RosterRules) []Pick {
				picks[0].SalaryAtSelection = 12_000
				picks[1].SalaryAtSelection = 12_000
				return picks
			},
			targetErr: ErrBudgetExceeded,
		},
		{
			name: "exactly at cap",
			mutate: func(picks []Pick, cfg *RosterRules) []Pick {
				cfg.BudgetCap = TotalSalary(picks)
				return picks
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := rules
			picks := tt.mutate(validPicks(), &cfg)

			err := ValidateRoster(picks, cfg)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidateRoster_DuplicateBeatsSlotCheck(t *testing.T) {
	// Checks short-circuit in a fixed order: the duplicate-golfer error must
	// win even when a slot collision is present on the same roster.
	picks := validPicks()
	picks[1].GolferID = "g1"
	picks[1].SlotPosition = 1

	err := ValidateRoster(picks, DefaultRosterRules())
	if !errors.Is(err, ErrDuplicateGolfer) {
		t.Fatalf("expected ErrDuplicateGolfer, got %v", err)
	}
}

func TestAddPick_NeverFails(t *testing.T) {
	rules := DefaultRosterRules()
	picks := validPicks()

	next, warnings := AddPick(picks, Pick{GolferID: "g1", SlotPosition: 1, SalaryAtSelection: 60_000}, rules)
	if len(next) != 7 {
		t.Fatalf("expected 7 picks, got %d", len(next))
	}
	if len(picks) != 6 {
		t.Fatal("input slice must not be modified")
	}

	kinds := make(map[string]struct{}, len(warnings))
	for _, warning := range warnings {
		kinds[warning.Kind] = struct{}{}
	}
	for _, want := range []string{WarnRosterFull, WarnDuplicate, WarnSlotTaken, WarnBudgetExceeded} {
		if _, ok := kinds[want]; !ok {
			t.Fatalf("expected warning %s, got %v", want, warnings)
		}
	}
}

func TestRemovePick(t *testing.T) {
	rules := DefaultRosterRules()
	picks := validPicks()

	next, warnings := RemovePick(picks, "g3", rules)
	if len(next) != 5 {
		t.Fatalf("expected 5 picks, got %d", len(next))
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	next, _ = RemovePick(next, "unknown", rules)
	if len(next) != 5 {
		t.Fatalf("removing unknown golfer must be a no-op, got %d picks", len(next))
	}
}
