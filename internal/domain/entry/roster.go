package entry

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteRoster = errors.New("roster does not have the required number of picks")
	ErrDuplicateGolfer  = errors.New("duplicate golfer in roster")
	ErrInvalidSlot      = errors.New("invalid slot position")
	ErrCaptainRequired  = errors.New("roster needs exactly one captain")
	ErrMultipleCaptains = errors.New("roster has more than one captain")
	ErrBudgetExceeded   = errors.New("budget cap exceeded")
)

// RosterRules stores roster validation parameters.
type RosterRules struct {
	Size      int
	BudgetCap int64
}

func DefaultRosterRules() RosterRules {
	return RosterRules{
		Size:      6,
		BudgetCap: 50_000,
	}
}

// ValidateRoster is the hard gate applied at submission time. Checks run in
// a fixed order and stop at the first failure so callers can surface one
// actionable error kind at a time.
func ValidateRoster(picks []Pick, rules RosterRules) error {
	if len(picks) != rules.Size {
		return fmt.Errorf("%w: expected %d, got %d", ErrIncompleteRoster, rules.Size, len(picks))
	}

	golferSet := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		if pick.GolferID == "" {
			return fmt.Errorf("golfer id is required")
		}
		if _, exists := golferSet[pick.GolferID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateGolfer, pick.GolferID)
		}
		golferSet[pick.GolferID] = struct{}{}
	}

	slotSet := make(map[int]struct{}, len(picks))
	for _, pick := range picks {
		if pick.SlotPosition < 1 || pick.SlotPosition > rules.Size {
			return fmt.Errorf("%w: slot %d out of range 1..%d", ErrInvalidSlot, pick.SlotPosition, rules.Size)
		}
		if _, exists := slotSet[pick.SlotPosition]; exists {
			return fmt.Errorf("%w: slot %d already taken", ErrInvalidSlot, pick.SlotPosition)
		}
		slotSet[pick.SlotPosition] = struct{}{}
	}

	captains := 0
	for _, pick := range picks {
		if pick.IsCaptain {
			captains++
		}
	}
	if captains == 0 {
		return ErrCaptainRequired
	}
	if captains > 1 {
		return fmt.Errorf("%w: got %d", ErrMultipleCaptains, captains)
	}

	var totalSalary int64
	for _, pick := range picks {
		if pick.SalaryAtSelection <= 0 {
			return fmt.Errorf("salary snapshot must be greater than zero: %s", pick.GolferID)
		}
		totalSalary += pick.SalaryAtSelection
	}
	if totalSalary > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, rules.BudgetCap, totalSalary)
	}

	return nil
}

// Warning is non-fatal feedback about an in-progress roster. Warnings never
// block AddPick/RemovePick; only ValidateRoster gates submission.
type Warning struct {
	Kind    string
	Message string
}

const (
	WarnBudgetExceeded = "budget_exceeded"
	WarnDuplicate      = "duplicate_golfer"
	WarnSlotTaken      = "slot_taken"
	WarnRosterFull     = "roster_full"
)

// AddPick appends a pick to the in-progress roster. It is a pure
// transformation: the input slice is not modified and the call never fails.
func AddPick(picks []Pick, pick Pick, rules RosterRules) ([]Pick, []Warning) {
	next := append(append([]Pick(nil), picks...), pick)

	var warnings []Warning
	if len(next) > rules.Size {
		warnings = append(warnings, Warning{
			Kind:    WarnRosterFull,
			Message: fmt.Sprintf("roster holds %d picks, limit is %d", len(next), rules.Size),
		})
	}
	for _, existing := range picks {
		if existing.GolferID == pick.GolferID {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicate,
				Message: fmt.Sprintf("golfer %s is already picked", pick.GolferID),
			})
			break
		}
	}
	for _, existing := range picks {
		if existing.SlotPosition == pick.SlotPosition {
			warnings = append(warnings, Warning{
				Kind:    WarnSlotTaken,
				Message: fmt.Sprintf("slot %d is already taken", pick.SlotPosition),
			})
			break
		}
	}
	if used := TotalSalary(next); used > rules.BudgetCap {
		warnings = append(warnings, Warning{
			Kind:    WarnBudgetExceeded,
			Message: fmt.Sprintf("salary %d exceeds cap %d", used, rules.BudgetCap),
		})
	}

	return next, warnings
}

// RemovePick drops the pick holding golferID, if present. Pure, never fails.
func RemovePick(picks []Pick, golferID string, rules RosterRules) ([]Pick, []Warning) {
	next := make([]Pick, 0, len(picks))
	for _, pick := range picks {
		if pick.GolferID == golferID {
			continue
		}
		next = append(next, pick)
	}

	var warnings []Warning
	if used := TotalSalary(next); used > rules.BudgetCap {
		warnings = append(warnings, Warning{
			Kind:    WarnBudgetExceeded,
			Message: fmt.Sprintf("salary %d exceeds cap %d", used, rules.BudgetCap),
		})
	}

	return next, warnings
}

func TotalSalary(picks []Pick) int64 {
	var total int64
	for _, pick := range picks {
		total += pick.SalaryAtSelection
	}
	return total
}
