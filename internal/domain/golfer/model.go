package golfer

import "fmt"

// Golfer is a selectable athlete in a tournament field.
type Golfer struct {
	ID           string
	TournamentID string
	Name         string
	WorldRanking *int
	Salary       int64
	ImageURL     string
}

func (g Golfer) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("golfer id is required")
	}
	if g.TournamentID == "" {
		return fmt.Errorf("golfer tournament id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("golfer name is required")
	}
	if g.Salary <= 0 {
		return fmt.Errorf("golfer salary must be greater than zero")
	}
	if g.WorldRanking != nil && *g.WorldRanking < 1 {
		return fmt.Errorf("golfer world ranking must be positive when set")
	}

	return nil
}
