package scoring

import "time"

// RoundResult is one golfer's score for one tournament round, supplied
// incrementally by the results feed as rounds complete.
type RoundResult struct {
	TournamentID string
	GolferID     string
	Round        int
	Score        int
	RecordedAt   time.Time
}

// ResultSet is a snapshot of round results for one tournament. Version is
// the feed's monotonically increasing counter; persisted totals are
// last-writer-wins on it, never on wall-clock arrival order.
type ResultSet struct {
	TournamentID string
	Version      int64
	Results      []RoundResult
}

// PerGolferTotals sums each golfer's rounds recorded so far. Partial
// coverage (fewer than four rounds) is legal.
func (rs ResultSet) PerGolferTotals() map[string]int {
	totals := make(map[string]int)
	for _, result := range rs.Results {
		totals[result.GolferID] += result.Score
	}
	return totals
}

// RoundsCovered reports which rounds have at least one recorded result.
func (rs ResultSet) RoundsCovered() []int {
	seen := make(map[int]struct{})
	rounds := make([]int, 0, 4)
	for _, result := range rs.Results {
		if _, ok := seen[result.Round]; ok {
			continue
		}
		seen[result.Round] = struct{}{}
		rounds = append(rounds, result.Round)
	}
	return rounds
}
