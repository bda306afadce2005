package golfer

import "context"

// Repository exposes golfer pool persistence operations.
type Repository interface {
	GetByIDs(ctx context.Context, tournamentID string, golferIDs []string) ([]Golfer, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Golfer, error)
	UpsertGolfers(ctx context.Context, items []Golfer) error
}
