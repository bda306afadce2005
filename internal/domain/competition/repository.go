package competition

import "context"

// Repository exposes competition persistence operations.
type Repository interface {
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Competition, error)
	Upsert(ctx context.Context, item Competition) error
}
