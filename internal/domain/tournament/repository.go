package tournament

import "context"

// Repository exposes tournament persistence operations.
type Repository interface {
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	List(ctx context.Context) ([]Tournament, error)
	Upsert(ctx context.Context, item Tournament) error
}
