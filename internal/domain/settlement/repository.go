package settlement

import "context"

// Repository exposes settlement persistence operations.
type Repository interface {
	GetByCompetition(ctx context.Context, competitionID string) (Result, bool, error)
	Upsert(ctx context.Context, result Result) error
}
