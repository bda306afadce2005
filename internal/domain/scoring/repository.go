package scoring

import "context"

// Repository exposes round-result persistence operations.
type Repository interface {
	GetResultSet(ctx context.Context, tournamentID string) (ResultSet, bool, error)
	UpsertResultSet(ctx context.Context, set ResultSet) error
}
