package entry

import "context"

// Repository exposes entry persistence operations. The backing store keeps
// at most one non-void entry per (user, competition) via a uniqueness
// constraint; the engine only promises its transitions are retry-safe.
type Repository interface {
	GetByID(ctx context.Context, entryID string) (Entry, bool, error)
	GetByUserAndCompetition(ctx context.Context, userID, competitionID string) (Entry, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Entry, error)
	Upsert(ctx context.Context, item Entry) error
}
