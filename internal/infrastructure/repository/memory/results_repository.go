package memory

import (
	"context"
	"sync"

	"github.com/parfive/fantasy-golf/internal/domain/scoring"
)

type ResultsRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.ResultSet
}

func NewResultsRepository() *ResultsRepository {
	return &ResultsRepository{items: make(map[string]scoring.ResultSet)}
}

func (r *ResultsRepository) GetResultSet(_ context.Context, tournamentID string) (scoring.ResultSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[tournamentID]
	if !ok {
		return scoring.ResultSet{}, false, nil
	}

	return cloneResultSet(item), true, nil
}

func (r *ResultsRepository) UpsertResultSet(_ context.Context, set scoring.ResultSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[set.TournamentID] = cloneResultSet(set)
	return nil
}

func cloneResultSet(item scoring.ResultSet) scoring.ResultSet {
	copied := item
	copied.Results = append([]scoring.RoundResult(nil), item.Results...)
	return copied
}
