package memory

import (
	"context"
	"sync"

	"github.com/parfive/fantasy-golf/internal/domain/golfer"
)

type GolferRepository struct {
	mu    sync.RWMutex
	items map[string]golfer.Golfer
	order []string
}

func NewGolferRepository(golfers []golfer.Golfer) *GolferRepository {
	repo := &GolferRepository{items: make(map[string]golfer.Golfer, len(golfers))}
	for _, g := range golfers {
		repo.items[g.ID] = cloneGolfer(g)
		repo.order = append(repo.order, g.ID)
	}
	return repo
}

func (r *GolferRepository) GetByIDs(_ context.Context, tournamentID string, golferIDs []string) ([]golfer.Golfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]golfer.Golfer, 0, len(golferIDs))
	for _, id := range golferIDs {
		item, ok := r.items[id]
		if !ok || item.TournamentID != tournamentID {
			continue
		}
		out = append(out, cloneGolfer(item))
	}

	return out, nil
}

func (r *GolferRepository) ListByTournament(_ context.Context, tournamentID string) ([]golfer.Golfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]golfer.Golfer, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.TournamentID != tournamentID {
			continue
		}
		out = append(out, cloneGolfer(item))
	}

	return out, nil
}

func (r *GolferRepository) UpsertGolfers(_ context.Context, items []golfer.Golfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, ok := r.items[item.ID]; !ok {
			r.order = append(r.order, item.ID)
		}
		r.items[item.ID] = cloneGolfer(item)
	}

	return nil
}

func cloneGolfer(item golfer.Golfer) golfer.Golfer {
	copied := item
	if item.WorldRanking != nil {
		ranking := *item.WorldRanking
		copied.WorldRanking = &ranking
	}
	return copied
}
