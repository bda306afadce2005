package memory

import (
	"context"
	"sync"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[string]tournament.Tournament
	order []string
}

func NewTournamentRepository(tournaments []tournament.Tournament) *TournamentRepository {
	repo := &TournamentRepository{items: make(map[string]tournament.Tournament, len(tournaments))}
	for _, t := range tournaments {
		repo.items[t.ID] = cloneTournament(t)
		repo.order = append(repo.order, t.ID)
	}
	return repo
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}

	return cloneTournament(item), true, nil
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneTournament(r.items[id]))
	}

	return out, nil
}

func (r *TournamentRepository) Upsert(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = cloneTournament(item)

	return nil
}

func cloneTournament(item tournament.Tournament) tournament.Tournament {
	copied := item
	copied.RoundTeeTimes = append([]time.Time(nil), item.RoundTeeTimes...)
	return copied
}
