package memory

import (
	"context"
	"sync"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	items map[string]competition.Competition
	order []string
}

func NewCompetitionRepository(competitions []competition.Competition) *CompetitionRepository {
	repo := &CompetitionRepository{items: make(map[string]competition.Competition, len(competitions))}
	for _, c := range competitions {
		repo.items[c.ID] = cloneCompetition(c)
		repo.order = append(repo.order, c.ID)
	}
	return repo
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[competitionID]
	if !ok {
		return competition.Competition{}, false, nil
	}

	return cloneCompetition(item), true, nil
}

func (r *CompetitionRepository) ListByTournament(_ context.Context, tournamentID string) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.TournamentID != tournamentID {
			continue
		}
		out = append(out, cloneCompetition(item))
	}

	return out, nil
}

func (r *CompetitionRepository) Upsert(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = cloneCompetition(item)

	return nil
}

func cloneCompetition(item competition.Competition) competition.Competition {
	copied := item
	if item.ManualStatus != nil {
		status := *item.ManualStatus
		copied.ManualStatus = &status
	}
	if item.GuaranteedPoolPennies != nil {
		pool := *item.GuaranteedPoolPennies
		copied.GuaranteedPoolPennies = &pool
	}
	if item.FirstPlacePennies != nil {
		first := *item.FirstPlacePennies
		copied.FirstPlacePennies = &first
	}
	return copied
}
