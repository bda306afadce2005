package memory

import (
	"context"
	"sync"

	"github.com/parfive/fantasy-golf/internal/domain/settlement"
)

type SettlementRepository struct {
	mu    sync.RWMutex
	items map[string]settlement.Result
}

func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{items: make(map[string]settlement.Result)}
}

func (r *SettlementRepository) GetByCompetition(_ context.Context, competitionID string) (settlement.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[competitionID]
	if !ok {
		return settlement.Result{}, false, nil
	}

	return item, true, nil
}

func (r *SettlementRepository) Upsert(_ context.Context, result settlement.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[result.CompetitionID] = result
	return nil
}
