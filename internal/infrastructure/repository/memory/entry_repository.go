package memory

import (
	"context"
	"sync"

	"github.com/parfive/fantasy-golf/internal/domain/entry"
)

type EntryRepository struct {
	mu    sync.RWMutex
	items map[string]entry.Entry
	order []string
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{items: make(map[string]entry.Entry)}
}

func (r *EntryRepository) GetByID(_ context.Context, entryID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[entryID]
	if !ok {
		return entry.Entry{}, false, nil
	}

	return cloneEntry(item), true, nil
}

// GetByUserAndCompetition returns the user's non-void entry when one
// exists, otherwise the most recent void one.
func (r *EntryRepository) GetByUserAndCompetition(_ context.Context, userID, competitionID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var voided *entry.Entry
	for i := len(r.order) - 1; i >= 0; i-- {
		item := r.items[r.order[i]]
		if item.UserID != userID || item.CompetitionID != competitionID {
			continue
		}
		if item.Status != entry.StatusVoid {
			return cloneEntry(item), true, nil
		}
		if voided == nil {
			copied := cloneEntry(item)
			voided = &copied
		}
	}
	if voided != nil {
		return *voided, true, nil
	}

	return entry.Entry{}, false, nil
}

func (r *EntryRepository) ListByCompetition(_ context.Context, competitionID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.CompetitionID != competitionID {
			continue
		}
		out = append(out, cloneEntry(item))
	}

	return out, nil
}

func (r *EntryRepository) Upsert(_ context.Context, item entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = cloneEntry(item)

	return nil
}

func cloneEntry(item entry.Entry) entry.Entry {
	copied := item
	copied.Picks = append([]entry.Pick(nil), item.Picks...)
	if item.TotalScore != nil {
		total := *item.TotalScore
		copied.TotalScore = &total
	}
	if item.SubmittedAt != nil {
		at := *item.SubmittedAt
		copied.SubmittedAt = &at
	}
	if item.LockedAt != nil {
		at := *item.LockedAt
		copied.LockedAt = &at
	}
	return copied
}
