package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
)

type TacticRepository struct {
	mu    sync.RWMutex
	items map[int64]tactic.Data
}

func NewTacticRepository() *TacticRepository {
	return &TacticRepository{items: make(map[int64]tactic.Data)}
}

func (r *TacticRepository) GetByID(_ context.Context, id int64) (tactic.Data, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return tactic.Data{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *TacticRepository) List(_ context.Context) ([]tactic.Data, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tactic.Data, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TacticRepository) Upsert(_ context.Context, item tactic.Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TacticRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
