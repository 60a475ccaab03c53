package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[player.ID]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[player.ID]player.Player, len(players))
	ordered := make([]player.Player, 0, len(players))
	for _, p := range players {
		if _, ok := index[p.ID]; ok {
			continue
		}
		index[p.ID] = p
		ordered = append(ordered, p)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	return &PlayerRepository{
		players: ordered,
		index:   index,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []player.ID) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}
