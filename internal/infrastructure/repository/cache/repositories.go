package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	basecache "github.com/riskibarqy/tactics-board/internal/platform/cache"
)

const tacticListKey = "tactic:list"

// TacticRepository caches reads of next. Writes go straight through and
// invalidate the affected keys.
type TacticRepository struct {
	next  tactic.Repository
	byID  *basecache.Store[cachedTacticByID]
	lists *basecache.Store[[]tactic.Data]
}

func NewTacticRepository(next tactic.Repository, ttl time.Duration) *TacticRepository {
	return &TacticRepository{
		next:  next,
		byID:  basecache.NewStore[cachedTacticByID](ttl),
		lists: basecache.NewStore[[]tactic.Data](ttl),
	}
}

func (r *TacticRepository) GetByID(ctx context.Context, id int64) (tactic.Data, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, tacticKey(id), func(ctx context.Context) (cachedTacticByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedTacticByID{}, err
		}
		return cachedTacticByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return tactic.Data{}, false, err
	}

	return cached.value.Clone(), cached.exists, nil
}

func (r *TacticRepository) List(ctx context.Context) ([]tactic.Data, error) {
	items, err := r.lists.GetOrLoad(ctx, tacticListKey, func(ctx context.Context) ([]tactic.Data, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneTactics(items), nil
	})
	if err != nil {
		return nil, err
	}

	return cloneTactics(items), nil
}

func (r *TacticRepository) Upsert(ctx context.Context, item tactic.Data) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *TacticRepository) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *TacticRepository) invalidate(ctx context.Context, id int64) {
	r.byID.Delete(ctx, tacticKey(id))
	r.lists.Delete(ctx, tacticListKey)
}

type cachedTacticByID struct {
	value  tactic.Data
	exists bool
}

func cloneTactics(items []tactic.Data) []tactic.Data {
	out := make([]tactic.Data, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

func tacticKey(id int64) string {
	return "tactic:" + strconv.FormatInt(id, 10)
}

// PlayerRepository caches the full squad list. Lookups by id are served from
// it, so the squad is fetched once per ttl.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{next: next, cache: basecache.NewStore[[]player.Player](ttl)}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []player.ID) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[player.ID]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerRepository) load(ctx context.Context) ([]player.Player, error) {
	return r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
}
