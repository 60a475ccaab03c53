package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache loader is required")

type item[V any] struct {
	value   V
	storeAt time.Time
}

// Store is an in-process cache of board reads. Entries older than ttl are
// treated as missing; a zero ttl never expires them. Concurrent loads of one
// key share a single call to the loader.
type Store[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[string]item[V]
	loads singleflight.Group
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]item[V]),
	}
}

func (s *Store[V]) expired(it item[V]) bool {
	return s.ttl > 0 && s.now().Sub(it.storeAt) >= s.ttl
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || s.expired(it) {
		var zero V
		return zero, false
	}
	return it.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	s.mu.Lock()
	s.items[key] = item[V]{value: value, storeAt: s.now()}
	s.mu.Unlock()
}

// Delete drops keys. A load already in flight for one of them may still
// store its result.
func (s *Store[V]) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.items, key)
		s.loads.Forget(key)
	}
	s.mu.Unlock()
}

// Len counts live entries and sweeps the expired ones.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, it := range s.items {
		if s.expired(it) {
			delete(s.items, key)
		}
	}
	return len(s.items)
}

// GetOrLoad returns the cached value for key or stores what loader returns.
// Loader errors are returned to every waiting caller and never cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errNilLoader
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	raw, err, _ := s.loads.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, v)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return raw.(V), nil
}
