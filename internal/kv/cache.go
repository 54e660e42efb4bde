package kv

import (
	"context"

	"github.com/dgraph-io/ristretto"
)

// CachedStore puts a ristretto read cache in front of another Store.
// Writes go to the backing store first and then evict the touched keys, so a
// read issued after a completed write never sees the previous value.
type CachedStore struct {
	next  Store
	cache *ristretto.Cache
}

// NewCachedStore wraps next. maxEntries bounds the number of cached values.
func NewCachedStore(next Store, maxEntries int64) (*CachedStore, error) {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxEntries * 10, // number of keys to track frequency of
		MaxCost:            maxEntries,
		BufferItems:        64, // number of keys per Get buffer
		IgnoreInternalCost: true, // cost counts entries, not bytes
	})
	if err != nil {
		return nil, err
	}
	return &CachedStore{next: next, cache: c}, nil
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(string), true, nil
	}
	v, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.cache.Set(key, v, 1)
	return v, true, nil
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		return err
	}
	s.cache.Del(key)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	if err := s.next.Delete(ctx, key); err != nil {
		return err
	}
	s.cache.Del(key)
	return nil
}

func (s *CachedStore) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	var missing []string
	for _, k := range keys {
		if v, ok := s.cache.Get(k); ok {
			out[k] = v.(string)
			continue
		}
		missing = append(missing, k)
	}
	if len(missing) == 0 {
		return out, nil
	}
	fetched, err := s.next.GetMany(ctx, missing)
	if err != nil {
		return nil, err
	}
	for k, v := range fetched {
		out[k] = v
		s.cache.Set(k, v, 1)
	}
	return out, nil
}

func (s *CachedStore) SetMany(ctx context.Context, entries map[string]string) error {
	if err := s.next.SetMany(ctx, entries); err != nil {
		return err
	}
	for k := range entries {
		s.cache.Del(k)
	}
	return nil
}

func (s *CachedStore) Clear(ctx context.Context) error {
	if err := s.next.Clear(ctx); err != nil {
		return err
	}
	s.cache.Clear()
	return nil
}

// Close releases the cache goroutines. The backing store is left open.
func (s *CachedStore) Close() {
	s.cache.Close()
}
