package guide

import (
	"context"
	"strings"
	"time"

	memcache "explora/internal/cache/memory"
	guidedomain "explora/internal/guide"
)

// Origin is the read side of the guide service.
type Origin interface {
	Guide(ctx context.Context, objectiveID string) ([]guidedomain.Section, error)
}

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        2 * time.Minute,
		MaxEntries: 512,
	}
}

// CachedStore is the client-side read-through guide cache. It is only ever
// refreshed by refetching from the origin; the mutation protocol calls
// Invalidate after each commit instead of patching entries in place.
type CachedStore struct {
	origin Origin
	guides *memcache.LRUTTL[string, []guidedomain.Section]
}

func NewCachedStore(origin Origin, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &CachedStore{
		origin: origin,
		guides: memcache.NewLRUTTL[string, []guidedomain.Section](cfg.MaxEntries, cfg.TTL),
	}
}

func (s *CachedStore) Guide(ctx context.Context, objectiveID string) ([]guidedomain.Section, error) {
	key := strings.TrimSpace(objectiveID)
	if sections, ok := s.guides.Get(key); ok {
		return guidedomain.CloneSections(sections), nil
	}
	sections, err := s.origin.Guide(ctx, key)
	if err != nil {
		return nil, err
	}
	s.guides.Set(key, guidedomain.CloneSections(sections))
	return sections, nil
}

// Invalidate drops the cached guide so the next read refetches.
func (s *CachedStore) Invalidate(objectiveID string) {
	s.guides.Delete(strings.TrimSpace(objectiveID))
}
