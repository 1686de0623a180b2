package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DailyGuard remembers which (user, action, day) keys were already claimed.
// Redis SETNX is authoritative when available; otherwise a process-local
// map is used, which only deduplicates within this instance.
type DailyGuard struct {
	cache  ListingCache
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewDailyGuard(cache ListingCache, logger *zap.Logger) *DailyGuard {
	return &DailyGuard{
		cache:  cache,
		logger: orNop(logger),
		now:    time.Now,
		seen:   make(map[string]time.Time),
	}
}

// Acquire claims key until the end of the current UTC day. It reports false
// when the key is already claimed.
func (g *DailyGuard) Acquire(ctx context.Context, key string) (bool, error) {
	now := g.now().UTC()
	ttl := untilEndOfDay(now)

	if g.cache != nil {
		ok, err := g.cache.SetIfNotExists(ctx, key, "1", ttl)
		if err == nil {
			return ok, nil
		}
		g.logger.Debug("dedupe falling back to local guard", zap.String("key", key), zap.Error(err))
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for k, exp := range g.seen {
		if !now.Before(exp) {
			delete(g.seen, k)
		}
	}
	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = now.Add(ttl)
	return true, nil
}

// Release drops a claim so the action can be retried after a failed append.
func (g *DailyGuard) Release(ctx context.Context, key string) {
	if g.cache != nil {
		if err := g.cache.Delete(ctx, key); err != nil {
			g.logger.Warn("dedupe release failed", zap.String("key", key), zap.Error(err))
		}
	}
	g.mu.Lock()
	delete(g.seen, key)
	g.mu.Unlock()
}

func untilEndOfDay(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}
