package quote

import (
	"context"
	"time"

	"github.com/wonny/quotehub/pkg/logger"
	"github.com/wonny/quotehub/pkg/redis"
)

// cachedList is the cached form of the last published list
type cachedList struct {
	Snapshots []Snapshot `json:"snapshots"`
	Counters  Counters   `json:"counters"`
}

// CacheListener writes every published list to the cache
func CacheListener(cache *redis.Cache, timeout time.Duration, log *logger.Logger) Listener {
	return func(u ListUpdate) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := cache.Set(ctx, redis.QuotesLatestKey, cachedList{Snapshots: u.New, Counters: u.Counters}, redis.TTLQuotes); err != nil {
			log.WithError(err).Warn("Failed to cache quote list")
		}
	}
}

// WarmFromCache seeds the publisher with the cached list, if any
func WarmFromCache(ctx context.Context, cache *redis.Cache, p *Publisher) (bool, error) {
	var cached cachedList
	found, err := cache.Get(ctx, redis.QuotesLatestKey, &cached)
	if err != nil || !found {
		return false, err
	}
	p.Seed(cached.Snapshots, cached.Counters)
	return true, nil
}
