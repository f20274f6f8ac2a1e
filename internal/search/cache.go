package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"docsearch/pkg/config"
	"docsearch/pkg/metrics"
	pkgredis "docsearch/pkg/redis"
)

const cacheKeyPrefix = "docsearch:query:"

// Cache is an optional Redis-backed query-result cache. Identical query
// lines within the TTL reuse the stored result; a singleflight group keeps
// concurrent fills for the same key from duplicating work. The engine works
// identically with the cache absent or unreachable.
type Cache struct {
	client  *pkgredis.Client
	cfg     config.RedisConfig
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCache creates a query cache over an established Redis connection.
// Metrics may be nil.
func NewCache(client *pkgredis.Client, cfg config.RedisConfig, m *metrics.Metrics) *Cache {
	return &Cache{
		client:  client,
		cfg:     cfg,
		logger:  slog.Default().With("component", "query-cache"),
		metrics: m,
	}
}

// GetOrCompute returns the cached result for queryText, computing and
// storing it on a miss. Cache errors degrade to a plain compute; they are
// logged, never propagated.
func (c *Cache) GetOrCompute(ctx context.Context, queryText string, compute func() (*Result, error)) (*Result, error) {
	key := c.buildKey(queryText)
	if res, ok := c.get(ctx, key); ok {
		return res, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		res, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (c *Cache) get(ctx context.Context, key string) (*Result, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.miss()
		return nil, false
	}
	var res Result
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.miss()
		return nil, false
	}
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
	c.logger.Debug("cache hit", "key", key)
	return &res, true
}

func (c *Cache) set(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

func (c *Cache) miss() {
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}

func (c *Cache) buildKey(queryText string) string {
	sum := sha256.Sum256([]byte(queryText))
	return fmt.Sprintf("%s%x", cacheKeyPrefix, sum[:16])
}
