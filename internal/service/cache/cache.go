// Package cache is a Redis-backed read-through cache for search results.
// Concurrent misses for the same word are collapsed with singleflight so the
// index is consulted once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"minisearch/internal/service/query"
	"minisearch/pkg/config"
	pkgredis "minisearch/pkg/redis"
)

const keyPrefix = "minisearch:search:"

// QueryCache caches SearchResults in Redis with a TTL.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a QueryCache on top of an established Redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached result for word, if present.
func (c *QueryCache) Get(ctx context.Context, word string) (*query.SearchResult, bool) {
	key := c.buildKey(word)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result query.SearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "word", word)
	return &result, true
}

// Set stores a result under the word's key with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, word string, result *query.SearchResult) {
	key := c.buildKey(word)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for word or computes and caches it.
// The boolean reports whether the value came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	word string,
	computeFn func() (*query.SearchResult, error),
) (*query.SearchResult, bool, error) {
	if result, ok := c.Get(ctx, word); ok {
		return result, true, nil
	}
	key := c.buildKey(word)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := c.Get(ctx, word); ok {
			return result, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, word, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*query.SearchResult), false, nil
}

// Invalidate removes every cached search result. Called after ingestion,
// since any new document can change any word's postings.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(word string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(word)))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
