package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key TTLs. Gallery pages churn with every vote so they stay short;
// the leaderboard tolerates slightly staler reads.
const (
	EntryCacheTTL       = 2 * time.Minute
	LeaderboardCacheTTL = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for entry and
// leaderboard lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetEntry retrieves a cached entry response. Returns nil if not cached or
// cache is disabled.
func (c *CacheService) GetEntry(ctx context.Context, entryID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, entryKey(entryID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetEntry stores an entry response in cache.
func (c *CacheService) SetEntry(ctx context.Context, entryID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(entryID), b, EntryCacheTTL).Err()
}

// InvalidateEntry removes an entry from cache (called after votes and
// admin deletions).
func (c *CacheService) InvalidateEntry(ctx context.Context, entryID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, entryKey(entryID)).Err()
}

// GetLeaderboard retrieves a cached leaderboard slice for a category.
func (c *CacheService) GetLeaderboard(ctx context.Context, category string, limit int) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, leaderboardKey(category, limit)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetLeaderboard stores a leaderboard slice in cache.
func (c *CacheService) SetLeaderboard(ctx context.Context, category string, limit int, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, leaderboardKey(category, limit), b, LeaderboardCacheTTL).Err()
}

// InvalidateLeaderboards drops every cached leaderboard slice. Votes move
// ranks in any category slice, so they all go at once.
func (c *CacheService) InvalidateLeaderboards(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, "leaderboard:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func entryKey(entryID string) string {
	return fmt.Sprintf("entry:%s", entryID)
}

func leaderboardKey(category string, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("leaderboard:%s:%d", category, limit)
}
