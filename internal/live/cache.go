package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs follow the document's lifecycle: a live document is replaced
// within minutes, a final one is kept around for the post-round traffic.
const (
	liveTTL  = 2 * time.Hour
	finalTTL = 6 * time.Hour
)

// ErrCacheMiss is returned when no document is cached for the tournament.
var ErrCacheMiss = errors.New("live: cache miss")

// Cache stores leaderboard documents in Redis. A nil *Cache is a disabled
// cache: writes are dropped and reads miss.
type Cache struct {
	client *redis.Client
}

// NewCache wraps an established Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func leaderboardKey(tournamentID string) string {
	return "leaderboard:" + tournamentID
}

// WriteLeaderboard replaces the cached document for the tournament.
func (c *Cache) WriteLeaderboard(ctx context.Context, lb Leaderboard) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(lb)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	ttl := liveTTL
	if lb.Final {
		ttl = finalTTL
	}
	if err := c.client.Set(ctx, leaderboardKey(lb.TournamentID), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache leaderboard: %w", err)
	}
	return nil
}

// ReadLeaderboard returns the cached document, or ErrCacheMiss when absent.
func (c *Cache) ReadLeaderboard(ctx context.Context, tournamentID string) (Leaderboard, error) {
	if c == nil || c.client == nil {
		return Leaderboard{}, ErrCacheMiss
	}
	data, err := c.client.Get(ctx, leaderboardKey(tournamentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Leaderboard{}, ErrCacheMiss
	}
	if err != nil {
		return Leaderboard{}, fmt.Errorf("read leaderboard: %w", err)
	}
	var lb Leaderboard
	if err := json.Unmarshal(data, &lb); err != nil {
		return Leaderboard{}, fmt.Errorf("decode leaderboard: %w", err)
	}
	return lb, nil
}
