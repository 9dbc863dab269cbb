// apps/go-rules/internal/store/redis.go
//
// Redis-backed game store, shared by every server instance.
// Responsibilities:
//   - Persist games as JSON snapshots under a key prefix with a TTL.
//   - Re-attach the word provider to decoded games.
//   - Reject snapshots that fail game.Validate instead of handing them out.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

// Redis stores each game as a JSON snapshot under <prefix><id>.
// Decoded games are re-attached to the configured word provider.
type Redis struct {
	client   *backend.Client
	provider game.WordProvider
	prefix   string
	ttl      time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithTTL sets the expiration for saved games. Zero means no expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

// NewRedis connects to addr.
func NewRedis(addr, password string, db int, p game.WordProvider, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(client, p, opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, p game.WordProvider, opts ...RedisOption) *Redis {
	r := &Redis{
		client:   client,
		provider: p,
		prefix:   "wordle:game:",
		ttl:      24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(id string) string { return r.prefix + id }

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Save writes g and refreshes its TTL.
func (r *Redis) Save(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}
	if err := r.client.Set(ctx, r.key(g.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get loads a game by ID, or ErrNotFound once it is missing or expired.
func (r *Redis) Get(ctx context.Context, id string) (*game.Game, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	var g game.Game
	if err := json.Unmarshal(val, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	g.Attach(r.provider)
	return &g, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error { return r.client.Close() }
