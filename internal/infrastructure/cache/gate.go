package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const cronGateKey = "ingest:cron_enabled"

// Gate controls whether scheduled ingestion runs fire. The flag lives in
// Redis so the API (which flips it) and the worker (which checks it) agree.
type Gate interface {
	// Enabled reports whether scheduled runs may fire.
	Enabled(ctx context.Context) (bool, error)

	// SetEnabled pauses or resumes scheduled runs.
	SetEnabled(ctx context.Context, enabled bool) error
}

// RedisGate implements Gate on a single Redis key. An absent key means
// enabled: a fresh deployment schedules runs without any setup step.
type RedisGate struct {
	client *redis.Client
}

// Compile-time verification that RedisGate implements Gate.
var _ Gate = (*RedisGate)(nil)

// NewRedisGate creates a new Redis-backed cron gate.
func NewRedisGate(client *redis.Client) *RedisGate {
	return &RedisGate{client: client}
}

// Enabled reports whether scheduled runs may fire.
func (g *RedisGate) Enabled(ctx context.Context) (bool, error) {
	val, err := g.client.Get(ctx, cronGateKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	return val != "0", nil
}

// SetEnabled pauses or resumes scheduled runs.
func (g *RedisGate) SetEnabled(ctx context.Context, enabled bool) error {
	val := "1"
	if !enabled {
		val = "0"
	}
	if err := g.client.Set(ctx, cronGateKey, val, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
