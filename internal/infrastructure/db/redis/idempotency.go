package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyGuard reserves checkout idempotency keys in Redis.
// Key format: checkout:idem:<email>:<key>
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyGuard creates an IdempotencyGuard wrapping the given Redis client.
func NewIdempotencyGuard(client *redis.Client) *IdempotencyGuard {
	return &IdempotencyGuard{client: client, ttl: idempotencyTTL}
}

// Reserve claims the key for email. It returns false when the key is already held.
func (g *IdempotencyGuard) Reserve(ctx context.Context, email, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(email, key), time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return ok, nil
}

// Release frees a key so a failed checkout can be retried with it.
func (g *IdempotencyGuard) Release(ctx context.Context, email, key string) error {
	if err := g.client.Del(ctx, g.key(email, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (g *IdempotencyGuard) key(email, key string) string {
	return fmt.Sprintf("checkout:idem:%s:%s", email, key)
}
