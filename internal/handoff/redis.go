package handoff

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue keeps handoff markers as expiring redis keys so replicas share the debounce
type RedisQueue struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisQueue
type RedisOption func(*RedisQueue)

// WithPrefix sets the key prefix of the markers
func WithPrefix(prefix string) RedisOption {
	return func(q *RedisQueue) {
		q.prefix = prefix
	}
}

// NewRedisQueue creates a queue on an existing client
func NewRedisQueue(client *redis.Client, ttl time.Duration, opts ...RedisOption) *RedisQueue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &RedisQueue{
		client: client,
		prefix: "menubot:handoff:",
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RedisQueue) key(userID int64) string {
	return q.prefix + strconv.FormatInt(userID, 10)
}

// TryEnqueue sets the marker with SET NX EX; false means one is already pending
func (q *RedisQueue) TryEnqueue(ctx context.Context, userID int64) (bool, error) {
	ok, err := q.client.SetNX(ctx, q.key(userID), time.Now().Unix(), q.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis error enqueuing handoff: %w", err)
	}
	return ok, nil
}

// IsEnqueued reports whether the marker still exists
func (q *RedisQueue) IsEnqueued(ctx context.Context, userID int64) (bool, error) {
	n, err := q.client.Exists(ctx, q.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis error checking handoff: %w", err)
	}
	return n > 0, nil
}

// Close closes the redis client
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
