package handoff

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	q := NewRedisQueue(client, 10*time.Second, WithPrefix("test:handoff:"))
	t.Cleanup(func() { _ = q.Close() })
	return q, mr
}

func TestRedisQueue_Debounce(t *testing.T) {
	q, mr := newRedisQueue(t)
	ctx := context.Background()

	ok, err := q.TryEnqueue(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("test:handoff:7"))
	assert.Equal(t, 10*time.Second, mr.TTL("test:handoff:7"))

	ok, err = q.TryEnqueue(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	enqueued, err := q.IsEnqueued(ctx, 7)
	require.NoError(t, err)
	assert.True(t, enqueued)

	mr.FastForward(10 * time.Second)

	enqueued, err = q.IsEnqueued(ctx, 7)
	require.NoError(t, err)
	assert.False(t, enqueued)

	ok, err = q.TryEnqueue(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisQueue_Errors(t *testing.T) {
	q, mr := newRedisQueue(t)
	ctx := context.Background()

	mr.SetError("server down")

	_, err := q.TryEnqueue(ctx, 7)
	assert.Error(t, err)

	_, err = q.IsEnqueued(ctx, 7)
	assert.Error(t, err)
}
