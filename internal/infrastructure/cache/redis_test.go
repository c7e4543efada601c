package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when TEST_REDIS_ADDR points at a disposable Redis.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(addr, "", 0).(*RedisCache)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Connect(ctx))

	key := "test:" + uuid.NewString()
	var out []string

	found, err := c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, []string{"a", "b"}, time.Minute))
	found, err = c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, out)

	require.NoError(t, c.Delete(ctx, key))
	found, err = c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, found)
}
