package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisAdapter_GetSet(t *testing.T) {
	// Setup miniredis
	mr := miniredis.RunT(t)
	defer mr.Close()

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "lp:")
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()

	// Test Set and Get
	key := "order:101"
	value := []byte(`{"id":"101","order_number":"PD1001"}`)
	ttl := 10 * time.Second

	err = adapter.Set(ctx, key, value, ttl)
	assert.NoError(t, err)

	retrievedValue, err := adapter.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, retrievedValue)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "lp:")
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()

	_, err = adapter.Get(ctx, "non_existent_key")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "non_existent_key")
}

func TestRedisAdapter_Delete(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "lp:")
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()

	// Set a key
	key := "delete_test"
	err = adapter.Set(ctx, key, []byte("value"), 0)
	require.NoError(t, err)

	// Delete it
	err = adapter.Delete(ctx, key)
	assert.NoError(t, err)

	// Verify it's gone
	_, err = adapter.Get(ctx, key)
	assert.Error(t, err)
}

func TestRedisAdapter_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "lp:")
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()

	// Set with short TTL
	key := "labeljob:ttl"
	value := []byte(`{"state":"ready"}`)

	err = adapter.Set(ctx, key, value, 1*time.Second)
	require.NoError(t, err)

	// Should exist immediately
	_, err = adapter.Get(ctx, key)
	assert.NoError(t, err)

	// Fast forward time in miniredis
	mr.FastForward(2 * time.Second)

	// Should be expired
	_, err = adapter.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisAdapter_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "lp:")
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()

	err = adapter.Ping(ctx)
	assert.NoError(t, err)
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestRedisAdapter_KeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "lp:")
	require.NoError(t, err)
	defer adapter.Close()

	require.NoError(t, adapter.Set(context.Background(), "customer:7", []byte("x"), 0))
	assert.True(t, mr.Exists("lp:customer:7"))
	assert.False(t, mr.Exists("customer:7"))
}
