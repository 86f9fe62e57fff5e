package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	_ = godotenv.Load("../../../.env")

	opts := Options{Host: "localhost", Port: "6379", Password: os.Getenv("REDIS_PASSWORD"), DB: 1, PoolSize: 4}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		opts.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		opts.Port = v
	}
	return opts
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, Options{Host: "127.0.0.1", Port: "1"})

	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestNewRedisClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rdb, err := NewRedisClient(ctx, testOptions())

	assert.Error(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_Integration(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()

	rdb, err := NewRedisClient(ctx, opts)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	t.Run("Success: Client honours the options", func(t *testing.T) {
		got := rdb.Options()
		assert.Equal(t, opts.Host+":"+opts.Port, got.Addr)
		assert.Equal(t, 1, got.DB)
		assert.Equal(t, 4, got.PoolSize)
		assert.Equal(t, 2, got.MinIdleConns)
	})

	t.Run("Success: Default pool size", func(t *testing.T) {
		opts := testOptions()
		opts.PoolSize = 0

		other, err := NewRedisClient(ctx, opts)
		require.NoError(t, err)
		defer other.Close()

		assert.Equal(t, 10, other.Options().PoolSize)
	})

	t.Run("Success: Hash expiry used for goal listings", func(t *testing.T) {
		key := "goal_records:redis-test-user"
		t.Cleanup(func() { rdb.Del(ctx, key) })

		pipe := rdb.TxPipeline()
		pipe.HSet(ctx, key, "Sugar|1", `[]`)
		pipe.Expire(ctx, key, time.Minute)
		_, err := pipe.Exec(ctx)
		require.NoError(t, err)

		ttl, err := rdb.TTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)

		fields, err := rdb.HKeys(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, []string{"Sugar|1"}, fields)
	})
}
