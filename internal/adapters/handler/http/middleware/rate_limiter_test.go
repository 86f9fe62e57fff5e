package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../../../.env")

	addr := fmt.Sprintf("%s:%s", envOr("REDIS_HOST", "localhost"), envOr("REDIS_PORT", "6379"))
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test (Redis down at %s): %v", addr, err)
	}

	require.NoError(t, rdb.FlushDB(ctx).Err())
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// limitedRouter places a fake authenticator in front of the limiter, the same
// order the API router uses.
func limitedRouter(rdb *redis.Client, limit int, window time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	})
	router.Use(RateLimiterMiddleware(rdb, limit, window))
	router.GET("/scores", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func hit(router *gin.Engine, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/scores", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	req.RemoteAddr = "10.1.1.1:4000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success: Anonymous requests use the client IP", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = "10.0.0.7:5555"

		assert.Equal(t, "rate_limit:ip:10.0.0.7", rateLimitKey(c))
	})

	t.Run("Success: Authenticated requests use the user id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(ContextUserIDKey, "user-42")

		assert.Equal(t, "rate_limit:user:user-42", rateLimitKey(c))
	})
}

func TestRateLimiterMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := setupTestRedis(t)
	ctx := context.Background()

	t.Run("Success: Headers count down under the limit", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 3, time.Minute)

		for i := 1; i <= 3; i++ {
			w := hit(router, "user-a")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(3-i), w.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
		}
	})

	t.Run("Fail: 429 once the window is used up", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 2, time.Minute)

		codes := []int{}
		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = hit(router, "user-b")
			codes = append(codes, last.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
		assert.Contains(t, last.Body.String(), "Too many requests")
		assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))

		ttl, err := rdb.TTL(ctx, "rate_limit:user:user-b").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0), "window must carry an expiry")
	})

	t.Run("Success: Users behind one IP get separate budgets", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 1, time.Minute)

		assert.Equal(t, http.StatusOK, hit(router, "user-c").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "user-c").Code)
		assert.Equal(t, http.StatusOK, hit(router, "user-d").Code)
	})

	t.Run("Edge Case: Window expiry resets the budget", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 1, time.Second)

		assert.Equal(t, http.StatusOK, hit(router, "user-e").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "user-e").Code)

		assert.Eventually(t, func() bool {
			return hit(router, "user-e").Code == http.StatusOK
		}, 3*time.Second, 200*time.Millisecond)
	})
}

func TestRateLimiterMiddleware_FailOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	down := redis.NewClient(&redis.Options{Addr: "localhost:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer down.Close()

	router := limitedRouter(down, 1, time.Minute)

	for i := 0; i < 3; i++ {
		w := hit(router, "user-f")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
