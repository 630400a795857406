package middleware

import (
	"context"
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

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/cache"
)

func redisForTest(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../../../.env")

	opts := cache.Options{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	}
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if opts.Port == "" {
		opts.Port = "6379"
	}

	rdb, err := cache.NewRedisClient(opts)
	if err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func limitedRouter(rdb *redis.Client, limit int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimiterMiddleware(rdb, limit, time.Minute))
	router.GET("/api/v1/weekly/day", func(c *gin.Context) {
		c.String(http.StatusOK, "passed")
	})
	return router
}

func hit(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weekly/day", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := redisForTest(t)
	ctx := context.Background()

	t.Run("Success: Remaining counts down to zero", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 3)

		for i := 1; i <= 3; i++ {
			w := hit(router, "10.0.0.1")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(3-i), w.Header().Get("X-RateLimit-Remaining"))
		}

		ttl, err := rdb.TTL(ctx, "weekly:rate_limit:10.0.0.1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("Error: Over the limit is rejected", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 1)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2").Code)

		w := hit(router, "10.0.0.2")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"rate_limited"`)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Success: Clients are counted separately", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(rdb, 1)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.3").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.4").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.3").Code)
	})
}

func TestRateLimiterMiddleware_FailOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	unreachable := redis.NewClient(&redis.Options{
		Addr:        "localhost:9999",
		DialTimeout: 200 * time.Millisecond,
	})
	defer unreachable.Close()

	w := hit(limitedRouter(unreachable, 1), "10.0.0.5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "passed", w.Body.String())
}
