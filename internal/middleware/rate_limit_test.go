package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, client redis.UniversalClient, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := NewRateLimiter(client)
	router.GET("/tests/:passcode", limiter.Limit(PasscodeRateLimitConfig(limit, time.Minute)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"passcode": c.Param("passcode")})
	})
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksPastLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	router := newLimitedRouter(t, client, 2)

	for i := 0; i < 2; i++ {
		w := get(router, "/tests/ABC123")
		require.Equal(t, http.StatusOK, w.Code)
	}
	other := get(router, "/tests/OTHER")
	assert.Equal(t, http.StatusTooManyRequests, other.Code, "limit is per route, not per passcode")
	assert.Equal(t, "0", other.Header().Get("X-RateLimit-Remaining"))

	w := get(router, "/tests/ABC123")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	assert.EqualValues(t, 60, body["retry_after"])
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	router := newLimitedRouter(t, client, 1)

	require.Equal(t, http.StatusOK, get(router, "/tests/A").Code)
	require.Equal(t, http.StatusTooManyRequests, get(router, "/tests/A").Code)

	mr.FastForward(time.Minute + time.Second)

	assert.Equal(t, http.StatusOK, get(router, "/tests/A").Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	router := newLimitedRouter(t, client, 1)

	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/tests/A").Code)
	}
}

func TestRateLimiter_SetsWindowOnFirstRequest(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	router := newLimitedRouter(t, client, 5)

	require.Equal(t, http.StatusOK, get(router, "/tests/A").Code)

	key := "rl:passcode:10.0.0.1:/tests/:passcode"
	assert.Equal(t, time.Minute, mr.TTL(key))
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestRateLimiter_RestartsCounterWithoutTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	router := newLimitedRouter(t, client, 2)

	// Left behind by an EXPIRE that never landed.
	key := "rl:passcode:10.0.0.1:/tests/:passcode"
	require.NoError(t, mr.Set(key, "7"))
	mr.FastForward(24 * time.Hour)

	w := get(router, "/tests/A")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}
