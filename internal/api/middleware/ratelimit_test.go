package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"goldenview/realty/internal/config"
)

func setupLimitedRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *RateLimiterMiddleware) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rm := NewRateLimiterMiddleware(ctx, cfg)
	r := gin.New()
	r.Use(rm.Limit())
	r.GET("/v1/properties", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, rm
}

func do(r http.Handler, method, path string) int {
	req, _ := http.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_SoftBucketOnlyLimitsWrites(t *testing.T) {
	r, _ := setupLimitedRouter(t, &config.Config{
		RateLimitSoftBucketSize: 2, RateLimitSoftRefillRate: 0,
		RateLimitHardBucketSize: 100, RateLimitHardRefillRate: 0,
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/auth/login"))
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/auth/login"))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/v1/auth/login"))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/properties"))
	}
}

func TestRateLimit_HardBucketLimitsEverything(t *testing.T) {
	r, _ := setupLimitedRouter(t, &config.Config{
		RateLimitSoftBucketSize: 100, RateLimitSoftRefillRate: 0,
		RateLimitHardBucketSize: 3, RateLimitHardRefillRate: 0,
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/properties"))
	}
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/v1/properties"))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/v1/auth/login"))
}

func TestRateLimit_EvictIdle(t *testing.T) {
	_, rm := setupLimitedRouter(t, &config.Config{RateLimitSoftBucketSize: 1, RateLimitHardBucketSize: 1})
	rm.getClientLimiter("a")
	rm.getClientLimiter("b")

	assert.Equal(t, 0, rm.evictIdle(time.Now()))
	assert.Equal(t, 2, rm.evictIdle(time.Now().Add(limiterIdleTimeout+time.Second)))
	assert.Empty(t, rm.clients)
}
