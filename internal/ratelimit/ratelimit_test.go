package ratelimit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLimiterAllow(t *testing.T) {
	_, rdb := newTestRedis(t)
	l := NewLimiter(rdb, time.Minute, 3)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different address has its own window.
	allowed, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	_, rdb := newTestRedis(t)
	l := NewLimiter(rdb, time.Minute, 2)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(l, quietLog()))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.JSONEq(t, `{"message":"Too many requests from this IP, please try again later."}`, last.Body.String())
}

func TestMiddlewareFailsOpen(t *testing.T) {
	mr, rdb := newTestRedis(t)
	l := NewLimiter(rdb, time.Minute, 1)
	mr.Close()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(l, quietLog()))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	// Redis being down must not take the API down with it.
	assert.Equal(t, http.StatusOK, w.Code)
}
