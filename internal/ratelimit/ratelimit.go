// Package ratelimit caps requests per client address over a sliding window,
// backed by a Redis sorted set per address.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "rate_limit:"

// Limiter counts hits per key within a sliding window.
type Limiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int64
}

// NewLimiter returns a Limiter allowing limit hits per window.
func NewLimiter(rdb *redis.Client, window time.Duration, limit int64) *Limiter {
	return &Limiter{rdb: rdb, window: window, limit: limit}
}

// Allow records a hit for key and reports whether it stays within the limit.
// Entries older than the window are pruned before counting.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := keyPrefix + key
	now := time.Now()
	cutoff := now.Add(-l.window).UnixNano()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return card.Val() <= l.limit, nil
}

// Middleware returns a per-client-address rate limit for the routes it wraps.
// Redis failures log and let the request through (fail open).
func Middleware(l *Limiter, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		allowed, err := l.Allow(c.Request.Context(), ip)
		if err != nil {
			log.WithError(err).Error("rate limit check failed")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}
