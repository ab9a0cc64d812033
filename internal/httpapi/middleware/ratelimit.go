package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// authRateScript bumps the per-IP counter and arms the window expiry in one
// round trip, so the key can never be left behind without a TTL.
var authRateScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count`)

// AuthRateLimiter throttles the auth endpoints per client IP. With a redis
// client it uses a fixed counting window shared across instances and fails
// open on redis errors; without one it falls back to in-process token
// buckets.
func AuthRateLimiter(rdb *redis.Client, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	if rdb == nil {
		return localRateLimiter(limit, window)
	}
	return redisRateLimiter(rdb, limit, window, logger)
}

func redisRateLimiter(rdb redis.Scripter, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:auth:%s", c.ClientIP())

		count, err := authRateScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64()
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func localRateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
