package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the rate
// limiting middleware. If addr is empty or the ping fails, the client stays
// nil and every limiter acts fail-open so the game keeps running without
// Redis.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

// RedisRateLimit is a fixed-window limiter keyed by client IP, implemented
// with INCR/EXPIRE. Key format: rl:<window_seconds>:<ip>.
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return limiter(maxRequests, window, func(c *gin.Context) string {
		return "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
	})
}

// TapRateLimit limits the hot tap path per session token rather than per
// IP, so players behind a shared NAT do not throttle each other. Requests
// without a token fall back to the IP key.
func TapRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return limiter(maxRequests, window, func(c *gin.Context) string {
		ident := BearerToken(c)
		if ident == "" {
			ident = c.ClientIP()
		}
		return "rl:tap:" + ident
	})
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func limiter(maxRequests int, window time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := keyFn(c)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail-open on Redis errors, availability over strictness
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
