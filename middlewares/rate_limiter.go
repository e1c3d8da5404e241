package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sumakmikuy/restaurant-backend/utils"
)

// RateLimiter counts requests per client IP in Redis over a fixed window.
// When rdb is nil (Redis unreachable at startup) the limiter is a no-op, so
// the application keeps serving without it.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, c.ClientIP())
		ctx := c.Request.Context()

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis outages must not take the API down with them.
			utils.ErrorLogger.Printf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
				// Without a TTL the counter would throttle this client
				// forever, so drop it and let the request through.
				utils.ErrorLogger.Printf("rate limiter could not set window on %s: %v", key, err)
				rl.rdb.Del(ctx, key)
				c.Next()
				return
			}
		}

		if count > int64(rl.limit) {
			utils.RespondError(c, http.StatusTooManyRequests,
				errors.New("too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
