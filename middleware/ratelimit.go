package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter keyed by client IP, counters kept in
// Redis so the limit holds across instances. The INCR/EXPIRE pair runs in a
// pipeline; the expiry is set only on the first hit of a window.
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, max: int64(max), window: window}
}

func (rl *RateLimiter) Handle(c *gin.Context) {
	key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
	ctx := c.Request.Context()

	pipe := rl.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		// Redis being down should not take the API down with it.
		c.Next()
		return
	}

	if count.Val() > rl.max {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many requests, please try again later",
		})
		return
	}
	c.Next()
}
