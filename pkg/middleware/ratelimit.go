package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"tripwise/pkg/utils"
)

// RateLimiter keeps one token bucket per caller. Idle callers are forgotten after ten minutes.
type RateLimiter struct {
	visitors *gocache.Cache
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		visitors: gocache.New(10*time.Minute, 5*time.Minute),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors.Get(key); ok {
		rl.visitors.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors.SetDefault(key, limiter)
	return limiter
}

// Limit keys on the authenticated user when present, otherwise the client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("user_id")
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !rl.getLimiter(key).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
