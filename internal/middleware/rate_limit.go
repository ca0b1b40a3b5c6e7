package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client key in fixed time windows. State
// lives in process memory only and resets on restart.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	counts map[string]*windowCount
}

type windowCount struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		window: window,
		limit:  limit,
		counts: make(map[string]*windowCount),
	}
}

// Allow records a request for key and reports whether it is within the
// limit, along with the remaining quota and the window reset time.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Truncate(rl.window)

	wc, ok := rl.counts[key]
	if !ok || wc.windowStart.Before(windowStart) {
		wc = &windowCount{windowStart: windowStart}
		rl.counts[key] = wc
	}
	wc.count++

	remaining := rl.limit - wc.count
	if remaining < 0 {
		remaining = 0
	}
	return wc.count <= rl.limit, remaining, windowStart.Add(rl.window)
}

// Middleware enforces the limit per client IP and sets the usual
// X-RateLimit headers.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetTime := rl.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("超过速率限制：每 %v 最多 %d 次请求", rl.window, rl.limit),
			})
			return
		}

		c.Next()
	}
}

// GlobalRateLimit combines the per-hour and per-day ceilings applied to all
// API routes.
func GlobalRateLimit(perHour, perDay int) gin.HandlerFunc {
	hourly := NewRateLimiter(perHour, time.Hour)
	daily := NewRateLimiter(perDay, 24*time.Hour)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ok, _, resetTime := daily.Allow(ip); !ok {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("超过速率限制：每天最多 %d 次请求", perDay),
			})
			return
		}
		if ok, _, resetTime := hourly.Allow(ip); !ok {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("超过速率限制：每小时最多 %d 次请求", perHour),
			})
			return
		}
		c.Next()
	}
}
