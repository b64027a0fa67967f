package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// DefaultRateLimit is the attempt budget per client key per window.
	DefaultRateLimit = 5
	// DefaultRateWindow is the fixed window size.
	DefaultRateWindow = 15 * time.Minute
)

// attemptBucket counts attempts inside one fixed window.
type attemptBucket struct {
	count       int
	windowStart time.Time
}

// RateLimiter is a fixed-window attempt counter keyed by client identifier
// and endpoint class. The window starts at the first attempt and resets
// wholesale once it elapses; rejected attempts do not reset it. State is
// in-memory only and owned by this instance, so tests construct their own.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*attemptBucket
}

// NewRateLimiter creates a RateLimiter allowing limit attempts per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*attemptBucket),
	}
}

// Allow records an attempt for key and reports whether it is within budget.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists || now.Sub(b.windowStart) >= rl.window {
		rl.buckets[key] = &attemptBucket{count: 1, windowStart: now}
		return true
	}

	b.count++
	return b.count <= rl.limit
}

// Middleware returns a gin middleware limiting requests per client IP for
// the given endpoint class.
func (rl *RateLimiter) Middleware(class string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := class + "|" + c.ClientIP()
		if !rl.Allow(key) {
			log.Warn().Str("class", class).Str("client_ip", c.ClientIP()).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}
