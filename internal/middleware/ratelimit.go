// Package middleware provides HTTP middleware for the wikipath API.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxBuckets is the maximum number of tracked IPs to prevent memory exhaustion.
const maxBuckets = 100_000

// CostFunc prices a request in tokens. Searches that fan out over the graph
// can cost more than plain lookups.
type CostFunc func(c *gin.Context) int

// RateLimiter implements a token bucket rate limiter per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
	cost    CostFunc
}

// bucket is one client's token balance as of last.
type bucket struct {
	tokens float64
	last   time.Time
}

// take refills the bucket for the time elapsed since last and withdraws n
// tokens. When the balance is short it returns how long until it is not.
func (b *bucket) take(now time.Time, rate, burst, n float64) (bool, time.Duration) {
	b.tokens = math.Min(burst, b.tokens+now.Sub(b.last).Seconds()*rate)
	b.last = now

	if b.tokens >= n {
		b.tokens -= n

		return true, 0
	}

	wait := time.Duration((n - b.tokens) / rate * float64(time.Second))

	return false, wait
}

// RateOption configures a RateLimiter.
type RateOption func(*RateLimiter)

// WithCost prices requests with fn instead of one token each. Costs are
// clamped to [1, burst].
func WithCost(fn CostFunc) RateOption {
	return func(rl *RateLimiter) { rl.cost = fn }
}

// NewRateLimiter creates a RateLimiter with the given requests per second and burst size.
// It starts a background goroutine to evict stale buckets, which stops when ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int, opts ...RateOption) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
	}

	for _, opt := range opts {
		opt(rl)
	}

	go rl.startCleanup(ctx)

	return rl
}

// startCleanup periodically evicts buckets idle long enough to be full again.
func (rl *RateLimiter) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	const maxAge = 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.last) > maxAge {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) price(c *gin.Context) float64 {
	if rl.cost == nil {
		return 1
	}

	return math.Max(1, math.Min(rl.burst, float64(rl.cost(c))))
}

// Handler returns Gin middleware that applies rate limiting per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in the router disables proxy header trust.
		ip := c.ClientIP()
		n := rl.price(c)
		now := time.Now()

		rl.mu.Lock()
		b, ok := rl.buckets[ip]
		if !ok {
			// Reject new IPs when bucket table is full to prevent memory exhaustion.
			if len(rl.buckets) >= maxBuckets {
				rl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			b = &bucket{tokens: rl.burst, last: now}
			rl.buckets[ip] = b
		}

		allowed, wait := b.take(now, rl.rate, rl.burst, n)
		rl.mu.Unlock()

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
