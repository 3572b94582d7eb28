package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// authTimingFloor is the minimum response time for rejected admin requests
// so that failures cannot be told apart by latency.
const authTimingFloor = 50 * time.Millisecond

const (
	guardMaxAttempts = 5
	guardWindow      = 15 * time.Minute
	guardLockout     = 5 * time.Minute
	guardMaxRecords  = 10_000
)

type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

// FailureGuard tracks failed admin authentications per client IP and locks
// out clients that fail too often within the tracking window. Records expire
// on their own once the window has passed.
type FailureGuard struct {
	mu      sync.Mutex
	records *expirable.LRU[string, *failureRecord]
	log     *logrus.Logger
}

// NewFailureGuard returns an empty guard.
func NewFailureGuard(log *logrus.Logger) *FailureGuard {
	return &FailureGuard{
		records: expirable.NewLRU[string, *failureRecord](guardMaxRecords, nil, guardWindow),
		log:     log,
	}
}

// IsBlocked reports whether ip is currently locked out.
func (g *FailureGuard) IsBlocked(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records.Peek(ip)
	if !ok {
		return false
	}

	return !rec.lockedAt.IsZero() && time.Since(rec.lockedAt) < guardLockout
}

// RecordFailure counts a failed attempt from ip.
func (g *FailureGuard) RecordFailure(ip string) {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records.Peek(ip)
	if !ok || now.Sub(rec.firstFail) > guardWindow {
		g.records.Add(ip, &failureRecord{attempts: 1, firstFail: now})
		return
	}

	rec.attempts++
	if rec.attempts >= guardMaxAttempts && rec.lockedAt.IsZero() {
		rec.lockedAt = now
		g.log.WithField("client_ip", ip).Warn("admin client locked out after repeated auth failures")
	}
}

// Reset clears failure tracking for ip.
func (g *FailureGuard) Reset(ip string) {
	g.mu.Lock()
	g.records.Remove(ip)
	g.mu.Unlock()
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// ExtractBearerToken extracts the API key from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(header, "Bearer ")
}

// keysEqual compares in constant time regardless of input lengths.
func keysEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))

	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// AdminAuth guards bulk-load endpoints with a single shared API key. An
// empty key disables those endpoints entirely. guard may be nil.
func AdminAuth(key string, log *logrus.Logger, guard *FailureGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			respondError(c, http.StatusForbidden, "forbidden", "bulk loading is disabled on this server")
			return
		}

		ip := c.ClientIP()

		if guard != nil && guard.IsBlocked(ip) {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many failed authentication attempts")
			return
		}

		start := time.Now()

		token := ExtractBearerToken(c)
		if token == "" || !keysEqual(token, key) {
			Logger(c, log).WithFields(logrus.Fields{
				"client_ip":  ip,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"user_agent": c.Request.UserAgent(),
			}).Warn("admin authentication failed")

			if guard != nil {
				guard.RecordFailure(ip)
			}

			enforceTimingFloor(start)
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid api key")

			return
		}

		if guard != nil {
			guard.Reset(ip)
		}

		c.Next()
	}
}
