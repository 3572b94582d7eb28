package api

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/middleware"
)

// Rate limit costs per route, in tokens. A multi-destination search touches
// the whole reachable graph once, so it is priced well above a lookup.
const (
	costLookup = 1
	costSingle = 2
	costBulk   = 5
	costMulti  = 10
)

// requestCost prices a request for the rate limiter by its route.
func requestCost(c *gin.Context) int {
	switch c.FullPath() {
	case apiPrefix + "/paths/many", apiPrefix + "/paths/stream":
		return costMulti
	case apiPrefix + "/paths/single":
		return costSingle
	case apiPrefix + "/bulk/articles", apiPrefix + "/bulk/links":
		return costBulk
	default:
		return costLookup
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// originHosts turns CORS origins into the host patterns the WebSocket
// handshake matches against. Unparseable origins are skipped.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))

	for _, o := range origins {
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}

		hosts = append(hosts, u.Host)
	}

	return hosts
}
