package middleware

import "github.com/gin-gonic/gin"

// VersionHeader carries the server version on every response.
const VersionHeader = "X-Wikipath-Version"

// SecurityHeaders returns Gin middleware that sets common security response
// headers and the server version. Path results depend on the current graph,
// so nothing is cacheable.
func SecurityHeaders(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		h.Set("Cache-Control", "no-store")

		if version != "" {
			h.Set(VersionHeader, version)
		}

		c.Next()
	}
}
