package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/middleware"
	"github.com/wikipath/wikipath/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	DB          Pinger      // nil when running without a database
	SchemaCheck SchemaCheck // nil skips the schema readiness check
	Paths       PathService
	Articles    ArticleService
	Bulk        BulkService
	Hub         *ws.Hub
	AdminAPIKey string // empty disables the bulk endpoints
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	apiPrefix   = "/api/v1"
	metricsPath = "/metrics"
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // tokens per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders(deps.Version))
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.VersionHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst, middleware.WithCost(requestCost)).Handler())
	r.Use(middleware.PrometheusMiddleware(metricsPath))

	// Metrics endpoint (unauthenticated, like health).
	r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.DB, deps.SchemaCheck, deps.Hub, log, deps.Version)
	paths := NewPathHandler(deps.Paths, deps.Hub, deps.CORSOrigins, log)
	articles := NewArticleHandler(deps.Articles, log)
	stats := NewStatsHandler(deps.Articles, log)
	bulk := NewBulkHandler(deps.Bulk, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Path queries.
	api.GET("/paths/single", paths.Single)
	api.GET("/paths/many", paths.Many)
	api.GET("/paths/stream", paths.Stream)

	// Articles.
	api.GET("/articles", articles.Resolve)
	api.GET("/articles/:id", articles.Get)
	api.GET("/stats", stats.GetStats)

	// Bulk loading requires the admin key.
	admin := api.Group("/bulk", middleware.AdminAuth(deps.AdminAPIKey, log, middleware.NewFailureGuard(log)))
	admin.POST("/articles", bulk.Articles)
	admin.POST("/links", bulk.Links)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group(apiPrefix), deps)

	return r
}
