// Command wikipath-server serves shortest click path queries over an
// article graph stored in PostgreSQL.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/api"
	"github.com/wikipath/wikipath/internal/config"
	"github.com/wikipath/wikipath/internal/db"
	"github.com/wikipath/wikipath/internal/db/migrations"
	"github.com/wikipath/wikipath/internal/dbpool"
	"github.com/wikipath/wikipath/internal/service"
	"github.com/wikipath/wikipath/internal/store"
	"github.com/wikipath/wikipath/internal/ws"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("wikipath-server stopped")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), int32(cfg.DBMaxConns)) //nolint:gosec // bounded by config validation.
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	graphs := store.NewGraphStore(base)

	var bulk service.BulkStore
	if cfg.BulkEnabled() {
		bulk = store.NewBulkStore(base)
	}

	cache := service.NewTitleCache(cfg.TitleCacheSize, cfg.TitleCacheTTL)

	source := service.SnapshotFunc(func(ctx context.Context) (service.Snapshot, error) {
		snap, err := graphs.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return snap, nil
	})

	paths := service.NewPathService(source, cache, service.PathConfig{
		ArticleURLBase: cfg.ArticleURLBase,
		SearchTimeout:  cfg.SearchTimeout,
	}, log)
	articles := service.NewArticleService(store.NewArticleStore(base), bulk, cache, log)
	hub := ws.NewHub(paths, ws.DefaultMaxSessions, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log: log,
		DB:  pool,
		SchemaCheck: func(ctx context.Context) error {
			return db.CheckSchema(ctx, pool, migrations.FS)
		},
		Paths:       paths,
		Articles:    articles,
		Bulk:        articles,
		Hub:         hub,
		AdminAPIKey: cfg.AdminAPIKey.Value(),
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": config.Version,
			"bulk":    cfg.BulkEnabled(),
		}).Info("wikipath-server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	// Hijacked stream connections are not tracked by Shutdown.
	hub.Shutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return nil
}
