package store_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/db"
	"github.com/wikipath/wikipath/internal/db/migrations"
	"github.com/wikipath/wikipath/internal/dbpool"
	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/store"
)

// idSpan is the width of the id range each test owns.
const idSpan = 1000

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase returns a Base and the first id of a range that the test
// owns. Articles in that range are removed after the test.
func setupTestBase(t *testing.T) (_ store.Base, _ int64) {
	t.Helper()

	env := getTestEnv(t)
	offset := (rand.Int64N(1<<40) + 1) * idSpan

	t.Cleanup(func() {
		// Links go with their articles (ON DELETE CASCADE).
		env.pool.Exec(context.Background(), //nolint:errcheck // best-effort cleanup
			"DELETE FROM articles WHERE id >= $1 AND id < $2", offset, offset+idSpan)
	})

	return store.Base{Pool: env.pool, Log: env.log}, offset
}

// seedGraph upserts articles offset+n titled "<prefix> n" and the given links
// between them (local numbering).
func seedGraph(t *testing.T, bs *store.BulkStore, offset int64, prefix string, n int, links [][2]int64) {
	t.Helper()

	ctx := context.Background()

	articles := make([]models.CreateArticleRequest, n)
	for i := range articles {
		articles[i] = models.CreateArticleRequest{
			ID:    offset + int64(i),
			Title: fmt.Sprintf("%s %d", prefix, i),
		}
	}

	if _, err := bs.BulkUpsertArticles(ctx, articles); err != nil {
		t.Fatalf("BulkUpsertArticles: %v", err)
	}

	reqs := make([]models.CreateLinkRequest, len(links))
	for i, l := range links {
		reqs[i] = models.CreateLinkRequest{Src: offset + l[0], Dst: offset + l[1]}
	}

	if _, err := bs.BulkInsertLinks(ctx, reqs); err != nil {
		t.Fatalf("BulkInsertLinks: %v", err)
	}
}
